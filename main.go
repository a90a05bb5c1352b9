package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/asaidimu/go-gridfilter/core/filter"
	"github.com/asaidimu/go-gridfilter/core/registry"
	"github.com/asaidimu/go-gridfilter/core/scalar"
	"github.com/asaidimu/go-gridfilter/sqlite"
)

const dbFileName = "flights.db"

// Flight is the demo row type. Cancelled and Gate stand in for cells
// the host UI edits between evaluations; the registry only requires
// that extraction is deterministic at evaluation time.
type Flight struct {
	Number    int64
	Orig      string
	Dest      string
	DepDate   time.Time
	Mileage   int64
	Cancelled bool
	Gate      string
}

var airports = []struct {
	Code     string
	Lat, Lon float64
}{
	{"ATL", 33.640411, -84.419853},
	{"ORD", 41.978611, -87.904724},
	{"LAX", 33.942791, -118.410042},
	{"DFW", 32.897480, -97.040443},
	{"DEN", 39.849312, -104.673828},
	{"JFK", 40.641766, -73.780968},
	{"SFO", 37.615223, -122.389977},
	{"SEA", 47.443546, -122.301659},
	{"LAS", 36.086010, -115.153969},
	{"MCO", 28.424618, -81.310753},
	{"BOS", 42.365589, -71.010025},
	{"MIA", 25.795160, -80.279594},
}

func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusMiles = 3959.0
	dlat := (lat2 - lat1) * math.Pi / 180.0
	dlon := (lon2 - lon1) * math.Pi / 180.0
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Pow(math.Sin(dlat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(dlon/2), 2)
	return earthRadiusMiles * 2 * math.Asin(math.Sqrt(a))
}

func generateFlights(n int) []Flight {
	rng := rand.New(rand.NewSource(42))
	flights := make([]Flight, 0, n)
	for i := 0; i < n; i++ {
		origIdx := rng.Intn(len(airports))
		destIdx := rng.Intn(len(airports))
		for destIdx == origIdx {
			destIdx = rng.Intn(len(airports))
		}
		orig := airports[origIdx]
		dest := airports[destIdx]

		gate := ""
		if rng.Float64() < 0.8 {
			if rng.Float64() < 0.5 {
				gate = string(rune('A'+rng.Intn(26))) + fmt.Sprint(1+rng.Intn(99))
			} else {
				gate = fmt.Sprint(1 + rng.Intn(99))
			}
		}

		flights = append(flights, Flight{
			Number:    int64(100 + rng.Intn(9899)),
			Orig:      orig.Code,
			Dest:      dest.Code,
			DepDate:   time.Date(2026, time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC),
			Mileage:   int64(math.Round(haversineMiles(orig.Lat, orig.Lon, dest.Lat, dest.Lon))),
			Cancelled: rng.Float64() < 0.05,
			Gate:      gate,
		})
	}
	return flights
}

func main() {
	ctx := context.Background()

	// Start fresh, persist the generated dataset, then load it back
	// through the dataset adapter the way a table-backed host would.
	if err := os.Remove(dbFileName); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database file %s: %v", dbFileName, err)
	}

	db, err := sql.Open("sqlite3", dbFileName)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer func() {
		if cErr := db.Close(); cErr != nil {
			log.Printf("Error closing database connection: %v", cErr)
		}
	}()

	if _, err := db.ExecContext(ctx, `CREATE TABLE flights (
		number INTEGER, orig TEXT, dest TEXT, dep_date TEXT,
		mileage INTEGER, cancelled INTEGER, gate TEXT
	)`); err != nil {
		log.Fatalf("Failed to create flights table: %v", err)
	}

	for _, f := range generateFlights(1000) {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO flights VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.Number, f.Orig, f.Dest, f.DepDate.Format(time.RFC3339),
			f.Mileage, f.Cancelled, f.Gate); err != nil {
			log.Fatalf("Failed to insert flight: %v", err)
		}
	}

	flights, err := sqlite.Load(ctx, db, `SELECT number, orig, dest, dep_date, mileage, cancelled, gate FROM flights`,
		func(rows *sql.Rows) (Flight, error) {
			var f Flight
			var depDate string
			if err := rows.Scan(&f.Number, &f.Orig, &f.Dest, &depDate, &f.Mileage, &f.Cancelled, &f.Gate); err != nil {
				return Flight{}, err
			}
			t, err := time.Parse(time.RFC3339, depDate)
			if err != nil {
				return Flight{}, err
			}
			f.DepDate = t
			return f, nil
		})
	if err != nil {
		log.Fatalf("Failed to load flights dataset: %v", err)
	}
	fmt.Printf("Loaded %d flights.\n", len(flights))

	reg, err := registry.New(flights)
	if err != nil {
		log.Fatalf("Failed to create filter registry: %v", err)
	}

	// One filter per UI-bound column.
	for _, f := range []filter.ColumnFilter[Flight]{
		filter.NewString("orig_filter", func(f Flight) string { return f.Orig }),
		filter.NewString("dest_filter", func(f Flight) string { return f.Dest }),
		filter.NewString("gate_filter", func(f Flight) string { return f.Gate }),
		filter.NewDate("dep_date_filter", func(f Flight) time.Time { return f.DepDate }),
		filter.NewNumber("mileage_filter", func(f Flight) int64 { return f.Mileage }),
		filter.NewBool("cancelled_filter", func(f Flight) bool { return f.Cancelled }),
		filter.NewRegex("route_filter", func(f Flight) string { return f.Orig + "-" + f.Dest }),
	} {
		if err := reg.Register(f); err != nil {
			log.Fatalf("Failed to register %s: %v", f.ID(), err)
		}
	}

	reg.RegisterSubscription(registry.RegisterSubscriptionOptions{
		Event: registry.EventCriteriaChanged,
		Callback: func(ctx context.Context, event registry.FilterEvent) error {
			fmt.Printf("criteria changed on %s\n", event.FilterID)
			return nil
		},
	})

	// Keep only flights out of JFK.
	origins, err := reg.Options("orig_filter")
	if err != nil {
		log.Fatalf("Failed to enumerate origins: %v", err)
	}
	if err := reg.SetCriteria("orig_filter", filter.Only(origins, scalar.Str("JFK"))); err != nil {
		log.Fatalf("Failed to set origin criteria: %v", err)
	}
	fmt.Printf("Flights out of JFK: %d\n", len(reg.Visible()))

	// Narrow to long-haul legs via the mileage mini-language.
	if err := reg.SetCriteria("mileage_filter", filter.Query(">=2000")); err != nil {
		log.Fatalf("Failed to set mileage criteria: %v", err)
	}
	fmt.Printf("Long-haul flights out of JFK: %d\n", len(reg.Visible()))

	// Cross-filter availability: which destinations still have rows?
	dests, err := reg.Options("dest_filter")
	if err != nil {
		log.Fatalf("Failed to enumerate destinations: %v", err)
	}
	for _, dest := range dests {
		ok, err := reg.OptionAvailable("dest_filter", dest)
		if err != nil {
			log.Fatalf("Failed availability query: %v", err)
		}
		state := "grayed"
		if ok {
			state = "available"
		}
		fmt.Printf("  dest %s: %s\n", dest, state)
	}

	// A custom regex keeps the rest of the table usable even when the
	// pattern is unparseable.
	if err := reg.SetCriteria("route_filter", filter.Query("JFK-(LAX|SFO")); err != nil {
		fmt.Printf("route pattern rejected, filter fails open: %v\n", err)
	}
	fmt.Printf("Visible with broken route pattern: %d\n", len(reg.Visible()))

	if err := reg.SetCriteria("route_filter", filter.Query("JFK-(LAX|SFO)")); err != nil {
		log.Fatalf("Failed to set route criteria: %v", err)
	}
	fmt.Printf("JFK to the west coast, long-haul: %d\n", len(reg.Visible()))

	reg.ResetAll()
	fmt.Printf("After reset: %d flights visible.\n", len(reg.Visible()))
}
