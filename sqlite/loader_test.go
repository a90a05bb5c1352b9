package sqlite

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type city struct {
	Name       string
	Population int64
}

func openFixture(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE cities (name TEXT, population INTEGER)`)
	require.NoError(t, err)
	for _, c := range []city{
		{"Berlin", 3_700_000},
		{"Munich", 1_500_000},
		{"Leipzig", 600_000},
	} {
		_, err := db.Exec(`INSERT INTO cities VALUES (?, ?)`, c.Name, c.Population)
		require.NoError(t, err)
	}
	return db
}

func scanCity(rows *sql.Rows) (city, error) {
	var c city
	err := rows.Scan(&c.Name, &c.Population)
	return c, err
}

func TestLoad(t *testing.T) {
	db := openFixture(t)

	cities, err := Load(context.Background(), db,
		`SELECT name, population FROM cities ORDER BY name`, scanCity)
	require.NoError(t, err)
	assert.Equal(t, []city{
		{"Berlin", 3_700_000},
		{"Leipzig", 600_000},
		{"Munich", 1_500_000},
	}, cities)
}

func TestLoadWithArgs(t *testing.T) {
	db := openFixture(t)

	loader := NewLoader(db, scanCity, nil)
	cities, err := loader.Load(context.Background(),
		`SELECT name, population FROM cities WHERE population >= ? ORDER BY name`, 1_000_000)
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "Berlin", cities[0].Name)
	assert.Equal(t, "Munich", cities[1].Name)
}

func TestLoadQueryError(t *testing.T) {
	db := openFixture(t)

	_, err := Load(context.Background(), db, `SELECT nope FROM missing`, scanCity)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset query failed")
}

func TestLoadScanError(t *testing.T) {
	db := openFixture(t)

	_, err := Load(context.Background(), db, `SELECT name FROM cities`, scanCity)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanning dataset row")
}

func TestLoadInsideTransaction(t *testing.T) {
	db := openFixture(t)

	tx, err := db.Begin()
	require.NoError(t, err)
	defer func() { _ = tx.Rollback() }()

	cities, err := NewLoader(tx, scanCity, nil).Load(context.Background(),
		`SELECT name, population FROM cities ORDER BY population DESC LIMIT 1`)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "Berlin", cities[0].Name)
}
