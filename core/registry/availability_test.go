package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asaidimu/go-gridfilter/core/filter"
	"github.com/asaidimu/go-gridfilter/core/scalar"
)

func selectJFK(t *testing.T, reg *Registry[row]) {
	t.Helper()
	options, err := reg.Options("orig")
	require.NoError(t, err)
	require.NoError(t, reg.SetCriteria("orig", filter.Only(options, scalar.Str("JFK"))))
}

func TestOptionAvailableScenarioA(t *testing.T) {
	reg := newRegistry(t, origFilter())
	selectJFK(t, reg)

	// With no other filters active every option stays available.
	for _, option := range []scalar.Scalar{scalar.Str("JFK"), scalar.Str("LAX")} {
		available, err := reg.OptionAvailable("orig", option)
		require.NoError(t, err)
		assert.True(t, available, "option %s", option)
	}
}

func TestOptionAvailableScenarioB(t *testing.T) {
	reg := newRegistry(t, origFilter(), cancelledFilter())
	selectJFK(t, reg)
	require.NoError(t, reg.SetCriteria("cancelled", filter.Exactly(true)))

	// No LAX row is cancelled, so LAX grays out under the other
	// filter's criteria; JFK keeps its cancelled row.
	available, err := reg.OptionAvailable("orig", scalar.Str("LAX"))
	require.NoError(t, err)
	assert.False(t, available)

	available, err = reg.OptionAvailable("orig", scalar.Str("JFK"))
	require.NoError(t, err)
	assert.True(t, available)

	t.Run("relaxing the other filter restores availability", func(t *testing.T) {
		require.NoError(t, reg.SetCriteria("cancelled", filter.Either()))
		available, err := reg.OptionAvailable("orig", scalar.Str("LAX"))
		require.NoError(t, err)
		assert.True(t, available)
	})
}

func TestLeaveOneOutIgnoresOwnCriteria(t *testing.T) {
	reg := newRegistry(t, origFilter(), cancelledFilter())
	selectJFK(t, reg)

	// A selected option is never grayed by the filter's own selection,
	// and a deselected one stays selectable while other filters permit
	// rows carrying it.
	for _, option := range []scalar.Scalar{scalar.Str("JFK"), scalar.Str("LAX")} {
		available, err := reg.OptionAvailable("orig", option)
		require.NoError(t, err)
		assert.True(t, available, "option %s", option)
	}
}

func TestStrictAvailability(t *testing.T) {
	reg, err := New(rows, WithStrictAvailability[row]())
	require.NoError(t, err)
	require.NoError(t, reg.Register(origFilter()))
	selectJFK(t, reg)

	// Under strict semantics the filter's own criteria participates, so
	// the deselected option grays immediately.
	available, err := reg.OptionAvailable("orig", scalar.Str("LAX"))
	require.NoError(t, err)
	assert.False(t, available)

	available, err = reg.OptionAvailable("orig", scalar.Str("JFK"))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestAnyMatchContinuousDomain(t *testing.T) {
	type trip struct {
		Orig string
		Dep  time.Time
	}
	trips := []trip{
		{Orig: "JFK", Dep: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Orig: "LAX", Dep: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
	}

	reg, err := New(trips)
	require.NoError(t, err)
	require.NoError(t, reg.Register(filter.NewString("orig", func(x trip) string { return x.Orig })))
	require.NoError(t, reg.Register(filter.NewDate("dep", func(x trip) time.Time { return x.Dep })))

	require.NoError(t, reg.SetCriteria("dep", filter.Query(">=6/1/2026,<=6/30/2026")))

	any, err := reg.AnyMatch("dep")
	require.NoError(t, err)
	assert.True(t, any)

	t.Run("empty under the other filters", func(t *testing.T) {
		options, err := reg.Options("orig")
		require.NoError(t, err)
		require.NoError(t, reg.SetCriteria("orig", filter.Only(options, scalar.Str("LAX"))))

		any, err := reg.AnyMatch("dep")
		require.NoError(t, err)
		assert.False(t, any)
	})
}

func TestAvailabilityRecomputedAfterMutation(t *testing.T) {
	reg := newRegistry(t, origFilter(), cancelledFilter())

	// Prime the cache.
	available, err := reg.OptionAvailable("orig", scalar.Str("LAX"))
	require.NoError(t, err)
	assert.True(t, available)

	// A mutation on the other filter must invalidate it.
	require.NoError(t, reg.SetCriteria("cancelled", filter.Exactly(true)))
	available, err = reg.OptionAvailable("orig", scalar.Str("LAX"))
	require.NoError(t, err)
	assert.False(t, available)

	// And a reset must bring it back.
	require.NoError(t, reg.Reset("cancelled"))
	available, err = reg.OptionAvailable("orig", scalar.Str("LAX"))
	require.NoError(t, err)
	assert.True(t, available)
}

func TestVisibleMaskMemoized(t *testing.T) {
	reg := newRegistry(t, origFilter())
	selectJFK(t, reg)

	first := reg.Visible()
	second := reg.Visible()
	assert.Equal(t, first, second)
	assert.Equal(t, []int{0, 1}, first)
}

func TestVisibleMaskClone(t *testing.T) {
	reg := newRegistry(t, origFilter())
	selectJFK(t, reg)

	mask := reg.VisibleMask()
	assert.True(t, mask.Contains(0))
	assert.True(t, mask.Contains(1))
	assert.False(t, mask.Contains(2))
	assert.Equal(t, uint64(2), mask.GetCardinality())

	t.Run("mutating the returned bitmap leaves the cache intact", func(t *testing.T) {
		mask.Add(2)
		assert.Equal(t, []int{0, 1}, reg.Visible())
		assert.False(t, reg.VisibleMask().Contains(2))
	})
}

func TestOptionAvailableValueAbsentFromDataset(t *testing.T) {
	reg := newRegistry(t, origFilter())

	available, err := reg.OptionAvailable("orig", scalar.Str("SFO"))
	require.NoError(t, err)
	assert.False(t, available)
}
