package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asaidimu/go-gridfilter/core/scalar"
)

func TestMatchStringPattern(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		want   bool
	}{
		{"prefix match", "JF", "JFK", true},
		{"no match", "LA", "JFK", false},
		{"any of comma separated terms", "LA,JF", "JFK", true},
		{"exact value", "JFK", "JFK", true},
		{"longer than target", "JFKX", "JFK", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchStringPattern(tt.query, tt.target))
		})
	}
}

func TestMatchNumberPattern(t *testing.T) {
	tests := []struct {
		name  string
		query string
		value int64
		want  bool
	}{
		{"less than", "<100", 99, true},
		{"less than boundary", "<100", 100, false},
		{"less or equal boundary", "<=100", 100, true},
		{"greater than", ">100", 101, true},
		{"greater or equal", ">=100", 100, true},
		{"range over two terms", ">=100,<=200", 150, true},
		{"range excludes below", ">=100,<=200", 99, false},
		{"range excludes above", ">=100,<=200", 201, false},
		{"bare term is a prefix match", "12", 123, true},
		{"bare term prefix miss", "13", 123, false},
		{"malformed comparison degrades to prefix", "<abc", 123, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchNumberPattern(tt.query, tt.value))
		})
	}
}

func TestMatchDatePattern(t *testing.T) {
	day := func(raw string) int64 {
		s, err := scalar.ParseDate(raw)
		require.NoError(t, err)
		return s.I
	}

	tests := []struct {
		name  string
		query string
		value int64
		want  bool
	}{
		{"before", "<6/15/2026", day("6/14/2026"), true},
		{"before boundary", "<6/15/2026", day("6/15/2026"), false},
		{"on or before", "<=6/15/2026", day("6/15/2026"), true},
		{"after", ">6/15/2026", day("6/16/2026"), true},
		{"inclusive range", ">=6/1/2026,<=6/30/2026", day("6/15/2026"), true},
		{"range excludes other month", ">=6/1/2026,<=6/30/2026", day("7/1/2026"), false},
		{"bare term prefix on display form", "6/1", day("6/14/2026"), true},
		{"bare term prefix miss", "7/", day("6/14/2026"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchDatePattern(tt.query, tt.value))
		})
	}
}
