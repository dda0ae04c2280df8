package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterExplicitRange(t *testing.T) {
	filter, err := ParseFilter("2026-03-01", "2026-03-31", "Snacks", "alice")

	require.NoError(t, err)
	assert.Equal(t, 2026, filter.Start.Year())
	assert.Equal(t, time.March, filter.Start.Month())
	assert.Equal(t, 1, filter.Start.Day())
	assert.Equal(t, 31, filter.End.Day())
	assert.Equal(t, "Snacks", filter.Category)
	assert.Equal(t, "alice", filter.Salesperson)
}

func TestParseFilterDefaultsToLast30Days(t *testing.T) {
	filter, err := ParseFilter("", "", "", "")

	require.NoError(t, err)
	span := filter.End.Sub(filter.Start)
	assert.InDelta(t, 30*24, span.Hours(), 25) // 30 days, give or take a DST shift
	assert.Empty(t, filter.Category)
	assert.Empty(t, filter.Salesperson)
}

func TestParseFilterRejectsGarbageDates(t *testing.T) {
	_, err := ParseFilter("03/01/2026", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid start date")

	_, err = ParseFilter("", "tomorrow", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid end date")
}

func TestParseFilterRejectsInvertedRange(t *testing.T) {
	_, err := ParseFilter("2026-03-31", "2026-03-01", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start")
}
