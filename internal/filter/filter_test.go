package filter_test

import (
	"testing"
	"time"

	"github.com/chaisql/locationhistory/internal/filter"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2021-06-01", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"2021-06-01 10:05:59", time.Date(2021, 6, 1, 10, 5, 59, 0, time.UTC)},
		{"2021-06-01T12:05:59+02:00", time.Date(2021, 6, 1, 10, 5, 59, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := filter.ParseTime(tt.input)
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := filter.ParseTime("yesterday-ish")
	require.Error(t, err)
}

func TestParseRange(t *testing.T) {
	r, err := filter.ParseRange("", "")
	require.NoError(t, err)
	require.True(t, r.IsZero())
	require.True(t, r.Contains(time.Now()))

	r, err = filter.ParseRange("2021-06-01", " 2021-06-02 ")
	require.NoError(t, err)
	require.False(t, r.IsZero())

	day := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	require.True(t, r.Contains(day))
	require.True(t, r.Contains(day.Add(23*time.Hour)))
	require.False(t, r.Contains(day.Add(-time.Second)))
	require.False(t, r.Contains(day.Add(24*time.Hour)))

	// same instant in another zone
	require.True(t, r.Contains(time.Date(2021, 6, 1, 3, 0, 0, 0, time.FixedZone("", 2*3600))))

	_, err = filter.ParseRange("2021-06-02", "2021-06-01")
	require.ErrorContains(t, err, "empty time range")

	_, err = filter.ParseRange("nope", "")
	require.ErrorContains(t, err, "since")

	_, err = filter.ParseRange("", "nope")
	require.ErrorContains(t, err, "until")
}
