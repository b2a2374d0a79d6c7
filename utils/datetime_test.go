package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMealDateTime(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	got, err := ParseMealDateTime("25/12/2023", "19:30", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2023, 12, 25, 19, 30, 0, 0, loc)))
	assert.Equal(t, loc, got.Location())
}

func TestParseMealDateTimeDefaultsToUTC(t *testing.T) {
	got, err := ParseMealDateTime(" 01/02/2024 ", "07:05", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 7, 5, 0, 0, time.UTC), got)
}

func TestParseMealDateTimeRejectsMalformedInput(t *testing.T) {
	cases := []struct{ date, clock string }{
		{"2024-02-01", "07:05"},
		{"31/02/2024", "07:05"},
		{"01/13/2024", "07:05"},
		{"01/02/2024", "25:00"},
		{"01/02/2024", "7h"},
		{"01/02/2024", "9:05"},
		{"1/02/2024", "09:05"},
		{"", "07:05"},
		{"01/02/2024", ""},
	}
	for _, tc := range cases {
		_, err := ParseMealDateTime(tc.date, tc.clock, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidDateTime, "%q %q", tc.date, tc.clock)
	}
}
