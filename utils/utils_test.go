package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		date string
		want int
	}{
		{"2026-03-09", -1},
		{"2026-03-10", 0},
		{"2026-03-11", 1},
		{"2026-04-10", 31},
		{"2025-03-10", -365},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, err := ParseDate(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, DaysBetween(today, date))
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "10.03.2026", "2026-13-01", "завтра"} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "17.03.2026", FormatDisplayDate("2026-03-17"))
	assert.Equal(t, "", FormatDisplayDate(""))
	assert.Equal(t, "в пятницу", FormatDisplayDate("в пятницу"))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2026-03-10 08:05", FormatTimestamp(time.Date(2026, 3, 10, 8, 5, 59, 0, time.UTC)))
	assert.Equal(t, "неизвестно", FormatTimestamp(time.Time{}))
}

func TestTruncate_CountsRunes(t *testing.T) {
	assert.Equal(t, "привет", Truncate("привет", 6))
	assert.Equal(t, "при...", Truncate("привет", 3))
}

func TestSplitArgs(t *testing.T) {
	assert.Nil(t, SplitArgs("/orders"))
	assert.Equal(t, []string{"Иван", "Петров", "Мафия", "2"}, SplitArgs(`/add_order "Иван Петров"  Мафия 2`))
	assert.Equal(t, []string{"x"}, SplitArgs(`/find_order "" x`))
}
