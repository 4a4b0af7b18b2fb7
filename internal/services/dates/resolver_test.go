package dates

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(year int, month time.Month, day int) Option {
	return WithClock(func() time.Time {
		return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
	})
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	r := NewResolver(fixedClock(2025, time.June, 1))

	tests := []struct {
		name  string
		token string
		want  time.Time
		ok    bool
	}{
		{"month day", "05/13", date(2025, 5, 13), true},
		{"single digits", "5/3", date(2025, 5, 3), true},
		{"short year", "5/13/25", date(2025, 5, 13), true},
		{"filler word", "Ends 05/20/25", date(2025, 5, 20), true},
		{"thru", "Thru 6/2", date(2025, 6, 2), true},
		{"dotted full year", "05.13.2025", date(2025, 5, 13), true},
		{"iso order", "2025/05/13", date(2025, 5, 13), true},
		{"english month", "May 15", date(2025, 5, 15), true},
		{"ordinal", "May 15th", date(2025, 5, 15), true},
		{"spanish month", "15 de mayo", date(2025, 5, 15), true},
		{"spanish filler", "Valido 20 junio", date(2025, 6, 20), true},
		{"day first swap", "13/05", date(2025, 5, 13), true},
		{"trailing text uses fallback", "05/13 only", date(2025, 5, 13), true},
		{"short year before pivot", "5/13/40", date(2040, 5, 13), true},
		{"short year after pivot", "5/13/99", date(1999, 5, 13), true},
		{"short year at pivot", "5/13/70", date(1970, 5, 13), true},
		{"explicit year too old", "5/13/1975", time.Time{}, false},
		{"explicit year too far ahead", "5/13/2040", time.Time{}, false},
		{"impossible day", "02/30", time.Time{}, false},
		{"no date", "hello", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.token)
			require.Equal(t, tt.ok, ok, "token %q", tt.token)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveWithoutYearUsesCurrentYear(t *testing.T) {
	for _, year := range []int{2024, 2025, 2031} {
		r := NewResolver(fixedClock(year, time.March, 10))
		for month := 1; month <= 12; month++ {
			for _, day := range []int{1, 9, 15, 28} {
				token := fmt.Sprintf("%d/%d", month, day)
				got, ok := r.Resolve(token)
				require.True(t, ok, token)
				assert.Equal(t, year, got.Year(), token)
				assert.Equal(t, time.Month(month), got.Month(), token)
				assert.Equal(t, day, got.Day(), token)
			}
		}
	}
}

func TestExpandTwoDigitYear(t *testing.T) {
	assert.Equal(t, 2000, ExpandTwoDigitYear(0))
	assert.Equal(t, 2025, ExpandTwoDigitYear(25))
	assert.Equal(t, 2069, ExpandTwoDigitYear(69))
	assert.Equal(t, 1970, ExpandTwoDigitYear(70))
	assert.Equal(t, 1999, ExpandTwoDigitYear(99))
}

func TestResolveShortYearPivot(t *testing.T) {
	r := NewResolver(fixedClock(2025, time.June, 1))
	got, ok := r.Resolve("12/31/26")
	require.True(t, ok)
	assert.Equal(t, date(2026, 12, 31), got)

	// two-digit years are kept wherever the pivot puts them
	got, ok = r.Resolve("5/13/75")
	require.True(t, ok)
	assert.Equal(t, date(1975, 5, 13), got)

	got, ok = r.Resolve("Ends 5/13/69")
	require.True(t, ok)
	assert.Equal(t, date(2069, 5, 13), got)

	_, ok = r.Resolve("5/13/1999")
	assert.False(t, ok)
}

func TestToday(t *testing.T) {
	r := NewResolver(fixedClock(2025, time.June, 1))
	assert.Equal(t, date(2025, 6, 1), r.Today())
}
