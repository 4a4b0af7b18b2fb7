package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/salecaption/internal/models"
)

func TestResolveRange(t *testing.T) {
	r := NewResolver(fixedClock(2025, time.June, 1))
	prior := r.DefaultRange()

	tests := []struct {
		name      string
		text      string
		wantStart time.Time
		wantEnd   time.Time
		wantNotes []models.DiagnosticCode
	}{
		{"full range", "05/13 to 05/15", date(2025, 5, 13), date(2025, 5, 15), nil},
		{"uppercase separator", "05/13 TO 05/15", date(2025, 5, 13), date(2025, 5, 15), nil},
		{"bare end day same month", "05/13-15", date(2025, 5, 13), date(2025, 5, 15), nil},
		{"bare end day rolls month", "05/30-02", date(2025, 5, 30), date(2025, 6, 2), nil},
		{"bare end day rolls year", "12/30-02", date(2025, 12, 30), date(2026, 1, 2), nil},
		{"en dash", "05/13–05/16", date(2025, 5, 13), date(2025, 5, 16), nil},
		{"month name range", "May 15-20", date(2025, 5, 15), date(2025, 5, 20), nil},
		{"iso dates", "2025-05-13 - 2025-05-20", date(2025, 5, 13), date(2025, 5, 20), nil},
		{
			"iso start only", "2025-05-13",
			date(2025, 5, 13), date(2025, 5, 14),
			[]models.DiagnosticCode{models.DiagnosticEndDateInferred},
		},
		{
			"reversed range is swapped", "05/20 - 05/13",
			date(2025, 5, 13), date(2025, 5, 20),
			[]models.DiagnosticCode{models.DiagnosticDatesReordered},
		},
		{
			"start only infers end", "05/13",
			date(2025, 5, 13), date(2025, 5, 14),
			[]models.DiagnosticCode{models.DiagnosticEndDateInferred},
		},
		{
			"impossible bare day infers end", "06/13-31",
			date(2025, 6, 13), date(2025, 6, 14),
			[]models.DiagnosticCode{models.DiagnosticEndDateInferred},
		},
		{
			"end only keeps default start", "soon to 06/20",
			date(2025, 6, 1), date(2025, 6, 20),
			[]models.DiagnosticCode{models.DiagnosticStartDateDefaulted},
		},
		{
			"end only before default start is reordered", "soon to 05/15",
			date(2025, 5, 15), date(2025, 6, 1),
			[]models.DiagnosticCode{models.DiagnosticStartDateDefaulted, models.DiagnosticDatesReordered},
		},
		{
			"nothing resolved", "next week",
			date(2025, 6, 1), date(2025, 6, 7),
			[]models.DiagnosticCode{models.DiagnosticSaleDatesMissing},
		},
		{
			"sentinel", "Not found",
			date(2025, 6, 1), date(2025, 6, 7),
			[]models.DiagnosticCode{models.DiagnosticSaleDatesMissing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.ResolveRange(tt.text, prior)
			assert.Equal(t, tt.wantStart, res.Range.Start)
			assert.Equal(t, tt.wantEnd, res.Range.End)
			assert.Equal(t, tt.wantNotes, res.Notes)
			assert.False(t, res.Range.Start.After(res.Range.End))
		})
	}
}

func TestResolveRangeIncompletePriorUsesDefaults(t *testing.T) {
	r := NewResolver(fixedClock(2025, time.June, 1))
	res := r.ResolveRange("", models.DateRange{})
	assert.Equal(t, r.DefaultRange(), res.Range)
	assert.Equal(t, []models.DiagnosticCode{models.DiagnosticSaleDatesMissing}, res.Notes)
}

func TestDayAfterOrOn(t *testing.T) {
	got, ok := DayAfterOrOn(date(2025, 1, 31), 28)
	assert.True(t, ok)
	assert.Equal(t, date(2025, 2, 28), got)

	_, ok = DayAfterOrOn(date(2025, 1, 31), 30)
	assert.False(t, ok, "February 30th does not exist")
}
