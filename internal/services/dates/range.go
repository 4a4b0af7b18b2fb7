package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/salecaption/internal/models"
)

var (
	rangeSeparator = regexp.MustCompile(`(?i)\s+to\s+|\s*-\s*|\s*–\s*`)
	bareDay        = regexp.MustCompile(`^\d{1,2}$`)
	isoDate        = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
)

// RangeResult is the outcome of reading a "Sale Dates" value.
type RangeResult struct {
	Range         models.DateRange
	StartResolved bool
	EndResolved   bool
	Notes         []models.DiagnosticCode
}

// DefaultRange is today through today+6.
func (r *Resolver) DefaultRange() models.DateRange {
	return models.DefaultDateRange(r.Today())
}

// ResolveRange reads text such as "05/13 to 05/15" or "05/13-15" into a date range.
// Unresolved ends keep the values from prior. The result always has Start <= End;
// every repair applied is listed in Notes.
func (r *Resolver) ResolveRange(text string, prior models.DateRange) RangeResult {
	res := RangeResult{Range: prior}
	if !prior.IsComplete() {
		res.Range = r.DefaultRange()
	}

	text = strings.TrimSpace(text)
	if models.IsSentinel(text) {
		res.Notes = append(res.Notes, models.DiagnosticSaleDatesMissing)
		return res
	}

	// ISO dates would otherwise split on their own hyphens
	parts := rangeSeparator.Split(isoDate.ReplaceAllString(text, "$1/$2/$3"), -1)

	var start, end time.Time
	start, res.StartResolved = r.Resolve(parts[0])
	if len(parts) >= 2 {
		endText := strings.TrimSpace(parts[1])
		if bareDay.MatchString(endText) && res.StartResolved {
			day, _ := strconv.Atoi(endText)
			end, res.EndResolved = DayAfterOrOn(start, day)
		} else {
			end, res.EndResolved = r.Resolve(endText)
		}
	}

	switch {
	case res.StartResolved && res.EndResolved:
		res.Range = models.DateRange{Start: start, End: end}
	case res.StartResolved:
		res.Range = models.DateRange{Start: start, End: start.AddDate(0, 0, 1)}
		res.Notes = append(res.Notes, models.DiagnosticEndDateInferred)
	case res.EndResolved:
		res.Range.End = end
		res.Notes = append(res.Notes, models.DiagnosticStartDateDefaulted)
	default:
		res.Notes = append(res.Notes, models.DiagnosticSaleDatesMissing)
	}

	if res.Range.Normalize() {
		res.Notes = append(res.Notes, models.DiagnosticDatesReordered)
	}
	return res
}

// DayAfterOrOn completes a bare end day against start: same month when day >= start's
// day, otherwise the following month (and year after December). It reports false when
// the day does not exist in that month.
func DayAfterOrOn(start time.Time, day int) (time.Time, bool) {
	year, month := start.Year(), start.Month()
	if day < start.Day() {
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return makeDate(year, int(month), day)
}
