package holidays

import (
	"time"
)

// RuleKind tags how a holiday date is computed.
type RuleKind string

const (
	KindFixed       RuleKind = "fixed"        // Month/Day every year
	KindNthWeekday  RuleKind = "nth_weekday"  // Nth Weekday of Month
	KindLastWeekday RuleKind = "last_weekday" // last Weekday of Month
	KindMonthRange  RuleKind = "month_range"  // any day from Month through EndMonth
)

// Rule describes one holiday.
type Rule struct {
	Name     string
	Kind     RuleKind
	Month    time.Month
	Day      int
	Nth      int
	Weekday  time.Weekday
	EndMonth time.Month
}

// Matches reports whether day falls on the holiday.
func (r Rule) Matches(day time.Time) bool {
	switch r.Kind {
	case KindFixed:
		return day.Month() == r.Month && day.Day() == r.Day
	case KindNthWeekday:
		d, ok := NthWeekday(day.Year(), r.Month, r.Weekday, r.Nth)
		return ok && sameDay(d, day)
	case KindLastWeekday:
		return sameDay(LastWeekday(day.Year(), r.Month, r.Weekday), day)
	case KindMonthRange:
		return day.Month() >= r.Month && day.Month() <= r.EndMonth
	}
	return false
}

// DefaultRules is the U.S. holiday table in lookup order.
// Easter is approximated by the whole of March and April.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "New Year's Day", Kind: KindFixed, Month: time.January, Day: 1},
		{Name: "Martin Luther King Jr. Day", Kind: KindNthWeekday, Month: time.January, Nth: 3, Weekday: time.Monday},
		{Name: "Valentine's Day", Kind: KindFixed, Month: time.February, Day: 14},
		{Name: "Presidents' Day", Kind: KindNthWeekday, Month: time.February, Nth: 3, Weekday: time.Monday},
		{Name: "St. Patrick's Day", Kind: KindFixed, Month: time.March, Day: 17},
		{Name: "Easter Season", Kind: KindMonthRange, Month: time.March, EndMonth: time.April},
		{Name: "Memorial Day", Kind: KindLastWeekday, Month: time.May, Weekday: time.Monday},
		{Name: "Juneteenth", Kind: KindFixed, Month: time.June, Day: 19},
		{Name: "Independence Day (4th of July)", Kind: KindFixed, Month: time.July, Day: 4},
		{Name: "Labor Day", Kind: KindNthWeekday, Month: time.September, Nth: 1, Weekday: time.Monday},
		{Name: "Indigenous Peoples' Day/Columbus Day", Kind: KindNthWeekday, Month: time.October, Nth: 2, Weekday: time.Monday},
		{Name: "Halloween", Kind: KindFixed, Month: time.October, Day: 31},
		{Name: "Veterans Day", Kind: KindFixed, Month: time.November, Day: 11},
		{Name: "Thanksgiving Day", Kind: KindNthWeekday, Month: time.November, Nth: 4, Weekday: time.Thursday},
		{Name: "Christmas Day", Kind: KindFixed, Month: time.December, Day: 25},
	}
}

// Calendar finds holidays inside date ranges.
type Calendar struct {
	rules []Rule
}

// NewCalendar creates a calendar over rules, or DefaultRules when none are given.
func NewCalendar(rules ...Rule) *Calendar {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Calendar{rules: rules}
}

// Lookup scans start..end inclusive, day by day, and returns the first holiday
// found, checking rules in table order for each day. It returns "" when no day
// in the range is a holiday or either bound is missing.
func (c *Calendar) Lookup(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return ""
	}
	for day := truncate(start); !day.After(truncate(end)); day = day.AddDate(0, 0, 1) {
		for _, rule := range c.rules {
			if rule.Matches(day) {
				return rule.Name
			}
		}
	}
	return ""
}

// NthWeekday returns the nth weekday of month, or false when the month has fewer.
func NthWeekday(year int, month time.Month, weekday time.Weekday, nth int) (time.Time, bool) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	d := first.AddDate(0, 0, offset+(nth-1)*7)
	if d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

// LastWeekday returns the last weekday of month.
func LastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
