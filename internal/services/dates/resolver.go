package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Year bounds relative to the current year for an accepted date.
const (
	MinYearOffset = -2
	MaxYearOffset = 5
)

var (
	fillerWords   = regexp.MustCompile(`(?i)\b(ends|until|from|sale|starts|on|due|valido|expira|thru|through)\b\s*`)
	fullYear      = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	shortYear     = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2}\b`)
	fallbackForms = []*regexp.Regexp{
		regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})`),
		regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})`),
		regexp.MustCompile(`^(\d{1,2})/(\d{1,2})`),
	}
)

// Clock returns the current time.
type Clock func() time.Time

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock overrides the time source used for "today" and the current year.
func WithClock(clock Clock) Option {
	return func(r *Resolver) {
		if clock != nil {
			r.now = clock
		}
	}
}

// Resolver turns loosely formatted sale date text into calendar dates.
type Resolver struct {
	now Clock
}

// NewResolver creates a Resolver using the wall clock unless overridden.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Today returns the current day at midnight.
func (r *Resolver) Today() time.Time {
	n := r.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// Resolve interprets a single date token such as "05/13", "May 15" or "Ends 05/20/25".
// Month-first order is assumed. A token without a year takes the current year.
// A two-digit year pivots at 70 and is kept as read; a four-digit year must fall
// within the accepted window. It reports false when the token cannot be read as
// a plausible date.
func (r *Resolver) Resolve(token string) (time.Time, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}
	currentYear := r.now().Year()

	slashed := strings.ReplaceAll(token, ".", "/")
	explicitFullYear := fullYear.MatchString(slashed)
	explicitYear := explicitFullYear || shortYear.MatchString(slashed)

	cleaned := strings.TrimSpace(fillerWords.ReplaceAllString(slashed, ""))
	cleaned = strings.Join(strings.Fields(cleaned), "")

	parsed, err := parseLoose(cleaned, currentYear, false)
	if err != nil {
		return resolveFallback(cleaned, currentYear)
	}

	if !explicitYear {
		if parsed, err = withYear(parsed, currentYear); err != nil {
			return resolveFallback(cleaned, currentYear)
		}
	} else if explicitFullYear && abs(parsed.Year()-currentYear) > MaxYearOffset {
		fuzzy, err := parseLoose(cleaned, currentYear, true)
		if err != nil || abs(fuzzy.Year()-currentYear) > MaxYearOffset {
			return time.Time{}, false
		}
		parsed = fuzzy
	}

	if !inBounds(parsed.Year(), currentYear) {
		switch {
		case explicitFullYear:
			return time.Time{}, false
		case !explicitYear:
			if parsed, err = withYear(parsed, currentYear); err != nil {
				return time.Time{}, false
			}
		}
	}
	return parsed, true
}

// resolveFallback tries strict M/D/YYYY, M/D/YY and M/D prefixes in that order.
func resolveFallback(cleaned string, currentYear int) (time.Time, bool) {
	for _, form := range fallbackForms {
		m := form.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		year := currentYear
		if len(m) > 3 {
			year, _ = strconv.Atoi(m[3])
			if len(m[3]) == 2 {
				year = ExpandTwoDigitYear(year)
			}
		}
		if d, ok := makeDate(year, month, day); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// ExpandTwoDigitYear maps yy to 2000+yy when yy < 70 and 1900+yy otherwise.
func ExpandTwoDigitYear(yy int) int {
	if yy < 70 {
		return 2000 + yy
	}
	return 1900 + yy
}

func inBounds(year, currentYear int) bool {
	return year >= currentYear+MinYearOffset && year <= currentYear+MaxYearOffset
}

func withYear(t time.Time, year int) (time.Time, error) {
	d, ok := makeDate(year, int(t.Month()), t.Day())
	if !ok {
		return time.Time{}, errInvalidDate
	}
	return d, nil
}

// makeDate builds a UTC date, rejecting values time.Date would normalize.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
