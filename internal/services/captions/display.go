package captions

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/salecaption/internal/models"
)

// SelectTemplate picks the active sale type of a store for day: the first sale type
// whose routing rules match, otherwise the first sale type.
func SelectTemplate(store models.Store, day time.Time) (models.SaleTemplate, bool) {
	if len(store.SaleTypes) == 0 {
		return models.SaleTemplate{}, false
	}
	for _, t := range store.SaleTypes {
		if t.ActiveOn(day) {
			return t, true
		}
	}
	return store.SaleTypes[0], true
}

// FormatDisplayDates renders a sale period the way a template's date format expects.
// "Hasta ..." patterns show only the end date, ranges are joined with " - " when the
// pattern uses that separator and "-" otherwise, and a "yy" in the pattern appends the
// two-digit year. Spanish templates put the day first. It reports false when either
// end of the range is missing.
func FormatDisplayDates(r models.DateRange, pattern, lang string) (string, bool) {
	if !r.IsComplete() {
		return "", false
	}
	lower := strings.ToLower(pattern)
	includeYear := strings.Contains(lower, "yy")

	if strings.HasPrefix(lower, "hasta") {
		return displayDate(r.End, lang, includeYear), true
	}

	sep := "-"
	if strings.Contains(pattern, " - ") {
		sep = " - "
	}
	return displayDate(r.Start, lang, includeYear) + sep + displayDate(r.End, lang, includeYear), true
}

func displayDate(t time.Time, lang string, includeYear bool) string {
	var s string
	if strings.EqualFold(lang, models.LanguageSpanish) {
		s = fmt.Sprintf("%02d/%02d", t.Day(), int(t.Month()))
	} else {
		s = fmt.Sprintf("%02d/%02d", int(t.Month()), t.Day())
	}
	if includeYear {
		s += fmt.Sprintf("/%02d", t.Year()%100)
	}
	return s
}
