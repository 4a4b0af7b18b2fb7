package dates

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	errInvalidDate = errors.New("invalid calendar date")
	errNoDate      = errors.New("no date in token")
	errUnknownWord = errors.New("unrecognized word in date token")
	errAmbiguous   = errors.New("too many numbers in date token")
)

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January, "enero": time.January, "ene": time.January,
	"february": time.February, "feb": time.February, "febrero": time.February,
	"march": time.March, "mar": time.March, "marzo": time.March,
	"april": time.April, "apr": time.April, "abril": time.April, "abr": time.April,
	"may": time.May, "mayo": time.May,
	"june": time.June, "jun": time.June, "junio": time.June,
	"july": time.July, "jul": time.July, "julio": time.July,
	"august": time.August, "aug": time.August, "agosto": time.August, "ago": time.August,
	"september": time.September, "sep": time.September, "sept": time.September, "septiembre": time.September, "setiembre": time.September, "set": time.September,
	"october": time.October, "oct": time.October, "octubre": time.October,
	"november": time.November, "nov": time.November, "noviembre": time.November,
	"december": time.December, "dec": time.December, "diciembre": time.December, "dic": time.December,
}

var weekdayNames = map[string]bool{
	"monday": true, "mon": true, "tuesday": true, "tue": true, "tues": true,
	"wednesday": true, "wed": true, "thursday": true, "thu": true, "thur": true, "thurs": true,
	"friday": true, "fri": true, "saturday": true, "sat": true, "sunday": true, "sun": true,
	"lunes": true, "martes": true, "miercoles": true, "miércoles": true, "jueves": true,
	"viernes": true, "sabado": true, "sábado": true, "domingo": true,
}

var ordinalSuffixes = map[string]bool{"st": true, "nd": true, "rd": true, "th": true, "ro": true, "er": true}

// connectors glue day, month and year in phrases like "15 de mayo de 2025".
var connectors = []string{"del", "de", "of", "the"}

type number struct {
	value  int
	digits int
}

// parseLoose reads a whitespace-free token in month-first order. Missing parts
// default to January 1st of defaultYear. With fuzzy set, unknown words are skipped.
func parseLoose(s string, defaultYear int, fuzzy bool) (time.Time, error) {
	var (
		nums      []number
		month     time.Month
		lastIsNum bool
	)

	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			v, err := strconv.Atoi(string(runes[i:j]))
			if err != nil {
				return time.Time{}, err
			}
			nums = append(nums, number{value: v, digits: j - i})
			lastIsNum = true
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			word := trimConnectors(strings.ToLower(string(runes[i:j])))
			switch {
			case word == "":
			case monthNames[word] != 0 && month == 0:
				month = monthNames[word]
			case weekdayNames[word]:
			case ordinalSuffixes[word] && lastIsNum:
			case fuzzy:
			default:
				return time.Time{}, errUnknownWord
			}
			lastIsNum = false
			i = j
		default:
			lastIsNum = false
			i++
		}
	}

	if month != 0 {
		return fromMonthName(month, nums, defaultYear)
	}
	return fromNumbers(nums, defaultYear)
}

func trimConnectors(word string) string {
	for changed := true; changed; {
		changed = false
		for _, c := range connectors {
			if word == c {
				return ""
			}
			if strings.HasPrefix(word, c) && monthNames[strings.TrimPrefix(word, c)] != 0 {
				word, changed = strings.TrimPrefix(word, c), true
			}
			if strings.HasSuffix(word, c) && monthNames[strings.TrimSuffix(word, c)] != 0 {
				word, changed = strings.TrimSuffix(word, c), true
			}
		}
	}
	return word
}

func fromMonthName(month time.Month, nums []number, defaultYear int) (time.Time, error) {
	year, day := defaultYear, 1
	var rest []number
	yearSet := false
	for _, n := range nums {
		if !yearSet && (n.digits == 4 || n.value > 31) {
			year, yearSet = n.value, true
			continue
		}
		rest = append(rest, n)
	}
	switch len(rest) {
	case 0:
	case 1:
		day = rest[0].value
	case 2:
		if yearSet {
			return time.Time{}, errAmbiguous
		}
		day = rest[0].value
		year = expandYear(rest[1])
	default:
		return time.Time{}, errAmbiguous
	}
	d, ok := makeDate(year, int(month), day)
	if !ok {
		return time.Time{}, errInvalidDate
	}
	return d, nil
}

func fromNumbers(nums []number, defaultYear int) (time.Time, error) {
	year, month, day := defaultYear, 1, 1
	switch len(nums) {
	case 0:
		return time.Time{}, errNoDate
	case 1:
		n := nums[0]
		switch {
		case n.digits == 8:
			year, month, day = n.value/10000, n.value/100%100, n.value%100
		case n.digits == 4:
			year = n.value
		case n.digits <= 2:
			day = n.value
		default:
			return time.Time{}, errAmbiguous
		}
	case 2:
		a, b := nums[0], nums[1]
		switch {
		case a.digits == 4:
			year, month = a.value, b.value
		case b.digits == 4:
			month, year = a.value, b.value
		default:
			month, day = a.value, b.value
		}
	case 3:
		a, b, c := nums[0], nums[1], nums[2]
		if a.digits == 4 {
			year, month, day = a.value, b.value, c.value
		} else {
			month, day, year = a.value, b.value, expandYear(c)
		}
	default:
		return time.Time{}, errAmbiguous
	}
	if month > 12 && day <= 12 {
		month, day = day, month
	}
	d, ok := makeDate(year, month, day)
	if !ok {
		return time.Time{}, errInvalidDate
	}
	return d, nil
}

func expandYear(n number) int {
	if n.digits <= 2 {
		return ExpandTwoDigitYear(n.value)
	}
	return n.value
}
