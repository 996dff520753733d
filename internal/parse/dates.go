package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/okkonen/kinship/internal/model"
)

// Approximation qualifiers commonly found in genealogical sources.
// A bare "c" immediately before digits ("c1840", "c. 1840") also qualifies.
var (
	approxWordRe  = regexp.MustCompile(`(?i)(\b(abt|about|approx|approximately|around|circa|ca)\b\.?|~)`)
	bareCircaRe   = regexp.MustCompile(`(?i)\bc\.?\s*(\d)`)
	boundWordRe   = regexp.MustCompile(`(?i)\b(before|after)\b`)
	boundYearRe   = regexp.MustCompile(`(?i)\b(?:before|after)\s+(\d{4})\b`)
	quarterRe     = regexp.MustCompile(`(?i)\bQ([1-4])\s+(\d{4})\b`)
	firstYearRe   = regexp.MustCompile(`\d{4}`)
	ordinalSuffix = `(?:st|nd|rd|th)?`
)

// ParseDateFragment converts a free-text date phrase into a DateFragment.
// Only explicitly stated components are filled in; unrecognized phrases
// degrade to the first 4-digit year found, or to no components at all.
func ParseDateFragment(raw string) model.DateFragment {
	trimmed := strings.TrimSpace(raw)
	frag := model.DateFragment{Raw: trimmed}
	if trimmed == "" {
		return frag
	}

	approx := approxWordRe.MatchString(trimmed) ||
		bareCircaRe.MatchString(trimmed) ||
		boundWordRe.MatchString(trimmed)

	// Quarter notation: "Q1 1887" pins the quarter's first month
	if m := quarterRe.FindStringSubmatch(trimmed); m != nil {
		quarter, _ := strconv.Atoi(m[1])
		frag.Year, _ = strconv.Atoi(m[2])
		frag.Month = (quarter-1)*3 + 1
		frag.Approx = true
		return frag
	}

	// "before 1899" / "after 1901" bound the year only
	if m := boundYearRe.FindStringSubmatch(trimmed); m != nil {
		frag.Year, _ = strconv.Atoi(m[1])
		frag.Approx = true
		return frag
	}

	if year, month, day, ok := resolveDate(stripQualifiers(trimmed)); ok {
		frag.Year, frag.Month, frag.Day = year, month, day
		frag.Approx = approx
		return frag
	}

	// Fallback: first 4-digit run in the original text
	if m := firstYearRe.FindString(trimmed); m != "" {
		frag.Year, _ = strconv.Atoi(m)
	}
	frag.Approx = approx
	return frag
}

// stripQualifiers removes approximation tokens so the cleaned phrase can be
// handed to the date resolver
func stripQualifiers(s string) string {
	s = approxWordRe.ReplaceAllString(s, " ")
	s = boundWordRe.ReplaceAllString(s, " ")
	s = bareCircaRe.ReplaceAllString(s, "$1")
	s = strings.Trim(strings.Join(strings.Fields(s), " "), " .,")
	return s
}

var (
	dayMonthYearRe = regexp.MustCompile(`^(\d{1,2})` + ordinalSuffix + `\s+([A-Za-z]+)\.?,?\s+(\d{3,4})$`)
	monthDayYearRe = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2})` + ordinalSuffix + `,?\s+(\d{3,4})$`)
	monthYearRe    = regexp.MustCompile(`^([A-Za-z]+)\.?,?\s+(\d{3,4})$`)
	isoDateRe      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	numericDateRe  = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`)
	yearOnlyRe     = regexp.MustCompile(`^(\d{3,4})$`)
)

var monthNames = map[string]int{
	"january":   1,
	"jan":       1,
	"february":  2,
	"feb":       2,
	"march":     3,
	"mar":       3,
	"april":     4,
	"apr":       4,
	"may":       5,
	"june":      6,
	"jun":       6,
	"july":      7,
	"jul":       7,
	"august":    8,
	"aug":       8,
	"september": 9,
	"sep":       9,
	"sept":      9,
	"october":   10,
	"oct":       10,
	"november":  11,
	"nov":       11,
	"december":  12,
	"dec":       12,
}

// resolveDate parses a cleaned date phrase, accepting only components the
// phrase states explicitly. Numeric dd/mm/yyyy dates are read day-first,
// the prevailing convention in the registers this tool targets.
func resolveDate(s string) (year, month, day int, ok bool) {
	if m := dayMonthYearRe.FindStringSubmatch(s); m != nil {
		month, ok = monthNames[strings.ToLower(m[2])]
		if !ok {
			return 0, 0, 0, false
		}
		day, _ = strconv.Atoi(m[1])
		year, _ = strconv.Atoi(m[3])
		return validDate(year, month, day)
	}
	if m := monthDayYearRe.FindStringSubmatch(s); m != nil {
		month, ok = monthNames[strings.ToLower(m[1])]
		if !ok {
			return 0, 0, 0, false
		}
		day, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
		return validDate(year, month, day)
	}
	if m := monthYearRe.FindStringSubmatch(s); m != nil {
		month, ok = monthNames[strings.ToLower(m[1])]
		if !ok {
			return 0, 0, 0, false
		}
		year, _ = strconv.Atoi(m[2])
		return validDate(year, month, 0)
	}
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		day, _ = strconv.Atoi(m[3])
		return validDate(year, month, day)
	}
	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		year, _ = strconv.Atoi(m[3])
		return validDate(year, month, day)
	}
	if m := yearOnlyRe.FindStringSubmatch(s); m != nil {
		year, _ = strconv.Atoi(m[1])
		return year, 0, 0, true
	}
	return 0, 0, 0, false
}

func validDate(year, month, day int) (int, int, int, bool) {
	if month < 0 || month > 12 || day < 0 || day > 31 {
		return 0, 0, 0, false
	}
	return year, month, day, true
}
