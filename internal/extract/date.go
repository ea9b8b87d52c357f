package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	numericDateRe   = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2}|\d{4})$`)
	canonicalDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// Day (with optional ordinal suffix) and four-digit year following a
	// spelled-out month name.
	dayYearRe = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?[,\s]+(\d{4})`)
)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// normalizeDate converts a raw date string into canonical YYYY-MM-DD form.
// Formats are tried in a fixed order and the first match wins. When nothing
// matches, the original string is returned unchanged — never discarded,
// never replaced with a guess.
func normalizeDate(raw string) string {
	s := strings.TrimSpace(raw)

	// M/D/YY or M/D/YYYY, slash or hyphen separated. Two-digit years pivot
	// at 50: values above it land in the 1900s, the rest in the 2000s.
	if m := numericDateRe.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			if year > 50 {
				year += 1900
			} else {
				year += 2000
			}
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		}
	}

	// "Month D[st|nd|rd|th], YYYY" with a case-insensitive substring match
	// against the month-name table.
	lower := strings.ToLower(s)
	for i, name := range monthNames {
		idx := strings.Index(lower, name)
		if idx == -1 {
			continue
		}
		if m := dayYearRe.FindStringSubmatch(s[idx+len(name):]); m != nil {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[2])
			if day >= 1 && day <= 31 {
				return fmt.Sprintf("%04d-%02d-%02d", year, i+1, day)
			}
		}
		break
	}

	// Already canonical.
	if canonicalDateRe.MatchString(s) {
		return s
	}

	// Generic calendar parse as a last resort.
	for _, layout := range []string{
		"Jan 2, 2006",
		"2 January 2006",
		"2006/01/02",
		"2006-01-02 15:04:05",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return raw
}
