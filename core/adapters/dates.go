// ABOUTME: Publication date normalization interpreted in Japan Standard Time
// ABOUTME: Source-specific patterns first, then generic date parsing, never an error

package adapters

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/araddon/dateparse"
	"golang.org/x/text/width"
)

// JST is the zone article dates are written in, independent of the host's local zone
var JST = loadJST()

func loadJST() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// datePattern captures year, month, day, hour, minute and optionally second, in that order
type datePattern struct {
	re *regexp.Regexp
}

var (
	// 2024年12月18日 11時45分
	kanjiDatePattern = datePattern{re: regexp.MustCompile(`(\d{4})年\s*(\d{1,2})月\s*(\d{1,2})日[^\d]*?(\d{1,2})時\s*(\d{1,2})分`)}

	// 2024-12-18 11:45:00
	isoDatePattern = datePattern{re: regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})[ T](\d{1,2}):(\d{2}):(\d{2})`)}

	// a time of day followed by Z or a numeric UTC offset at the end of the string
	zoneSuffix = regexp.MustCompile(`(?i)\d{1,2}:\d{2}(?::\d{2}(?:\.\d+)?)?\s*(?:z|[+-]\d{2}:?\d{2})$`)
)

// match returns the time in JST if the pattern matches
func (p datePattern) match(s string) (time.Time, bool) {
	m := p.re.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	fields := make([]int, 6)
	for i := 1; i < len(m) && i <= 6; i++ {
		n, err := strconv.Atoi(m[i])
		if err != nil {
			return time.Time{}, false
		}
		fields[i-1] = n
	}
	t := time.Date(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5], 0, JST)
	if t.Month() != time.Month(fields[1]) || t.Day() != fields[2] {
		return time.Time{}, false
	}
	return t, true
}

// parseZoned parses a date that states its own offset, keeping that offset
func parseZoned(s string) (time.Time, bool) {
	if !zoneSuffix.MatchString(s) {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// normalizeDate parses a locale-formatted date string with the source pattern,
// falling back to generic parsing in JST. Strings carrying a zone designator
// keep their own offset. It returns nil when nothing matches.
func normalizeDate(raw string, pattern datePattern) *time.Time {
	s := strings.TrimSpace(width.Narrow.String(raw))
	if s == "" {
		return nil
	}
	if t, ok := parseZoned(s); ok {
		return &t
	}
	if t, ok := pattern.match(s); ok {
		return &t
	}
	t, err := dateparse.ParseIn(s, JST)
	if err != nil {
		return nil
	}
	return &t
}

// ParseKanjiDate normalizes dates written as 2024年12月18日 11時45分
func ParseKanjiDate(raw string) *time.Time {
	return normalizeDate(raw, kanjiDatePattern)
}

// ParseISODate normalizes dates written as 2024-12-18 11:45:00
func ParseISODate(raw string) *time.Time {
	return normalizeDate(raw, isoDatePattern)
}
