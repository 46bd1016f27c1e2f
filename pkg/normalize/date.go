package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/portfolio/pkg/gviz"
	"github.com/harrisonrobin/portfolio/pkg/model"
)

var (
	// Date cells come back as "Date(2024,4,20)" with a zero-based month,
	// optionally followed by hour, minute and second.
	dateTokenRe = regexp.MustCompile(`^Date\(([^)]*)\)$`)
	digitsRe    = regexp.MustCompile(`\d+`)
)

// Text cells are tried against these layouts in order. The sheet is kept
// in pt-BR, so slashed dates are day first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"2006/01/02",
}

// Date converts a cell value into the canonical date string, or "" when
// the value is absent or not a date. It never fails.
func Date(value any) string {
	s := strings.TrimSpace(gviz.Stringify(value))
	if s == "" {
		return ""
	}

	if m := dateTokenRe.FindStringSubmatch(s); m != nil {
		if t, ok := fromDateToken(m[1]); ok {
			return model.FormatDate(t)
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.FormatDate(t)
		}
	}
	return ""
}

func fromDateToken(args string) (time.Time, bool) {
	parts := digitsRe.FindAllString(args, -1)
	if len(parts) < 3 {
		return time.Time{}, false
	}
	var n [3]int
	for i := range n {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return time.Time{}, false
		}
		n[i] = v
	}
	// time.Date normalizes overflow (month 12, day 32) the same way the
	// sheet's own date arithmetic does.
	t := time.Date(n[0], time.Month(n[1]+1), n[2], 0, 0, 0, 0, time.UTC)
	// The canonical layout only holds four-digit years.
	if t.Year() < 0 || t.Year() > 9999 {
		return time.Time{}, false
	}
	return t, true
}
