// Package dates parses the target-date expressions given to the apply
// command into calendar dates.
package dates

import (
	"sort"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/punchcard-cli/punchcard/internal/errors"
)

// isoDate is the fast-path layout; everything else goes through the natural
// language parser.
const isoDate = "2006-01-02"

// ParseOne parses a single date expression ("2024-01-02", "monday",
// "yesterday") relative to now, truncated to midnight in loc.
func ParseOne(expr string, now time.Time, loc *time.Location) (time.Time, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return time.Time{}, errors.NewUserError("Date expression cannot be empty",
			"Provide a date like 2024-01-02 or an expression like 'monday'")
	}

	if t, err := time.ParseInLocation(isoDate, expr, loc); err == nil {
		return t, nil
	}

	if strings.EqualFold(expr, "today") {
		return Midnight(now, loc), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, expr)
	if err != nil {
		return time.Time{}, errors.NewUserErrorWithField("date", expr,
			"Invalid date expression",
			"Use YYYY-MM-DD or a natural expression like 'monday' or 'yesterday'")
	}
	return Midnight(result.Time, loc), nil
}

// Parse parses every expression, collapses duplicates, and returns the dates
// sorted ascending.
func Parse(exprs []string, now time.Time, loc *time.Location) ([]time.Time, error) {
	seen := make(map[time.Time]bool, len(exprs))
	var out []time.Time
	for _, expr := range exprs {
		d, err := ParseOne(expr, now, loc)
		if err != nil {
			return nil, err
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
