// Package apply implements template expansion and bulk application: a
// template's day-relative entries are stamped onto calendar dates, producing
// one concrete time-entry creation request per (date, entry) pair.
package apply

import (
	"time"

	"github.com/punchcard-cli/punchcard/internal/clockify"
	"github.com/punchcard-cli/punchcard/internal/errors"
	"github.com/punchcard-cli/punchcard/internal/model"
)

// timeOfDay is the layout of a day-relative template offset.
const timeOfDay = "15:04"

// Item is one expanded (date, entry) pair: the request to issue plus the
// context needed to report a failure.
type Item struct {
	Request     clockify.TimeEntryRequest
	Description string
	Date        time.Time
}

// Expand computes the full cross product of dates and template entries. Each
// item's start instant combines the date's calendar day with the entry's
// start offset (seconds and nanos zeroed) in loc; likewise the end instant.
// An interval whose end is numerically earlier than its start is NOT
// normalized — it is expanded as-is and the remote API's validation governs
// the outcome.
func Expand(t *model.Template, dateList []time.Time, loc *time.Location) ([]Item, error) {
	if loc == nil {
		loc = time.Local
	}

	items := make([]Item, 0, len(dateList)*len(t.Entries))
	for _, date := range dateList {
		for _, entry := range t.Entries {
			start, err := at(date, entry.StartTime, loc)
			if err != nil {
				return nil, invalidOffset(entry.StartTime)
			}
			end, err := at(date, entry.EndTime, loc)
			if err != nil {
				return nil, invalidOffset(entry.EndTime)
			}

			items = append(items, Item{
				Request: clockify.TimeEntryRequest{
					Start:       start,
					End:         end,
					Billable:    entry.Billable,
					Description: entry.Description,
					ProjectID:   entry.ProjectID,
					TaskID:      entry.TaskID,
				},
				Description: entry.Description,
				Date:        date,
			})
		}
	}
	return items, nil
}

// at combines a calendar date with an "HH:mm" offset.
func at(date time.Time, offset string, loc *time.Location) (time.Time, error) {
	clock, err := time.Parse(timeOfDay, offset)
	if err != nil {
		return time.Time{}, err
	}
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

func invalidOffset(value string) error {
	return errors.NewUserErrorWithField("time", value,
		"Invalid time of day in template entry",
		"Edit the template so every entry uses 24-hour HH:mm offsets")
}
