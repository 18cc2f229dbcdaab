// Package validate provides input validation helpers for the Punchcard CLI.
// Validation failures are caught before any network call and never reach the
// remote layer.
package validate

import (
	"regexp"
	"unicode/utf8"

	"github.com/punchcard-cli/punchcard/internal/errors"
	"github.com/punchcard-cli/punchcard/internal/model"
)

const (
	// MaxTemplateNameLength is the maximum length for a template name.
	MaxTemplateNameLength = 128
	// MaxDescriptionLength is the maximum length for an entry description.
	MaxDescriptionLength = 4096
)

// timeOfDayRegex validates day-relative "HH:mm" offsets (00:00 - 23:59).
var timeOfDayRegex = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// TimeOfDay validates an "HH:mm" time-of-day offset.
func TimeOfDay(value string) error {
	if !timeOfDayRegex.MatchString(value) {
		return errors.NewUserErrorWithField("time", value,
			"Invalid time of day",
			"Use 24-hour HH:mm format, e.g. 09:00 or 17:30")
	}
	return nil
}

// TimeOfDayOrder validates that end comes strictly after start. Both values
// must already be valid "HH:mm" offsets. The application engine itself never
// re-checks this: an inverted interval that slips past input validation is
// passed through to the remote API as-is.
func TimeOfDayOrder(start, end string) error {
	if end <= start {
		return errors.NewUserErrorWithField("end", end,
			"End time must be after start time",
			"Pick an end time later in the day than the start time")
	}
	return nil
}

// TemplateName validates a template name.
func TemplateName(name string) error {
	if name == "" {
		return errors.NewUserError("Template name cannot be empty", "Provide a template name")
	}
	if utf8.RuneCountInString(name) > MaxTemplateNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Template name too long",
			"Template names must be 128 characters or fewer")
	}
	return nil
}

// Description validates an entry description.
func Description(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return errors.NewUserError("Description too long",
			"Descriptions must be 4096 characters or fewer")
	}
	return nil
}

// TemplateEntry validates a whole template entry before it is stored.
func TemplateEntry(e *model.TemplateEntry) error {
	if e.ProjectID == "" {
		return errors.NewUserError("Project is required", "Provide a project id with --project")
	}
	if err := TimeOfDay(e.StartTime); err != nil {
		return err
	}
	if err := TimeOfDay(e.EndTime); err != nil {
		return err
	}
	if err := TimeOfDayOrder(e.StartTime, e.EndTime); err != nil {
		return err
	}
	return Description(e.Description)
}

// Credentials validates a sign-in request.
func Credentials(apiKey, workspaceID string) error {
	if apiKey == "" {
		return errors.NewUserError("API key cannot be empty",
			"Generate an API key in your Clockify profile settings")
	}
	if workspaceID == "" {
		return errors.NewUserError("Workspace ID cannot be empty",
			"Copy the workspace id from your Clockify workspace settings URL")
	}
	return nil
}
