// Package pages holds the page controllers. Each page is an explicit
// state object mutated by user actions; Render is a pure function from
// that state to the terminal view. Every remote call lands back in page
// state: data on success, one inline message on failure.
package pages

import (
	"errors"
	"strings"

	"github.com/martinsv/sitetrack/client"
	"github.com/martinsv/sitetrack/models"
)

// UserMessage converts a remote-call failure into the page's inline error
// text: the server's structured message when present, the page's generic
// fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

// LogForm is the editable field set of a daily log, shared by the create
// form on the project page and the edit form on the log page.
type LogForm struct {
	Date         string
	WeatherType  string
	WeatherNotes string
	SiteArea     string
	ActivityType string
	Folder       string
	Summary      string
	IssuesRisks  string
	NextSteps    string
	Touched      map[string]bool
}

func newLogForm() LogForm {
	return LogForm{WeatherType: "sunny", Touched: map[string]bool{}}
}

// logFormFrom snapshots a log's server state into an edit form.
func logFormFrom(log models.DailyLog) LogForm {
	form := LogForm{
		Date:         log.Date,
		SiteArea:     log.SiteArea,
		ActivityType: log.ActivityType,
		Folder:       log.Folder,
		Summary:      log.Summary,
		IssuesRisks:  log.IssuesRisks,
		NextSteps:    log.NextSteps,
		Touched:      map[string]bool{},
	}
	if log.Weather != nil {
		form.WeatherType = log.Weather.Type
		form.WeatherNotes = log.Weather.Notes
	}
	return form
}

// missing returns the required fields still empty. Date, site area,
// activity type and summary are mandatory.
func (f *LogForm) missing() []string {
	var fields []string
	if f.Date == "" {
		fields = append(fields, "date")
	}
	if f.SiteArea == "" {
		fields = append(fields, "siteArea")
	}
	if f.ActivityType == "" {
		fields = append(fields, "activityType")
	}
	if f.Summary == "" {
		fields = append(fields, "summary")
	}
	return fields
}

func (f *LogForm) markAllTouched() {
	if f.Touched == nil {
		f.Touched = map[string]bool{}
	}
	for _, field := range []string{"date", "weatherType", "weatherNotes", "siteArea", "activityType", "folder", "summary", "issuesRisks", "nextSteps"} {
		f.Touched[field] = true
	}
}

// draft builds the submission payload. The activity type is normalized
// here so every write path round-trips through the fixed vocabulary.
func (f *LogForm) draft() models.LogDraft {
	weatherType := f.WeatherType
	if weatherType == "" {
		weatherType = "sunny"
	}
	return models.LogDraft{
		Date:         f.Date,
		Weather:      &models.Weather{Type: weatherType, Notes: f.WeatherNotes},
		SiteArea:     f.SiteArea,
		ActivityType: models.NormalizeActivityType(f.ActivityType),
		Folder:       f.Folder,
		Summary:      f.Summary,
		IssuesRisks:  f.IssuesRisks,
		NextSteps:    f.NextSteps,
	}
}
