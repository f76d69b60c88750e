package pages

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/martinsv/sitetrack/client"
	"github.com/martinsv/sitetrack/models"
)

// ReportExport drives the daily-report download: load logs scoped by date
// range and folder, pick a subset, download the PDF for exactly that subset.
type ReportExport struct {
	api *client.Client
	log *zap.Logger

	ProjectID string
	Folders   []models.Folder
	Logs      []models.DailyLog

	From   string
	To     string
	Folder string

	// Selected tracks the checked log ids. A fresh load selects everything;
	// explicit toggles narrow it from there.
	Selected map[string]bool

	IsLoading     bool
	IsDownloading bool
	ErrorMessage  string
}

func NewReportExport(api *client.Client, log *zap.Logger, projectID string) *ReportExport {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportExport{
		api:       api,
		log:       log,
		ProjectID: projectID,
		Selected:  map[string]bool{},
	}
}

func (p *ReportExport) Enter(ctx context.Context) {
	folders, err := p.api.ListFolders(ctx, p.ProjectID)
	if err != nil {
		p.ErrorMessage = "Unable to load folders."
	} else {
		p.Folders = folders
	}
	p.LoadLogs(ctx)
}

// LoadLogs re-fetches the candidate logs for the current range and folder.
// Every load resets the selection to the full fresh list.
func (p *ReportExport) LoadLogs(ctx context.Context) {
	p.IsLoading = true
	page, err := p.api.ListLogs(ctx, p.ProjectID, client.LogFilters{
		From:   p.From,
		To:     p.To,
		Folder: p.Folder,
	})
	p.IsLoading = false
	if err != nil {
		p.ErrorMessage = "Unable to load logs."
		return
	}

	p.Logs = page.Logs
	p.Selected = make(map[string]bool, len(p.Logs))
	for _, entry := range p.Logs {
		p.Selected[entry.ID] = true
	}
}

// Toggle flips one log in or out of the selection.
func (p *ReportExport) Toggle(logID string) {
	p.Selected[logID] = !p.Selected[logID]
}

func (p *ReportExport) SelectAll() {
	for _, entry := range p.Logs {
		p.Selected[entry.ID] = true
	}
}

func (p *ReportExport) ClearSelection() {
	p.Selected = make(map[string]bool, len(p.Logs))
}

// SelectedIDs returns the checked ids in the order the logs were loaded.
func (p *ReportExport) SelectedIDs() []string {
	var ids []string
	for _, entry := range p.Logs {
		if p.Selected[entry.ID] {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}

func (p *ReportExport) SelectedCount() int {
	return len(p.SelectedIDs())
}

// Download fetches the PDF for the live selection. An empty selection is a
// user error, not a request.
func (p *ReportExport) Download(ctx context.Context) ([]byte, error) {
	ids := p.SelectedIDs()
	if len(ids) == 0 {
		p.ErrorMessage = "Select at least one log to export."
		return nil, fmt.Errorf("empty selection")
	}

	p.ErrorMessage = ""
	p.IsDownloading = true
	defer func() { p.IsDownloading = false }()

	data, err := p.api.DownloadReport(ctx, p.ProjectID, client.ReportQuery{
		From:   p.From,
		To:     p.To,
		Folder: p.Folder,
		LogIDs: ids,
	})
	if err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to download report.")
		return nil, err
	}
	return data, nil
}

func (p *ReportExport) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "report export (%d of %d selected)\n", p.SelectedCount(), len(p.Logs))
	if p.IsLoading {
		b.WriteString("loading logs...\n")
	}
	for _, entry := range p.Logs {
		mark := " "
		if p.Selected[entry.ID] {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s  %s  %s\n", mark, entry.Date, entry.ActivityType, entry.SiteArea)
	}
	if p.ErrorMessage != "" {
		fmt.Fprintf(&b, "! %s\n", p.ErrorMessage)
	}
	return b.String()
}
