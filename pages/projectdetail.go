package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/martinsv/sitetrack/client"
	"github.com/martinsv/sitetrack/models"
)

// ProjectDetail is the most stateful page: the project's log list with
// filtering, the create-log form, folder management, per-log inline
// editing and immediate per-log attachment upload.
//
// Log entries move listed -> editing -> saved (server round-trip) or back
// to listed on cancel, which discards the edit form without a request.
type ProjectDetail struct {
	api *client.Client
	log *zap.Logger

	ProjectID   string
	Project     *models.Project
	Logs        []models.DailyLog
	Attachments []models.Attachment
	Folders     []models.Folder

	Filters client.LogFilters
	LogForm LogForm

	EditingLogID string
	EditForm     LogForm

	FolderName    string
	UploadCaption string
	UploadTags    string

	IsLoading      bool
	IsUploading    bool
	ErrorMessage   string
	SuccessMessage string
	HighlightLogID string

	// loadToken identifies the newest in-flight log load; responses from
	// superseded loads are dropped instead of clobbering fresher state.
	loadToken string
}

func NewProjectDetail(api *client.Client, log *zap.Logger, projectID string) *ProjectDetail {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectDetail{
		api:       api,
		log:       log,
		ProjectID: projectID,
		LogForm:   newLogForm(),
	}
}

// Enter loads the project, its folders and its logs.
func (p *ProjectDetail) Enter(ctx context.Context) {
	p.loadProject(ctx)
	p.loadFolders(ctx)
	p.LoadLogs(ctx)
}

func (p *ProjectDetail) loadProject(ctx context.Context) {
	project, err := p.api.GetProject(ctx, p.ProjectID)
	if err != nil {
		p.ErrorMessage = "Unable to load project."
		return
	}
	p.Project = &project
}

func (p *ProjectDetail) loadFolders(ctx context.Context) {
	folders, err := p.api.ListFolders(ctx, p.ProjectID)
	if err != nil {
		p.ErrorMessage = "Unable to load folders."
		return
	}
	p.Folders = folders
}

// LoadLogs re-fetches the log list scoped by the current filters.
func (p *ProjectDetail) LoadLogs(ctx context.Context) {
	token := p.beginLoad()
	page, err := p.api.ListLogs(ctx, p.ProjectID, p.Filters)
	p.finishLoad(token, page, err)
}

// beginLoad marks a new load as the one whose response counts. Starting
// another load supersedes every earlier token.
func (p *ProjectDetail) beginLoad() string {
	p.IsLoading = true
	token := uuid.NewString()
	p.loadToken = token
	return token
}

// finishLoad applies a load's response unless a newer load has started in
// the meantime, in which case the response is dropped.
func (p *ProjectDetail) finishLoad(token string, page client.LogPage, err error) {
	if p.loadToken != token {
		p.log.Debug("dropping superseded log list response", zap.String("project_id", p.ProjectID))
		return
	}
	p.IsLoading = false
	if err != nil {
		p.ErrorMessage = "Unable to load logs."
		return
	}

	p.Logs = page.Logs
	p.Attachments = page.Attachments
	if len(p.Logs) == 0 {
		p.SuccessMessage = ""
		p.HighlightLogID = ""
	}
}

// ApplyFilters is the explicit submit of the filter form; editing filter
// fields alone never triggers a fetch.
func (p *ProjectDetail) ApplyFilters(ctx context.Context) {
	if p.Project == nil {
		return
	}
	p.LoadLogs(ctx)
}

// CreateLog validates, normalizes the activity type, posts, then prepends
// the stored log and resets the form.
func (p *ProjectDetail) CreateLog(ctx context.Context) {
	if p.Project == nil {
		return
	}
	if len(p.LogForm.missing()) > 0 {
		p.LogForm.markAllTouched()
		return
	}

	p.ErrorMessage = ""
	p.SuccessMessage = ""

	created, err := p.api.CreateLog(ctx, p.Project.ID, p.LogForm.draft())
	if err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to create log.")
		return
	}

	p.Logs = append([]models.DailyLog{created}, p.Logs...)
	p.LogForm = newLogForm()
	p.SuccessMessage = "Daily log created successfully."
	p.HighlightLogID = created.ID
}

// StartEdit snapshots a listed log into the edit form.
func (p *ProjectDetail) StartEdit(logID string) {
	for _, entry := range p.Logs {
		if entry.ID == logID {
			p.EditingLogID = logID
			p.EditForm = logFormFrom(entry)
			return
		}
	}
}

// CancelEdit returns the entry to the listed state, discarding edits
// without any request.
func (p *ProjectDetail) CancelEdit() {
	p.EditingLogID = ""
	p.EditForm = LogForm{}
}

// SaveEdit round-trips the edit form and swaps the stored record into the
// list.
func (p *ProjectDetail) SaveEdit(ctx context.Context) {
	if p.EditingLogID == "" {
		return
	}
	if len(p.EditForm.missing()) > 0 {
		p.EditForm.markAllTouched()
		return
	}

	p.ErrorMessage = ""
	updated, err := p.api.UpdateLog(ctx, p.EditingLogID, p.EditForm.draft())
	if err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to update log.")
		return
	}

	for i, entry := range p.Logs {
		if entry.ID == updated.ID {
			p.Logs[i] = updated
			break
		}
	}
	p.CancelEdit()
}

// CreateFolder prepends the new folder and selects it in the create-log
// form, so the next log lands where the user just filed it.
func (p *ProjectDetail) CreateFolder(ctx context.Context) {
	if p.Project == nil || p.FolderName == "" {
		return
	}

	folder, err := p.api.CreateFolder(ctx, p.Project.ID, p.FolderName)
	if err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to create folder.")
		return
	}

	p.Folders = append([]models.Folder{folder}, p.Folders...)
	p.FolderName = ""
	p.LogForm.Folder = folder.ID
}

// SelectFolder points the create-log form at a folder.
func (p *ProjectDetail) SelectFolder(folderID string) {
	p.LogForm.Folder = folderID
}

// DeleteFolder removes the folder locally after the server acknowledges,
// clearing the form selection when it pointed there.
func (p *ProjectDetail) DeleteFolder(ctx context.Context, folderID string) {
	if err := p.api.DeleteFolder(ctx, folderID); err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to delete folder.")
		return
	}

	kept := p.Folders[:0:0]
	for _, folder := range p.Folders {
		if folder.ID != folderID {
			kept = append(kept, folder)
		}
	}
	p.Folders = kept
	if p.LogForm.Folder == folderID {
		p.LogForm.Folder = ""
	}
}

// SelectedFolderName resolves the create-log form's folder selection.
func (p *ProjectDetail) SelectedFolderName() string {
	if p.LogForm.Folder == "" {
		return "No folder selected"
	}
	for _, folder := range p.Folders {
		if folder.ID == p.LogForm.Folder {
			return folder.Name
		}
	}
	return "Selected folder"
}

// AttachFiles uploads immediately on pick/drop; this page has no staging
// step. The single caption/tag input is broadcast across the batch.
func (p *ProjectDetail) AttachFiles(ctx context.Context, logID string, files []client.FileUpload) {
	if p.Project == nil || p.IsUploading {
		return
	}
	if len(files) == 0 {
		p.ErrorMessage = "Select at least one file to upload."
		return
	}

	captions := make([]string, len(files))
	tags := make([]string, len(files))
	for i := range files {
		captions[i] = p.UploadCaption
		tags[i] = p.UploadTags
	}

	p.IsUploading = true
	attachments, err := p.api.UploadAttachments(ctx, logID, files, captions, tags)
	p.IsUploading = false
	if err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to upload attachments.")
		return
	}

	p.Attachments = append(attachments, p.Attachments...)
	p.UploadCaption = ""
	p.UploadTags = ""
}

// AttachmentsFor returns the attachments belonging to one log.
func (p *ProjectDetail) AttachmentsFor(logID string) []models.Attachment {
	var matched []models.Attachment
	for _, attachment := range p.Attachments {
		if attachment.DailyLog == logID {
			matched = append(matched, attachment)
		}
	}
	return matched
}

func (p *ProjectDetail) AttachmentCount(logID string) int {
	return len(p.AttachmentsFor(logID))
}

// DeleteLog removes the log and only its own attachments from local state
// once the server acknowledges.
func (p *ProjectDetail) DeleteLog(ctx context.Context, logID string) {
	if err := p.api.DeleteLog(ctx, logID); err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to delete log.")
		return
	}

	keptLogs := p.Logs[:0:0]
	for _, entry := range p.Logs {
		if entry.ID != logID {
			keptLogs = append(keptLogs, entry)
		}
	}
	p.Logs = keptLogs

	keptAttachments := p.Attachments[:0:0]
	for _, attachment := range p.Attachments {
		if attachment.DailyLog != logID {
			keptAttachments = append(keptAttachments, attachment)
		}
	}
	p.Attachments = keptAttachments

	if p.EditingLogID == logID {
		p.CancelEdit()
	}
}

func (p *ProjectDetail) Render() string {
	var b strings.Builder
	if p.Project != nil {
		fmt.Fprintf(&b, "%s / %s\n", p.Project.Name, p.Project.SiteAddress)
	}
	if p.IsLoading {
		b.WriteString("loading logs...\n")
	}
	for _, entry := range p.Logs {
		marker := " "
		if entry.ID == p.HighlightLogID {
			marker = "*"
		}
		if entry.ID == p.EditingLogID {
			marker = "e"
		}
		fmt.Fprintf(&b, "%s %s  %s  %s  %s (%d files)\n",
			marker, entry.ID, entry.Date, entry.ActivityType, entry.SiteArea, p.AttachmentCount(entry.ID))
	}
	if p.SuccessMessage != "" {
		fmt.Fprintf(&b, "%s\n", p.SuccessMessage)
	}
	if p.ErrorMessage != "" {
		fmt.Fprintf(&b, "! %s\n", p.ErrorMessage)
	}
	return b.String()
}
