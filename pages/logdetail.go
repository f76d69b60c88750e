package pages

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/martinsv/sitetrack/client"
	"github.com/martinsv/sitetrack/models"
)

// LogDetail shows one daily log with its attachments. Unlike the project
// page, uploads here are staged: files are selected first and sent only on
// an explicit Upload.
type LogDetail struct {
	api *client.Client
	log *zap.Logger

	LogID       string
	Log         *models.DailyLog
	Project     *models.Project
	Folders     []models.Folder
	Attachments []models.Attachment

	IsEditing bool
	EditForm  LogForm

	StagedFiles   []client.FileUpload
	UploadCaption string
	UploadTags    string
	CommentText   string

	IsLoading    bool
	IsUploading  bool
	IsExporting  bool
	ErrorMessage string
}

func NewLogDetail(api *client.Client, log *zap.Logger, logID string) *LogDetail {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogDetail{api: api, log: log, LogID: logID}
}

// Enter loads the log first, then the project and folder context it hangs
// off. A missing project leaves the header sparse but keeps the log usable.
func (p *LogDetail) Enter(ctx context.Context) {
	p.IsLoading = true
	detail, err := p.api.GetLog(ctx, p.LogID)
	p.IsLoading = false
	if err != nil {
		p.ErrorMessage = "Unable to load log."
		return
	}
	p.Log = &detail.Log
	p.Attachments = detail.Attachments
	p.EditForm = logFormFrom(detail.Log)

	project, err := p.api.GetProject(ctx, detail.Log.Project)
	if err != nil {
		p.log.Debug("project lookup failed", zap.String("log_id", p.LogID))
	} else {
		p.Project = &project
	}

	folders, err := p.api.ListFolders(ctx, detail.Log.Project)
	if err == nil {
		p.Folders = folders
	}
}

// FolderName resolves the log's folder id to its display name.
func (p *LogDetail) FolderName() string {
	if p.Log == nil || p.Log.Folder == "" {
		return ""
	}
	for _, folder := range p.Folders {
		if folder.ID == p.Log.Folder {
			return folder.Name
		}
	}
	return ""
}

func (p *LogDetail) ToggleEdit() {
	if p.Log == nil {
		return
	}
	if p.IsEditing {
		p.CancelEdit()
		return
	}
	p.EditForm = logFormFrom(*p.Log)
	p.IsEditing = true
}

// CancelEdit discards edits and refills the form from the authoritative
// record, without any request.
func (p *LogDetail) CancelEdit() {
	p.IsEditing = false
	if p.Log != nil {
		p.EditForm = logFormFrom(*p.Log)
	}
}

// SaveEdit round-trips the form and replaces the displayed record.
func (p *LogDetail) SaveEdit(ctx context.Context) {
	if !p.IsEditing || p.Log == nil {
		return
	}
	if len(p.EditForm.missing()) > 0 {
		p.EditForm.markAllTouched()
		return
	}

	p.ErrorMessage = ""
	updated, err := p.api.UpdateLog(ctx, p.Log.ID, p.EditForm.draft())
	if err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to update log.")
		return
	}
	p.Log = &updated
	p.IsEditing = false
	p.EditForm = logFormFrom(updated)
}

// SelectFiles stages files for the next Upload call.
func (p *LogDetail) SelectFiles(files []client.FileUpload) {
	p.StagedFiles = files
}

// Upload sends the staged files with the shared caption and tags.
func (p *LogDetail) Upload(ctx context.Context) {
	if p.Log == nil || p.IsUploading {
		return
	}
	if len(p.StagedFiles) == 0 {
		p.ErrorMessage = "Select at least one file to upload."
		return
	}

	captions := make([]string, len(p.StagedFiles))
	tags := make([]string, len(p.StagedFiles))
	for i := range p.StagedFiles {
		captions[i] = p.UploadCaption
		tags[i] = p.UploadTags
	}

	p.ErrorMessage = ""
	p.IsUploading = true
	attachments, err := p.api.UploadAttachments(ctx, p.Log.ID, p.StagedFiles, captions, tags)
	p.IsUploading = false
	if err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to upload attachments.")
		return
	}

	p.Attachments = append(attachments, p.Attachments...)
	p.StagedFiles = nil
	p.UploadCaption = ""
	p.UploadTags = ""
}

// AddComment posts the trimmed comment text and replaces the attachment's
// comment list with the server's ordering.
func (p *LogDetail) AddComment(ctx context.Context, attachmentID string) {
	text := strings.TrimSpace(p.CommentText)
	if text == "" {
		return
	}

	comments, err := p.api.AddComment(ctx, attachmentID, text)
	if err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to add comment.")
		return
	}
	for i, attachment := range p.Attachments {
		if attachment.ID == attachmentID {
			p.Attachments[i].Comments = comments
			break
		}
	}
	p.CommentText = ""
}

// DeleteAttachment removes the attachment locally once the server confirms.
func (p *LogDetail) DeleteAttachment(ctx context.Context, attachmentID string) {
	if err := p.api.DeleteAttachment(ctx, attachmentID); err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to delete attachment.")
		return
	}
	kept := p.Attachments[:0:0]
	for _, attachment := range p.Attachments {
		if attachment.ID != attachmentID {
			kept = append(kept, attachment)
		}
	}
	p.Attachments = kept
}

// ExportPDF downloads the daily report pinned to this single log.
func (p *LogDetail) ExportPDF(ctx context.Context) ([]byte, error) {
	if p.Log == nil {
		return nil, fmt.Errorf("no log loaded")
	}
	p.IsExporting = true
	defer func() { p.IsExporting = false }()

	data, err := p.api.DownloadReport(ctx, p.Log.Project, client.ReportQuery{LogIDs: []string{p.Log.ID}})
	if err != nil {
		p.ErrorMessage = UserMessage(err, "Unable to export report.")
		return nil, err
	}
	return data, nil
}

func (p *LogDetail) Render() string {
	var b strings.Builder
	if p.IsLoading {
		b.WriteString("loading log...\n")
	}
	if p.Log != nil {
		fmt.Fprintf(&b, "%s  %s  %s\n", p.Log.Date, p.Log.ActivityType, p.Log.SiteArea)
		if name := p.FolderName(); name != "" {
			fmt.Fprintf(&b, "folder: %s\n", name)
		}
		fmt.Fprintf(&b, "%s\n", p.Log.Summary)
	}
	for _, attachment := range p.Attachments {
		fmt.Fprintf(&b, "- %s (%d comments)\n", attachment.DisplayName(), len(attachment.Comments))
	}
	if p.ErrorMessage != "" {
		fmt.Fprintf(&b, "! %s\n", p.ErrorMessage)
	}
	return b.String()
}
