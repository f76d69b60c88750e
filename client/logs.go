package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/martinsv/sitetrack/models"
)

// LogFilters narrows a log listing. Empty fields are left off the query
// string entirely.
type LogFilters struct {
	From         string
	To           string
	ActivityType string
	Folder       string
}

func (f LogFilters) params() map[string]string {
	params := map[string]string{}
	if f.From != "" {
		params["from"] = f.From
	}
	if f.To != "" {
		params["to"] = f.To
	}
	if f.ActivityType != "" {
		params["activityType"] = f.ActivityType
	}
	if f.Folder != "" {
		params["folder"] = f.Folder
	}
	return params
}

// LogPage is a filtered log listing with the attachments of every listed
// log, as the backend returns them in one response.
type LogPage struct {
	Logs        []models.DailyLog   `json:"logs"`
	Attachments []models.Attachment `json:"attachments"`
	Total       int                 `json:"total"`
}

// LogDetail is a single log plus its attachments.
type LogDetail struct {
	Log         models.DailyLog     `json:"log"`
	Attachments []models.Attachment `json:"attachments"`
}

// ListLogs returns a project's logs scoped by the given filters.
func (c *Client) ListLogs(ctx context.Context, projectID string, filters LogFilters) (LogPage, error) {
	resp, err := c.api.GET("/projects/"+url.PathEscape(projectID)+"/logs").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Query().AddParams(filters.params()).
		Send()
	if err != nil {
		return LogPage{}, fmt.Errorf("failed to send log list request: %w", err)
	}

	var out LogPage
	if err := parseResponse(resp, &out); err != nil {
		return LogPage{}, err
	}
	return out, nil
}

// CreateLog records a new daily log under a project.
func (c *Client) CreateLog(ctx context.Context, projectID string, draft models.LogDraft) (models.DailyLog, error) {
	resp, err := c.api.POST("/projects/"+url.PathEscape(projectID)+"/logs").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(draft).
		Send()
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to send log create request: %w", err)
	}

	var out models.DailyLog
	if err := parseResponse(resp, &out); err != nil {
		return models.DailyLog{}, err
	}
	return out, nil
}

// GetLog fetches one log with its attachments.
func (c *Client) GetLog(ctx context.Context, logID string) (LogDetail, error) {
	resp, err := c.api.GET("/logs/"+url.PathEscape(logID)).
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Send()
	if err != nil {
		return LogDetail{}, fmt.Errorf("failed to send log request: %w", err)
	}

	var out LogDetail
	if err := parseResponse(resp, &out); err != nil {
		return LogDetail{}, err
	}
	return out, nil
}

// UpdateLog replaces a log's editable fields and returns the stored record.
func (c *Client) UpdateLog(ctx context.Context, logID string, draft models.LogDraft) (models.DailyLog, error) {
	resp, err := c.api.PUT("/logs/"+url.PathEscape(logID)).
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(draft).
		Send()
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to send log update request: %w", err)
	}

	var out models.DailyLog
	if err := parseResponse(resp, &out); err != nil {
		return models.DailyLog{}, err
	}
	return out, nil
}

// DeleteLog removes a log and, server-side, its attachments.
func (c *Client) DeleteLog(ctx context.Context, logID string) error {
	resp, err := c.api.DELETE("/logs/"+url.PathEscape(logID)).
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Send()
	if err != nil {
		return fmt.Errorf("failed to send log delete request: %w", err)
	}
	return discardResponse(resp)
}

// ListAttachments returns a log's attachments.
func (c *Client) ListAttachments(ctx context.Context, logID string) ([]models.Attachment, error) {
	resp, err := c.api.GET("/logs/"+url.PathEscape(logID)+"/attachments").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Send()
	if err != nil {
		return nil, fmt.Errorf("failed to send attachment list request: %w", err)
	}

	var out []models.Attachment
	if err := parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FileUpload is one file queued for attachment upload.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// UploadAttachments posts files to a log as multipart form data. captions
// and tags run parallel to files; the UI broadcasts a single caption/tag
// input across every file in the batch.
func (c *Client) UploadAttachments(ctx context.Context, logID string, files []FileUpload, captions, tags []string) ([]models.Attachment, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := form.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to build form file %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
	}
	for _, caption := range captions {
		if err := form.WriteField("captions", caption); err != nil {
			return nil, fmt.Errorf("failed to write caption field: %w", err)
		}
	}
	for _, tag := range tags {
		if err := form.WriteField("tags", tag); err != nil {
			return nil, fmt.Errorf("failed to write tag field: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/logs/%s/attachments", c.baseURL, url.PathEscape(logID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	for k, v := range c.headers() {
		req.Header.Set(string(k), v)
	}

	body, status, err := c.doRaw(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		c.log.Debug("attachment upload rejected",
			zap.Int("status", status),
			zap.String("log_id", logID))
		return nil, apiErrorFromBody(status, body)
	}

	var out []models.Attachment
	if err := unmarshalBody(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddComment appends a comment to an attachment and returns the full
// ordered comment list as stored.
func (c *Client) AddComment(ctx context.Context, attachmentID, text string) ([]models.Comment, error) {
	resp, err := c.api.POST("/attachments/"+url.PathEscape(attachmentID)+"/comments").
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Body().AsJSON(map[string]string{"text": text}).
		Send()
	if err != nil {
		return nil, fmt.Errorf("failed to send comment request: %w", err)
	}

	var out []models.Comment
	if err := parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAttachment removes an attachment permanently.
func (c *Client) DeleteAttachment(ctx context.Context, attachmentID string) error {
	resp, err := c.api.DELETE("/attachments/"+url.PathEscape(attachmentID)).
		Context().Set(ctx).
		Header().AddAll(c.headers()).
		Send()
	if err != nil {
		return fmt.Errorf("failed to send attachment delete request: %w", err)
	}
	return discardResponse(resp)
}
