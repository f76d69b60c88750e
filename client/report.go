package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// ReportQuery selects what goes into a daily-report PDF. Empty fields are
// omitted; LogIDs, when present, pin the report to an explicit set of logs
// (a single id exports one log).
type ReportQuery struct {
	From   string
	To     string
	Folder string
	LogIDs []string
}

func (q ReportQuery) values() url.Values {
	params := url.Values{}
	if q.From != "" {
		params.Set("from", q.From)
	}
	if q.To != "" {
		params.Set("to", q.To)
	}
	if q.Folder != "" {
		params.Set("folder", q.Folder)
	}
	if len(q.LogIDs) > 0 {
		params.Set("logIds", strings.Join(q.LogIDs, ","))
	}
	return params
}

// DownloadReport fetches the daily-report PDF for a project. The response
// is opaque binary; callers decide where it goes.
func (c *Client) DownloadReport(ctx context.Context, projectID string, query ReportQuery) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/projects/%s/reports/daily", c.baseURL, url.PathEscape(projectID))
	if encoded := query.values().Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create report request: %w", err)
	}
	for k, v := range c.headers() {
		req.Header.Set(string(k), v)
	}
	req.Header.Set("Accept", "application/pdf")

	body, status, err := c.doRaw(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		c.log.Debug("report download rejected",
			zap.Int("status", status),
			zap.String("project_id", projectID))
		return nil, apiErrorFromBody(status, body)
	}
	return body, nil
}

// doRaw executes a request on the plain http.Client and drains the body.
func (c *Client) doRaw(req *http.Request) ([]byte, int, error) {
	resp, err := c.raw.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func unmarshalBody[T any](body []byte, out *T) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
