package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/martinsv/sitetrack/models"
)

func newTestClient(t *testing.T, handler http.Handler, token string) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var tf TokenFunc
	if token != "" {
		tf = func() string { return token }
	}
	return New(server.URL, tf, 5*time.Second, zap.NewNop()), server
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	t.Run("with token", func(t *testing.T) {
		c, _ := newTestClient(t, handler, "tok-123")
		_, err := c.ListProjects(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok-123", gotAuth)
	})

	t.Run("without token", func(t *testing.T) {
		c, _ := newTestClient(t, handler, "")
		_, err := c.ListProjects(context.Background())
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestListLogsQueryParams(t *testing.T) {
	tests := []struct {
		name    string
		filters LogFilters
		want    url.Values
	}{
		{
			name:    "all filters",
			filters: LogFilters{From: "2025-01-01", To: "2025-01-31", ActivityType: "rebar", Folder: "f1"},
			want: url.Values{
				"from":         {"2025-01-01"},
				"to":           {"2025-01-31"},
				"activityType": {"rebar"},
				"folder":       {"f1"},
			},
		},
		{
			name:    "empty filters omitted",
			filters: LogFilters{ActivityType: "rebar"},
			want:    url.Values{"activityType": {"rebar"}},
		},
		{
			name:    "no filters",
			filters: LogFilters{},
			want:    url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery url.Values
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"logs":[],"attachments":[],"total":0}`))
			})
			c, _ := newTestClient(t, handler, "tok")

			_, err := c.ListLogs(context.Background(), "p1", tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, gotQuery)
		})
	}
}

func TestDownloadReportQuery(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	var gotAccept, gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	})
	c, _ := newTestClient(t, handler, "tok")

	data, err := c.DownloadReport(context.Background(), "p1", ReportQuery{
		From:   "2025-02-01",
		To:     "2025-02-28",
		LogIDs: []string{"l1", "l3"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/projects/p1/reports/daily", gotPath)
	assert.Equal(t, "l1,l3", gotQuery.Get("logIds"))
	assert.Equal(t, "2025-02-01", gotQuery.Get("from"))
	assert.False(t, gotQuery.Has("folder"))
	assert.Equal(t, "application/pdf", gotAccept)
	assert.Equal(t, "Bearer tok", gotAuth, "the raw download carries the session token too")
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestUploadAttachmentsMultipart(t *testing.T) {
	var fileNames, captions, tags []string
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		for _, fh := range r.MultipartForm.File["files"] {
			fileNames = append(fileNames, fh.Filename)
		}
		captions = r.MultipartForm.Value["captions"]
		tags = r.MultipartForm.Value["tags"]

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"a1","dailyLog":"l1","originalName":"morning.jpg","filename":"x","mimeType":"image/jpeg"},{"_id":"a2","dailyLog":"l1","originalName":"evening.jpg","filename":"y","mimeType":"image/jpeg"}]`))
	})
	c, _ := newTestClient(t, handler, "tok")

	files := []FileUpload{
		{Name: "morning.jpg", Content: strings.NewReader("aaa")},
		{Name: "evening.jpg", Content: strings.NewReader("bbb")},
	}
	attachments, err := c.UploadAttachments(context.Background(), "l1",
		files, []string{"footing pour", "footing pour"}, []string{"concrete", "concrete"})
	require.NoError(t, err)

	assert.Equal(t, []string{"morning.jpg", "evening.jpg"}, fileNames)
	assert.Equal(t, []string{"footing pour", "footing pour"}, captions)
	assert.Equal(t, []string{"concrete", "concrete"}, tags)
	assert.Equal(t, "Bearer tok", gotAuth)
	require.Len(t, attachments, 2)
	assert.Equal(t, "morning.jpg", attachments[0].DisplayName())
}

func TestAPIErrorEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"structured message", http.StatusConflict, `{"message":"Project name already in use"}`, "Project name already in use"},
		{"plain text body", http.StatusInternalServerError, "boom", ""},
		{"empty body", http.StatusNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			c, _ := newTestClient(t, handler, "tok")

			_, err := c.GetProject(context.Background(), "p1")
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestProjectEndpoints(t *testing.T) {
	var gotMethod, gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"p1","name":"Harbor Br","client":"ACME","siteAddress":"Pier 4","startDate":"2025-01-01","status":"active"}`))
	})
	c, _ := newTestClient(t, handler, "tok")
	ctx := context.Background()

	_, err := c.ArchiveProject(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/projects/p1/archive", gotPath)

	_, err = c.UpdateProject(ctx, "p1", models.ProjectDraft{Name: "Harbor Br", Client: "ACME", SiteAddress: "Pier 4", StartDate: "2025-01-01", Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/projects/p1", gotPath)
}

func TestListAttachments(t *testing.T) {
	var gotPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"a1","dailyLog":"l1","fileName":"pit.jpg","fileType":"image/jpeg","filename":"","originalName":""}]`))
	})
	c, _ := newTestClient(t, handler, "tok")

	attachments, err := c.ListAttachments(context.Background(), "l1")
	require.NoError(t, err)
	require.Len(t, attachments, 1)

	assert.Equal(t, "/logs/l1/attachments", gotPath)
	// Legacy field spellings still resolve through the accessors.
	assert.Equal(t, "pit.jpg", attachments[0].DisplayName())
	assert.Equal(t, "image/jpeg", attachments[0].ContentType())
}

func TestReportURL(t *testing.T) {
	c := New("http://backend/api", nil, 0, nil)

	assert.Equal(t, "http://backend/api/projects/p1/reports/daily", c.ReportURL("p1", "", ""))
	assert.Equal(t,
		"http://backend/api/projects/p1/reports/daily?from=2025-03-01&to=2025-03-31",
		c.ReportURL("p1", "2025-03-01", "2025-03-31"))
}
