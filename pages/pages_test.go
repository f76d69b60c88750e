package pages

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/martinsv/sitetrack/client"
	"github.com/martinsv/sitetrack/models"
)

// fakeBackend is an in-memory stand-in for the site-tracker API, covering
// the routes the pages exercise.
type fakeBackend struct {
	mu          sync.Mutex
	nextID      int
	projects    []models.Project
	folders     []models.Folder
	logs        []models.DailyLog
	attachments []models.Attachment

	// lastReportQuery records the query string of the most recent report
	// download for assertions.
	lastReportQuery map[string][]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 1}
}

func (f *fakeBackend) id(prefix string) string {
	id := fmt.Sprintf("%s%d", prefix, f.nextID)
	f.nextID++
	return id
}

func (f *fakeBackend) addProject(name string) models.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Project{ID: f.id("p"), Name: name, Client: "ACME", SiteAddress: "Pier 4", StartDate: "2025-01-01", Status: "active"}
	f.projects = append(f.projects, p)
	return p
}

func (f *fakeBackend) addLog(projectID, date, activity string) models.DailyLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := models.DailyLog{ID: f.id("l"), Project: projectID, Date: date, SiteArea: "Zone A", ActivityType: activity, Summary: "work done"}
	f.logs = append(f.logs, l)
	return l
}

func (f *fakeBackend) addAttachment(logID, name string) models.Attachment {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := models.Attachment{ID: f.id("a"), DailyLog: logID, OriginalName: name, Filename: name, MimeType: "image/jpeg"}
	f.attachments = append(f.attachments, a)
	return a
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, f.projects)
	})
	mux.HandleFunc("POST /projects", func(w http.ResponseWriter, r *http.Request) {
		var draft models.ProjectDraft
		json.NewDecoder(r.Body).Decode(&draft)
		f.mu.Lock()
		defer f.mu.Unlock()
		p := models.Project{ID: f.id("p"), Name: draft.Name, Client: draft.Client, SiteAddress: draft.SiteAddress, StartDate: draft.StartDate, EndDate: draft.EndDate, Status: draft.Status}
		f.projects = append(f.projects, p)
		writeJSON(w, p)
	})
	mux.HandleFunc("GET /projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, p := range f.projects {
			if p.ID == r.PathValue("id") {
				writeJSON(w, p)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"message": "Project not found"})
	})
	mux.HandleFunc("DELETE /projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		kept := f.projects[:0:0]
		for _, p := range f.projects {
			if p.ID != r.PathValue("id") {
				kept = append(kept, p)
			}
		}
		f.projects = kept
		writeJSON(w, map[string]string{"message": "deleted"})
	})

	mux.HandleFunc("GET /projects/{id}/folders", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		out := []models.Folder{}
		for _, folder := range f.folders {
			if folder.Project == r.PathValue("id") {
				out = append(out, folder)
			}
		}
		writeJSON(w, out)
	})
	mux.HandleFunc("POST /projects/{id}/folders", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		defer f.mu.Unlock()
		folder := models.Folder{ID: f.id("f"), Project: r.PathValue("id"), Name: body["name"]}
		f.folders = append(f.folders, folder)
		writeJSON(w, folder)
	})
	mux.HandleFunc("DELETE /folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		kept := f.folders[:0:0]
		for _, folder := range f.folders {
			if folder.ID != r.PathValue("id") {
				kept = append(kept, folder)
			}
		}
		f.folders = kept
		writeJSON(w, map[string]string{"message": "deleted"})
	})

	mux.HandleFunc("GET /projects/{id}/logs", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		q := r.URL.Query()
		logs := []models.DailyLog{}
		for _, l := range f.logs {
			if l.Project != r.PathValue("id") {
				continue
			}
			if v := q.Get("activityType"); v != "" && l.ActivityType != v {
				continue
			}
			if v := q.Get("folder"); v != "" && l.Folder != v {
				continue
			}
			if v := q.Get("from"); v != "" && l.Date < v {
				continue
			}
			if v := q.Get("to"); v != "" && l.Date > v {
				continue
			}
			logs = append(logs, l)
		}
		attachments := []models.Attachment{}
		for _, a := range f.attachments {
			for _, l := range logs {
				if a.DailyLog == l.ID {
					attachments = append(attachments, a)
					break
				}
			}
		}
		writeJSON(w, client.LogPage{Logs: logs, Attachments: attachments, Total: len(logs)})
	})
	mux.HandleFunc("POST /projects/{id}/logs", func(w http.ResponseWriter, r *http.Request) {
		var draft models.LogDraft
		json.NewDecoder(r.Body).Decode(&draft)
		f.mu.Lock()
		defer f.mu.Unlock()
		l := models.DailyLog{
			ID: f.id("l"), Project: r.PathValue("id"), Folder: draft.Folder,
			Date: draft.Date, Weather: draft.Weather, SiteArea: draft.SiteArea,
			ActivityType: draft.ActivityType, Summary: draft.Summary,
			IssuesRisks: draft.IssuesRisks, NextSteps: draft.NextSteps,
		}
		f.logs = append(f.logs, l)
		writeJSON(w, l)
	})
	mux.HandleFunc("GET /logs/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, l := range f.logs {
			if l.ID != r.PathValue("id") {
				continue
			}
			attachments := []models.Attachment{}
			for _, a := range f.attachments {
				if a.DailyLog == l.ID {
					attachments = append(attachments, a)
				}
			}
			writeJSON(w, client.LogDetail{Log: l, Attachments: attachments})
			return
		}
		w.WriteHeader(http.StatusNotFound)
		writeJSON(w, map[string]string{"message": "Log not found"})
	})
	mux.HandleFunc("PUT /logs/{id}", func(w http.ResponseWriter, r *http.Request) {
		var draft models.LogDraft
		json.NewDecoder(r.Body).Decode(&draft)
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, l := range f.logs {
			if l.ID != r.PathValue("id") {
				continue
			}
			l.Date = draft.Date
			l.Weather = draft.Weather
			l.SiteArea = draft.SiteArea
			l.ActivityType = draft.ActivityType
			l.Folder = draft.Folder
			l.Summary = draft.Summary
			l.IssuesRisks = draft.IssuesRisks
			l.NextSteps = draft.NextSteps
			f.logs[i] = l
			writeJSON(w, l)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("DELETE /logs/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		keptLogs := f.logs[:0:0]
		for _, l := range f.logs {
			if l.ID != r.PathValue("id") {
				keptLogs = append(keptLogs, l)
			}
		}
		f.logs = keptLogs
		keptAttachments := f.attachments[:0:0]
		for _, a := range f.attachments {
			if a.DailyLog != r.PathValue("id") {
				keptAttachments = append(keptAttachments, a)
			}
		}
		f.attachments = keptAttachments
		writeJSON(w, map[string]string{"message": "deleted"})
	})
	mux.HandleFunc("POST /logs/{id}/attachments", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		captions := r.MultipartForm.Value["captions"]
		tags := r.MultipartForm.Value["tags"]
		out := []models.Attachment{}
		for i, fh := range r.MultipartForm.File["files"] {
			a := models.Attachment{ID: f.id("a"), DailyLog: r.PathValue("id"), OriginalName: fh.Filename, Filename: fh.Filename}
			if i < len(captions) {
				a.Caption = captions[i]
			}
			if i < len(tags) && tags[i] != "" {
				a.Tags = strings.Split(tags[i], ",")
			}
			f.attachments = append(f.attachments, a)
			out = append(out, a)
		}
		writeJSON(w, out)
	})
	mux.HandleFunc("POST /attachments/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, a := range f.attachments {
			if a.ID != r.PathValue("id") {
				continue
			}
			f.attachments[i].Comments = append(f.attachments[i].Comments, models.Comment{Text: body["text"], AuthorName: "Dana"})
			writeJSON(w, f.attachments[i].Comments)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("DELETE /attachments/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		kept := f.attachments[:0:0]
		for _, a := range f.attachments {
			if a.ID != r.PathValue("id") {
				kept = append(kept, a)
			}
		}
		f.attachments = kept
		writeJSON(w, map[string]string{"message": "deleted"})
	})

	mux.HandleFunc("GET /projects/{id}/reports/daily", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastReportQuery = r.URL.Query()
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 report"))
	})

	return mux
}

func newTestClient(t *testing.T, backend *fakeBackend) *client.Client {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)
	return client.New(server.URL, func() string { return "tok-abc" }, 5*time.Second, zap.NewNop())
}
