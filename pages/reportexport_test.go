package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportExportSelection(t *testing.T) {
	backend := newFakeBackend()
	project := backend.addProject("Harbor Bridge")
	logA := backend.addLog(project.ID, "2025-03-01", "excavation")
	logB := backend.addLog(project.ID, "2025-03-02", "rebar")
	logC := backend.addLog(project.ID, "2025-03-03", "concrete_pour")

	page := NewReportExport(newTestClient(t, backend), nil, project.ID)
	page.Enter(context.Background())

	require.Len(t, page.Logs, 3)
	assert.Equal(t, 3, page.SelectedCount(), "a fresh load selects everything")

	page.Toggle(logB.ID)
	assert.Equal(t, 2, page.SelectedCount())
	assert.Equal(t, []string{logA.ID, logC.ID}, page.SelectedIDs(), "selection keeps load order")

	page.Toggle(logB.ID)
	assert.Equal(t, 3, page.SelectedCount())

	page.ClearSelection()
	assert.Zero(t, page.SelectedCount())

	page.SelectAll()
	assert.Equal(t, 3, page.SelectedCount())
}

func TestReportExportReloadResetsSelection(t *testing.T) {
	backend := newFakeBackend()
	project := backend.addProject("Harbor Bridge")
	backend.addLog(project.ID, "2025-03-01", "excavation")
	narrowed := backend.addLog(project.ID, "2025-04-01", "rebar")

	page := NewReportExport(newTestClient(t, backend), nil, project.ID)
	page.Enter(context.Background())
	page.ClearSelection()

	page.From = "2025-04-01"
	page.LoadLogs(context.Background())

	require.Len(t, page.Logs, 1)
	assert.Equal(t, []string{narrowed.ID}, page.SelectedIDs(), "a reload selects the fresh list")
}

func TestReportExportDownload(t *testing.T) {
	backend := newFakeBackend()
	project := backend.addProject("Harbor Bridge")
	logA := backend.addLog(project.ID, "2025-03-01", "excavation")
	logB := backend.addLog(project.ID, "2025-03-02", "rebar")
	logC := backend.addLog(project.ID, "2025-03-03", "drainage")

	page := NewReportExport(newTestClient(t, backend), nil, project.ID)
	page.Enter(context.Background())
	page.Toggle(logB.ID)

	data, err := page.Download(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))

	require.NotNil(t, backend.lastReportQuery)
	assert.Equal(t, logA.ID+","+logC.ID, backend.lastReportQuery["logIds"][0],
		"the request carries exactly the checked ids")
}

func TestReportExportEmptySelection(t *testing.T) {
	backend := newFakeBackend()
	project := backend.addProject("Harbor Bridge")
	backend.addLog(project.ID, "2025-03-01", "excavation")

	page := NewReportExport(newTestClient(t, backend), nil, project.ID)
	page.Enter(context.Background())
	page.ClearSelection()

	_, err := page.Download(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Select at least one log to export.", page.ErrorMessage)
	assert.Nil(t, backend.lastReportQuery, "no request goes out for an empty selection")
}
