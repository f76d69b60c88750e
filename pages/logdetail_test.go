package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martinsv/sitetrack/client"
)

func TestLogDetailEnter(t *testing.T) {
	backend := newFakeBackend()
	project := backend.addProject("Harbor Bridge")
	entry := backend.addLog(project.ID, "2025-03-01", "excavation")
	backend.addAttachment(entry.ID, "pit.jpg")

	page := NewLogDetail(newTestClient(t, backend), nil, entry.ID)
	page.Enter(context.Background())

	require.NotNil(t, page.Log)
	assert.Equal(t, entry.ID, page.Log.ID)
	require.NotNil(t, page.Project)
	assert.Equal(t, "Harbor Bridge", page.Project.Name)
	require.Len(t, page.Attachments, 1)
	assert.Equal(t, "excavation", page.EditForm.ActivityType)
}

func TestLogDetailCancelEditRestoresForm(t *testing.T) {
	backend := newFakeBackend()
	project := backend.addProject("Harbor Bridge")
	entry := backend.addLog(project.ID, "2025-03-01", "excavation")

	page := NewLogDetail(newTestClient(t, backend), nil, entry.ID)
	page.Enter(context.Background())

	page.ToggleEdit()
	require.True(t, page.IsEditing)
	page.EditForm.Summary = "half-typed change"
	page.EditForm.ActivityType = "masonry"

	page.CancelEdit()
	assert.False(t, page.IsEditing)
	assert.Equal(t, "work done", page.EditForm.Summary)
	assert.Equal(t, "excavation", page.EditForm.ActivityType)
}

func TestLogDetailSaveEdit(t *testing.T) {
	backend := newFakeBackend()
	project := backend.addProject("Harbor Bridge")
	entry := backend.addLog(project.ID, "2025-03-01", "excavation")

	page := NewLogDetail(newTestClient(t, backend), nil, entry.ID)
	page.Enter(context.Background())

	page.ToggleEdit()
	page.EditForm.Summary = "Backfilled zone A"
	page.EditForm.ActivityType = "Drainage"
	page.SaveEdit(context.Background())

	assert.False(t, page.IsEditing)
	assert.Equal(t, "Backfilled zone A", page.Log.Summary)
	assert.Equal(t, "drainage", page.Log.ActivityType)
	assert.Equal(t, "drainage", backend.logs[0].ActivityType)
}

func TestLogDetailStagedUpload(t *testing.T) {
	backend := newFakeBackend()
	project := backend.addProject("Harbor Bridge")
	entry := backend.addLog(project.ID, "2025-03-01", "excavation")

	page := NewLogDetail(newTestClient(t, backend), nil, entry.ID)
	page.Enter(context.Background())

	t.Run("upload without staged files", func(t *testing.T) {
		page.Upload(context.Background())
		assert.Equal(t, "Select at least one file to upload.", page.ErrorMessage)
		assert.Empty(t, page.Attachments)
	})

	t.Run("staged files go out with shared caption", func(t *testing.T) {
		page.SelectFiles([]client.FileUpload{
			{Name: "pit.jpg", Content: strings.NewReader("aaa")},
			{Name: "trench.jpg", Content: strings.NewReader("bbb")},
		})
		page.UploadCaption = "east trench"
		page.Upload(context.Background())

		require.Len(t, page.Attachments, 2)
		for _, attachment := range page.Attachments {
			assert.Equal(t, "east trench", attachment.Caption)
		}
		assert.Nil(t, page.StagedFiles)
		assert.Empty(t, page.ErrorMessage)
	})
}

func TestLogDetailComments(t *testing.T) {
	backend := newFakeBackend()
	project := backend.addProject("Harbor Bridge")
	entry := backend.addLog(project.ID, "2025-03-01", "excavation")
	attachment := backend.addAttachment(entry.ID, "pit.jpg")

	page := NewLogDetail(newTestClient(t, backend), nil, entry.ID)
	page.Enter(context.Background())

	page.CommentText = "  check the shoring  "
	page.AddComment(context.Background(), attachment.ID)

	require.Len(t, page.Attachments[0].Comments, 1)
	assert.Equal(t, "check the shoring", page.Attachments[0].Comments[0].Text)
	assert.Empty(t, page.CommentText)

	page.AddComment(context.Background(), attachment.ID)
	assert.Len(t, page.Attachments[0].Comments, 1, "blank comment text sends nothing")
}

func TestLogDetailDeleteAttachment(t *testing.T) {
	backend := newFakeBackend()
	project := backend.addProject("Harbor Bridge")
	entry := backend.addLog(project.ID, "2025-03-01", "excavation")
	first := backend.addAttachment(entry.ID, "pit.jpg")
	second := backend.addAttachment(entry.ID, "trench.jpg")

	page := NewLogDetail(newTestClient(t, backend), nil, entry.ID)
	page.Enter(context.Background())
	require.Len(t, page.Attachments, 2)

	page.DeleteAttachment(context.Background(), first.ID)

	require.Len(t, page.Attachments, 1)
	assert.Equal(t, second.ID, page.Attachments[0].ID)
}

func TestLogDetailExportPDF(t *testing.T) {
	backend := newFakeBackend()
	project := backend.addProject("Harbor Bridge")
	entry := backend.addLog(project.ID, "2025-03-01", "excavation")

	page := NewLogDetail(newTestClient(t, backend), nil, entry.ID)
	page.Enter(context.Background())

	data, err := page.ExportPDF(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
	assert.Equal(t, entry.ID, backend.lastReportQuery["logIds"][0],
		"a single-log export pins the report to that log")
}
