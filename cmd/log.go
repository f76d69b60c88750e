package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/martinsv/sitetrack/client"
	"github.com/martinsv/sitetrack/file"
	"github.com/martinsv/sitetrack/pages"
	"github.com/martinsv/sitetrack/report"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Work with daily logs",
	}
	cmd.AddCommand(
		newLogCreateCmd(app),
		newLogShowCmd(app),
		newLogEditCmd(app),
		newLogDeleteCmd(app),
		newLogUploadCmd(app),
		newLogCommentCmd(app),
		newLogExportCmd(app),
	)
	return cmd
}

func newLogCreateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <project-id> <date> <site-area> <activity> <summary>",
		Short: "Record a daily log. Activity labels are normalized (\"Concrete Pour\" becomes concrete_pour)",
		Args:  cobra.ExactArgs(5),
		Run:   app.handleLogCreate,
	}
	cmd.Flags().String("weather", "sunny", "weather type (sunny, cloudy, rain, snow, wind)")
	cmd.Flags().String("weather-notes", "", "free-form weather notes")
	cmd.Flags().String("folder", "", "folder id to file the log under")
	cmd.Flags().String("issues", "", "issues and risks")
	cmd.Flags().String("next", "", "next steps")
	return cmd
}

func newLogShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <log-id>",
		Short: "Show one daily log with its attachments and comments",
		Args:  cobra.ExactArgs(1),
		Run:   app.handleLogShow,
	}
	return cmd
}

func newLogEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <log-id>",
		Short: "Update fields of a daily log. Unset flags keep the stored value",
		Args:  cobra.ExactArgs(1),
		Run:   app.handleLogEdit,
	}
	cmd.Flags().String("date", "", "log date (YYYY-MM-DD)")
	cmd.Flags().String("site-area", "", "site area")
	cmd.Flags().String("activity", "", "activity type")
	cmd.Flags().String("summary", "", "work summary")
	cmd.Flags().String("issues", "", "issues and risks")
	cmd.Flags().String("next", "", "next steps")
	return cmd
}

func newLogDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <log-id>",
		Short: "Delete a daily log and its attachments",
		Args:  cobra.ExactArgs(1),
		Run:   app.handleLogDelete,
	}
	return cmd
}

func newLogUploadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <log-id> <path>...",
		Short: "Attach files to a log. Directories are walked for photos and PDFs",
		Args:  cobra.MinimumNArgs(2),
		Run:   app.handleLogUpload,
	}
	cmd.Flags().String("caption", "", "caption applied to every uploaded file")
	cmd.Flags().String("tags", "", "comma separated tags applied to every uploaded file")
	return cmd
}

func newLogCommentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment <log-id> <attachment-id> <text>",
		Short: "Comment on an attachment",
		Args:  cobra.ExactArgs(3),
		Run:   app.handleLogComment,
	}
	return cmd
}

func newLogExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <log-id>",
		Short: "Export a single log as a PDF report",
		Args:  cobra.ExactArgs(1),
		Run:   app.handleLogExport,
	}
	cmd.Flags().StringP("output", "o", "daily-log.pdf", "output file")
	return cmd
}

func (a *App) handleLogCreate(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewProjectDetail(a.api, a.log, args[0])
	page.Enter(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}

	page.LogForm.Date = args[1]
	page.LogForm.SiteArea = args[2]
	page.LogForm.ActivityType = args[3]
	page.LogForm.Summary = args[4]
	page.LogForm.WeatherType, _ = cmd.Flags().GetString("weather")
	page.LogForm.WeatherNotes, _ = cmd.Flags().GetString("weather-notes")
	page.LogForm.Folder, _ = cmd.Flags().GetString("folder")
	page.LogForm.IssuesRisks, _ = cmd.Flags().GetString("issues")
	page.LogForm.NextSteps, _ = cmd.Flags().GetString("next")

	page.CreateLog(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}
	if page.HighlightLogID == "" {
		pageError("Date, site area, activity and summary are required.")
	}
	fmt.Printf("%s (%s)\n", page.SuccessMessage, page.HighlightLogID)
}

func (a *App) handleLogShow(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewLogDetail(a.api, a.log, args[0])
	page.Enter(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}
	fmt.Print(page.Render())
}

func (a *App) handleLogEdit(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewLogDetail(a.api, a.log, args[0])
	page.Enter(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}

	page.ToggleEdit()
	if v, _ := cmd.Flags().GetString("date"); v != "" {
		page.EditForm.Date = v
	}
	if v, _ := cmd.Flags().GetString("site-area"); v != "" {
		page.EditForm.SiteArea = v
	}
	if v, _ := cmd.Flags().GetString("activity"); v != "" {
		page.EditForm.ActivityType = v
	}
	if v, _ := cmd.Flags().GetString("summary"); v != "" {
		page.EditForm.Summary = v
	}
	if v, _ := cmd.Flags().GetString("issues"); v != "" {
		page.EditForm.IssuesRisks = v
	}
	if v, _ := cmd.Flags().GetString("next"); v != "" {
		page.EditForm.NextSteps = v
	}

	page.SaveEdit(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}
	fmt.Println("Log updated")
}

func (a *App) handleLogDelete(cmd *cobra.Command, args []string) {
	a.requireAuth()

	if err := a.api.DeleteLog(cmd.Context(), args[0]); err != nil {
		pageError(pages.UserMessage(err, "Unable to delete log."))
	}
	fmt.Println("Log deleted")
}

func (a *App) handleLogUpload(cmd *cobra.Command, args []string) {
	a.requireAuth()

	var paths []string
	for _, arg := range args[1:] {
		info, err := os.Stat(arg)
		if err != nil {
			pageError(fmt.Sprintf("Cannot read %s", arg))
		}
		if info.IsDir() {
			found, err := file.Collect(arg, file.DefaultExtensions)
			if err != nil {
				pageError(fmt.Sprintf("Cannot walk %s", arg))
			}
			paths = append(paths, found...)
			continue
		}
		paths = append(paths, arg)
	}
	if len(paths) == 0 {
		pageError("Select at least one file to upload.")
	}

	uploads := make([]client.FileUpload, 0, len(paths))
	handles := make([]*os.File, 0, len(paths))
	defer func() {
		for _, h := range handles {
			h.Close()
		}
	}()
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			pageError(fmt.Sprintf("Cannot open %s", path))
		}
		handles = append(handles, f)
		uploads = append(uploads, client.FileUpload{Name: f.Name(), Content: f})
	}

	page := pages.NewLogDetail(a.api, a.log, args[0])
	page.Enter(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}

	page.SelectFiles(uploads)
	page.UploadCaption, _ = cmd.Flags().GetString("caption")
	page.UploadTags, _ = cmd.Flags().GetString("tags")
	page.Upload(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}
	fmt.Printf("Uploaded %d file(s)\n", len(uploads))
}

func (a *App) handleLogComment(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewLogDetail(a.api, a.log, args[0])
	page.Enter(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}

	page.CommentText = args[2]
	page.AddComment(cmd.Context(), args[1])
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}
	fmt.Println("Comment added")
}

func (a *App) handleLogExport(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewLogDetail(a.api, a.log, args[0])
	page.Enter(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}

	data, err := page.ExportPDF(cmd.Context())
	if err != nil {
		pageError(page.ErrorMessage)
	}

	output, _ := cmd.Flags().GetString("output")
	pageCount, err := report.Save(output, data)
	if err != nil {
		pageError(fmt.Sprintf("Unable to save report: %v", err))
	}
	fmt.Printf("Saved %s (%d page(s))\n", output, pageCount)
}
