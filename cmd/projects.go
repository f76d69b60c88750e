package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martinsv/sitetrack/models"
	"github.com/martinsv/sitetrack/pages"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List and manage projects",
		Args:  cobra.NoArgs,
		Run:   app.handleProjectList,
	}
	cmd.Flags().StringP("search", "s", "", "filter by name, client or site address")
	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectShowCmd(app),
		newProjectEditCmd(app),
		newProjectDeleteCmd(app),
		newProjectArchiveCmd(app),
		newFolderCmd(app),
	)
	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name> <client> <site-address> <start-date>",
		Short: "Create a project. Start date is YYYY-MM-DD",
		Args:  cobra.ExactArgs(4),
		Run:   app.handleProjectCreate,
	}
	cmd.Flags().String("end-date", "", "planned end date (YYYY-MM-DD)")
	cmd.Flags().String("status", "active", "project status (active, on_hold, completed)")
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project with its daily logs",
		Args:  cobra.ExactArgs(1),
		Run:   app.handleProjectShow,
	}
	cmd.Flags().String("from", "", "only logs on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "only logs on or before this date (YYYY-MM-DD)")
	cmd.Flags().String("activity", "", "only logs with this activity type")
	cmd.Flags().String("folder", "", "only logs in this folder")
	return cmd
}

func newProjectEditCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <project-id>",
		Short: "Update fields of a project. Unset flags keep the stored value",
		Args:  cobra.ExactArgs(1),
		Run:   app.handleProjectEdit,
	}
	cmd.Flags().String("name", "", "project name")
	cmd.Flags().String("client", "", "client name")
	cmd.Flags().String("site-address", "", "site address")
	cmd.Flags().String("start-date", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("end-date", "", "planned end date (YYYY-MM-DD)")
	cmd.Flags().String("status", "", "project status (active, on_hold, completed)")
	return cmd
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project permanently",
		Args:  cobra.ExactArgs(1),
		Run:   app.handleProjectDelete,
	}
	return cmd
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <project-id>",
		Short: "Archive a project without deleting its data",
		Args:  cobra.ExactArgs(1),
		Run:   app.handleProjectArchive,
	}
	return cmd
}

func newFolderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage log folders inside a project",
	}
	create := &cobra.Command{
		Use:   "create <project-id> <name>",
		Short: "Create a folder in a project",
		Args:  cobra.ExactArgs(2),
		Run:   app.handleFolderCreate,
	}
	remove := &cobra.Command{
		Use:   "delete <project-id> <folder-id>",
		Short: "Delete a folder. Its logs stay, unfiled",
		Args:  cobra.ExactArgs(2),
		Run:   app.handleFolderDelete,
	}
	cmd.AddCommand(create, remove)
	return cmd
}

func (a *App) handleProjectList(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewProjects(a.api, a.log)
	page.Enter(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}
	page.Query, _ = cmd.Flags().GetString("search")
	fmt.Print(page.Render())
}

func (a *App) handleProjectCreate(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewProjects(a.api, a.log)
	page.Form.Name = args[0]
	page.Form.Client = args[1]
	page.Form.SiteAddress = args[2]
	page.Form.StartDate = args[3]
	page.Form.EndDate, _ = cmd.Flags().GetString("end-date")
	page.Form.Status, _ = cmd.Flags().GetString("status")

	page.Create(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}
	if len(page.Projects) == 0 {
		pageError("Name, client, site address and start date are required.")
	}
	fmt.Printf("Created project %s (%s)\n", page.Projects[0].Name, page.Projects[0].ID)
}

func (a *App) handleProjectShow(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewProjectDetail(a.api, a.log, args[0])
	page.Filters.From, _ = cmd.Flags().GetString("from")
	page.Filters.To, _ = cmd.Flags().GetString("to")
	page.Filters.ActivityType, _ = cmd.Flags().GetString("activity")
	page.Filters.Folder, _ = cmd.Flags().GetString("folder")

	page.Enter(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}
	fmt.Print(page.Render())
}

func (a *App) handleProjectEdit(cmd *cobra.Command, args []string) {
	a.requireAuth()

	project, err := a.api.GetProject(cmd.Context(), args[0])
	if err != nil {
		pageError(pages.UserMessage(err, "Unable to load project."))
	}

	draft := models.ProjectDraft{
		Name:        project.Name,
		Client:      project.Client,
		SiteAddress: project.SiteAddress,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		Status:      project.Status,
	}
	if v, _ := cmd.Flags().GetString("name"); v != "" {
		draft.Name = v
	}
	if v, _ := cmd.Flags().GetString("client"); v != "" {
		draft.Client = v
	}
	if v, _ := cmd.Flags().GetString("site-address"); v != "" {
		draft.SiteAddress = v
	}
	if v, _ := cmd.Flags().GetString("start-date"); v != "" {
		draft.StartDate = v
	}
	if v, _ := cmd.Flags().GetString("end-date"); v != "" {
		draft.EndDate = v
	}
	if v, _ := cmd.Flags().GetString("status"); v != "" {
		draft.Status = v
	}

	updated, err := a.api.UpdateProject(cmd.Context(), args[0], draft)
	if err != nil {
		pageError(pages.UserMessage(err, "Unable to update project."))
	}
	fmt.Printf("Updated %s\n", updated.Name)
}

func (a *App) handleProjectDelete(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewProjects(a.api, a.log)
	page.Delete(cmd.Context(), args[0])
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}
	fmt.Println("Project deleted")
}

func (a *App) handleProjectArchive(cmd *cobra.Command, args []string) {
	a.requireAuth()

	project, err := a.api.ArchiveProject(cmd.Context(), args[0])
	if err != nil {
		pageError(pages.UserMessage(err, "Unable to archive project."))
	}
	fmt.Printf("Archived %s\n", project.Name)
}

func (a *App) handleFolderCreate(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewProjectDetail(a.api, a.log, args[0])
	page.Enter(cmd.Context())
	page.FolderName = args[1]
	page.CreateFolder(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}
	fmt.Printf("Created folder %s (%s)\n", page.Folders[0].Name, page.Folders[0].ID)
}

func (a *App) handleFolderDelete(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewProjectDetail(a.api, a.log, args[0])
	page.Enter(cmd.Context())
	page.DeleteFolder(cmd.Context(), args[1])
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}
	fmt.Println("Folder deleted")
}
