package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martinsv/sitetrack/pages"
	"github.com/martinsv/sitetrack/report"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <project-id>",
		Short: "Export a project's daily logs as a PDF report",
		Args:  cobra.ExactArgs(1),
		Run:   app.handleReportExport,
	}
	cmd.Flags().String("from", "", "only logs on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "only logs on or before this date (YYYY-MM-DD)")
	cmd.Flags().String("folder", "", "only logs in this folder")
	cmd.Flags().StringSlice("skip", nil, "log ids to leave out of the report")
	cmd.Flags().StringP("output", "o", "daily-report.pdf", "output file")
	cmd.Flags().Bool("url", false, "print the shareable report URL instead of downloading")
	return cmd
}

func (a *App) handleReportExport(cmd *cobra.Command, args []string) {
	a.requireAuth()

	if urlOnly, _ := cmd.Flags().GetBool("url"); urlOnly {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		fmt.Println(a.api.ReportURL(args[0], from, to))
		return
	}

	page := pages.NewReportExport(a.api, a.log, args[0])
	page.From, _ = cmd.Flags().GetString("from")
	page.To, _ = cmd.Flags().GetString("to")
	page.Folder, _ = cmd.Flags().GetString("folder")

	page.Enter(cmd.Context())
	if page.ErrorMessage != "" {
		pageError(page.ErrorMessage)
	}

	skip, _ := cmd.Flags().GetStringSlice("skip")
	for _, id := range skip {
		if page.Selected[id] {
			page.Toggle(id)
		}
	}

	data, err := page.Download(cmd.Context())
	if err != nil {
		pageError(page.ErrorMessage)
	}

	output, _ := cmd.Flags().GetString("output")
	pageCount, err := report.Save(output, data)
	if err != nil {
		pageError(fmt.Sprintf("Unable to save report: %v", err))
	}
	fmt.Printf("Saved %s with %d of %d logs (%d page(s))\n",
		output, page.SelectedCount(), len(page.Logs), pageCount)
}
