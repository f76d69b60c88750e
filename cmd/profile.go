package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martinsv/sitetrack/pages"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in user's profile",
		Args:  cobra.NoArgs,
		Run:   app.handleProfile,
	}
	cmd.AddCommand(newChangePasswordCmd(app))
	return cmd
}

func newChangePasswordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "change-password <current> <new>",
		Short: "Change the logged-in user's password",
		Args:  cobra.ExactArgs(2),
		Run:   app.handleChangePassword,
	}
	return cmd
}

func (a *App) handleProfile(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewProfile(a.session)
	page.Enter(cmd.Context())
	if page.Error != "" {
		pageError(page.Error)
	}
	fmt.Print(page.Render())
}

func (a *App) handleChangePassword(cmd *cobra.Command, args []string) {
	a.requireAuth()

	page := pages.NewProfile(a.session)
	page.CurrentPassword = args[0]
	page.NewPassword = args[1]
	page.ConfirmPassword = args[1]
	page.SavePassword(cmd.Context())
	if page.Error != "" {
		pageError(page.Error)
	}
	fmt.Println(page.Message)
}
