package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martinsv/sitetrack/pages"
)

func newLoginCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in and store the session token locally",
		Args:  cobra.ExactArgs(2),
		Run:   app.handleLogin,
	}
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		Run:   app.handleLogout,
	}
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <name> <email> <password>",
		Short: "Create an account. Registration does not sign you in",
		Args:  cobra.ExactArgs(3),
		Run:   app.handleRegister,
	}
	return cmd
}

func newForgotPasswordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset token",
		Args:  cobra.ExactArgs(1),
		Run:   app.handleForgotPassword,
	}
	return cmd
}

func newResetPasswordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-password <token> <new-password>",
		Short: "Complete a password reset with the token from the email",
		Args:  cobra.ExactArgs(2),
		Run:   app.handleResetPassword,
	}
	return cmd
}

func (a *App) handleLogin(cmd *cobra.Command, args []string) {
	page := pages.NewLogin(a.session)
	page.Email = args[0]
	page.Password = args[1]

	if page.Submit(cmd.Context()) == "" {
		if page.Error != "" {
			pageError(page.Error)
		}
		pageError("Invalid email or password format.")
	}

	user := a.session.CurrentUser()
	if user != nil {
		fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	} else {
		fmt.Println("Logged in")
	}
}

func (a *App) handleLogout(cmd *cobra.Command, args []string) {
	if err := a.session.Logout(); err != nil {
		pageError("Unable to clear the stored session.")
	}
	fmt.Println("Logged out")
}

func (a *App) handleRegister(cmd *cobra.Command, args []string) {
	page := pages.NewRegister(a.session)
	page.Name = args[0]
	page.Email = args[1]
	page.Password = args[2]

	if page.Submit(cmd.Context()) != "login" {
		if page.Error != "" {
			pageError(page.Error)
		}
		pageError("Invalid email or password format.")
	}
	fmt.Println("Account created. You can now log in.")
}

func (a *App) handleForgotPassword(cmd *cobra.Command, args []string) {
	page := pages.NewForgotPassword(a.session)
	page.Email = args[0]
	page.Submit(cmd.Context())
	if page.Error != "" {
		pageError(page.Error)
	}

	fmt.Println(page.Success)
	if page.ResetToken != "" {
		fmt.Printf("Reset token: %s\n", page.ResetToken)
	}
}

func (a *App) handleResetPassword(cmd *cobra.Command, args []string) {
	page := pages.NewResetPassword(a.session)
	page.Token = args[0]
	page.NewPassword = args[1]

	if page.Submit(cmd.Context()) != "login" {
		if page.Error != "" {
			pageError(page.Error)
		}
		pageError("Token and a password of at least 6 characters are required.")
	}
	fmt.Println(page.Message)
}
