package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/martinsv/sitetrack/session"
)

// ForgotPassword starts the reset flow. The success text is whatever the
// server sent; it is intentionally the same for known and unknown emails.
type ForgotPassword struct {
	session *session.Store

	Email      string
	Touched    map[string]bool
	Loading    bool
	Error      string
	Success    string
	ResetToken string
}

func NewForgotPassword(s *session.Store) *ForgotPassword {
	return &ForgotPassword{session: s, Touched: map[string]bool{}}
}

func (p *ForgotPassword) Submit(ctx context.Context) {
	if !validEmail(p.Email) {
		p.Touched["email"] = true
		return
	}

	p.Loading = true
	p.Error = ""
	p.Success = ""
	p.ResetToken = ""

	resp, err := p.session.RequestPasswordReset(ctx, p.Email)
	p.Loading = false
	if err != nil {
		p.Error = UserMessage(err, "Unable to start password reset.")
		return
	}

	p.Success = resp.Message
	if p.Success == "" {
		p.Success = "If an account exists, a reset token has been generated."
	}
	p.ResetToken = resp.ResetToken
}

func (p *ForgotPassword) Render() string {
	var b strings.Builder
	b.WriteString("Forgot password\n")
	fmt.Fprintf(&b, "  email: %s\n", fieldView(p.Email, p.Touched["email"]))
	if p.Success != "" {
		fmt.Fprintf(&b, "  %s\n", p.Success)
	}
	if p.ResetToken != "" {
		fmt.Fprintf(&b, "  reset token: %s\n", p.ResetToken)
	}
	if p.Error != "" {
		fmt.Fprintf(&b, "  ! %s\n", p.Error)
	}
	return b.String()
}

// ResetPassword completes the flow with a token from the reset email.
type ResetPassword struct {
	session *session.Store

	Token       string
	NewPassword string
	Touched     map[string]bool
	Loading     bool
	Error       string
	Message     string
}

func NewResetPassword(s *session.Store) *ResetPassword {
	return &ResetPassword{session: s, Touched: map[string]bool{}}
}

// Submit returns "login" once the password is reset.
func (p *ResetPassword) Submit(ctx context.Context) string {
	if p.Token == "" || len(p.NewPassword) < 6 {
		p.Touched["token"] = true
		p.Touched["newPassword"] = true
		return ""
	}

	p.Loading = true
	p.Error = ""

	message, err := p.session.ResetPassword(ctx, p.Token, p.NewPassword)
	p.Loading = false
	if err != nil {
		p.Error = UserMessage(err, "Unable to reset password.")
		return ""
	}

	p.Message = message
	if p.Message == "" {
		p.Message = "Password updated."
	}
	return "login"
}

func (p *ResetPassword) Render() string {
	var b strings.Builder
	b.WriteString("Reset password\n")
	if p.Message != "" {
		fmt.Fprintf(&b, "  %s\n", p.Message)
	}
	if p.Error != "" {
		fmt.Fprintf(&b, "  ! %s\n", p.Error)
	}
	return b.String()
}
