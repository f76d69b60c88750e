package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/martinsv/sitetrack/session"
)

// Login is the sign-in page.
type Login struct {
	session *session.Store

	Email    string
	Password string
	Touched  map[string]bool
	Loading  bool
	Error    string
}

func NewLogin(s *session.Store) *Login {
	return &Login{session: s, Touched: map[string]bool{}}
}

// Submit validates locally, then authenticates. It returns the next route
// ("projects") on success and the empty string when the page stays put.
func (p *Login) Submit(ctx context.Context) string {
	if !validEmail(p.Email) || len(p.Password) < 6 {
		p.Touched["email"] = true
		p.Touched["password"] = true
		return ""
	}

	p.Loading = true
	p.Error = ""

	_, err := p.session.Login(ctx, p.Email, p.Password)
	p.Loading = false
	if err != nil {
		p.Error = UserMessage(err, "Login failed.")
		return ""
	}
	return "projects"
}

func (p *Login) Render() string {
	var b strings.Builder
	b.WriteString("Sign in\n")
	fmt.Fprintf(&b, "  email:    %s\n", fieldView(p.Email, p.Touched["email"]))
	fmt.Fprintf(&b, "  password: %s\n", fieldView(strings.Repeat("*", len(p.Password)), p.Touched["password"]))
	if p.Loading {
		b.WriteString("  signing in...\n")
	}
	if p.Error != "" {
		fmt.Fprintf(&b, "  ! %s\n", p.Error)
	}
	return b.String()
}

// Register is the account-creation page.
type Register struct {
	session *session.Store

	Name     string
	Email    string
	Password string
	Touched  map[string]bool
	Loading  bool
	Error    string
}

func NewRegister(s *session.Store) *Register {
	return &Register{session: s, Touched: map[string]bool{}}
}

// Submit creates the account and routes to login; registration does not
// sign the user in.
func (p *Register) Submit(ctx context.Context) string {
	if !validEmail(p.Email) || len(p.Password) < 6 {
		p.Touched["email"] = true
		p.Touched["password"] = true
		return ""
	}

	p.Loading = true
	p.Error = ""

	_, err := p.session.Register(ctx, p.Name, p.Email, p.Password)
	p.Loading = false
	if err != nil {
		p.Error = UserMessage(err, "Registration failed.")
		return ""
	}
	return "login"
}

func (p *Register) Render() string {
	var b strings.Builder
	b.WriteString("Create account\n")
	fmt.Fprintf(&b, "  name:     %s\n", p.Name)
	fmt.Fprintf(&b, "  email:    %s\n", fieldView(p.Email, p.Touched["email"]))
	fmt.Fprintf(&b, "  password: %s\n", fieldView(strings.Repeat("*", len(p.Password)), p.Touched["password"]))
	if p.Error != "" {
		fmt.Fprintf(&b, "  ! %s\n", p.Error)
	}
	return b.String()
}

// fieldView marks a touched-but-invalid field the way the web app marks
// touched form controls.
func fieldView(value string, touched bool) string {
	if value == "" && touched {
		return "<required>"
	}
	return value
}
