package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/martinsv/sitetrack/models"
	"github.com/martinsv/sitetrack/session"
)

// Profile shows the cached user immediately, refreshes from the server,
// and hosts the change-password form.
type Profile struct {
	session *session.Store

	User      *models.AuthUser
	IsLoading bool
	Message   string
	Error     string

	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
	Touched         map[string]bool
}

func NewProfile(s *session.Store) *Profile {
	return &Profile{session: s, Touched: map[string]bool{}}
}

// Enter seeds the view from cache, then refreshes. The session store
// already falls back to cache when the refresh fails, so only a missing
// cache surfaces an error here.
func (p *Profile) Enter(ctx context.Context) {
	p.User = p.session.CurrentUser()

	p.IsLoading = true
	user, err := p.session.Profile(ctx)
	p.IsLoading = false
	if err != nil {
		p.Error = "Unable to load profile."
		return
	}
	p.User = &user
}

func (p *Profile) SavePassword(ctx context.Context) {
	if p.CurrentPassword == "" || len(p.NewPassword) < 6 || p.ConfirmPassword == "" {
		for _, field := range []string{"currentPassword", "newPassword", "confirmPassword"} {
			p.Touched[field] = true
		}
		return
	}
	if p.NewPassword != p.ConfirmPassword {
		p.Error = "Passwords do not match."
		return
	}

	p.IsLoading = true
	p.Error = ""
	p.Message = ""

	message, err := p.session.ChangePassword(ctx, p.CurrentPassword, p.NewPassword)
	p.IsLoading = false
	if err != nil {
		p.Error = UserMessage(err, "Unable to update password.")
		return
	}

	p.Message = message
	if p.Message == "" {
		p.Message = "Password updated."
	}
	p.CurrentPassword = ""
	p.NewPassword = ""
	p.ConfirmPassword = ""
	p.Touched = map[string]bool{}
}

func (p *Profile) Render() string {
	var b strings.Builder
	b.WriteString("Profile\n")
	if p.User != nil {
		fmt.Fprintf(&b, "  %s <%s> (%s)\n", p.User.Name, p.User.Email, p.User.Role)
	}
	if expiry, ok := p.session.TokenExpiry(); ok {
		fmt.Fprintf(&b, "  session expires %s\n", expiry.Format("2006-01-02 15:04"))
	}
	if p.Message != "" {
		fmt.Fprintf(&b, "  %s\n", p.Message)
	}
	if p.Error != "" {
		fmt.Fprintf(&b, "  ! %s\n", p.Error)
	}
	return b.String()
}
