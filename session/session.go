// Package session holds the authenticated-session state: the token and
// cached profile persisted in the local state database, plus request
// wrappers around the auth endpoints.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/martinsv/sitetrack/client"
	"github.com/martinsv/sitetrack/db"
	"github.com/martinsv/sitetrack/models"
)

// Storage keys. Fixed by the backend contract's companion apps; changing
// them would orphan existing sessions.
const (
	TokenKey = "site-tracker-token"
	UserKey  = "site-tracker-user"
)

type Store struct {
	conn *sql.DB
	api  *client.Client
	log  *zap.Logger
}

// New wires a session store over the local state database and an API
// client. The client's token source should read TokenKey from the same
// database (see cmd wiring).
func New(conn *sql.DB, api *client.Client, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{conn: conn, api: api, log: log}
}

// Token reads the persisted session token; empty when logged out.
func (s *Store) Token() string {
	token, err := db.GetValue(s.conn, TokenKey)
	if err != nil {
		s.log.Warn("failed to read session token", zap.Error(err))
		return ""
	}
	return token
}

// IsAuthenticated is purely token presence. Expiry is not checked here;
// see TokenExpiry.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// CurrentUser decodes the cached profile without touching the network.
// Absent or corrupt cache yields nil.
func (s *Store) CurrentUser() *models.AuthUser {
	raw, err := db.GetValue(s.conn, UserKey)
	if err != nil || raw == "" {
		return nil
	}
	var user models.AuthUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn("cached profile is corrupt", zap.Error(err))
		return nil
	}
	return &user
}

// Login authenticates and persists the token and profile on success.
func (s *Store) Login(ctx context.Context, email, password string) (models.AuthUser, error) {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return models.AuthUser{}, err
	}
	if err := db.SetValue(s.conn, TokenKey, resp.Token); err != nil {
		return models.AuthUser{}, err
	}
	if err := s.cacheUser(resp.User); err != nil {
		return models.AuthUser{}, err
	}
	s.log.Info("logged in", zap.String("email", resp.User.Email))
	return resp.User, nil
}

// Register creates an account without logging in.
func (s *Store) Register(ctx context.Context, name, email, password string) (models.AuthUser, error) {
	return s.api.Register(ctx, client.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     "member",
	})
}

// Logout clears the persisted session state.
func (s *Store) Logout() error {
	if err := db.DeleteValue(s.conn, TokenKey); err != nil {
		return err
	}
	return db.DeleteValue(s.conn, UserKey)
}

// Profile refreshes the cached profile from the server. On failure it
// falls back silently to the cached value when one exists.
func (s *Store) Profile(ctx context.Context) (models.AuthUser, error) {
	user, err := s.api.Me(ctx)
	if err != nil {
		if cached := s.CurrentUser(); cached != nil {
			s.log.Debug("profile refresh failed, serving cache", zap.Error(err))
			return *cached, nil
		}
		return models.AuthUser{}, err
	}
	if err := s.cacheUser(user); err != nil {
		return models.AuthUser{}, err
	}
	return user, nil
}

// ChangePassword swaps the password for the logged-in user.
func (s *Store) ChangePassword(ctx context.Context, current, next string) (string, error) {
	resp, err := s.api.ChangePassword(ctx, current, next)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RequestPasswordReset starts the reset flow. The server answers with the
// same message whether or not the account exists.
func (s *Store) RequestPasswordReset(ctx context.Context, email string) (client.PasswordResetResponse, error) {
	return s.api.RequestPasswordReset(ctx, email)
}

// ResetPassword completes the reset flow.
func (s *Store) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	resp, err := s.api.ResetPassword(ctx, token, newPassword)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// TokenExpiry reports the exp claim of the stored token when it parses as
// a JWT. The claim is read without signature verification; the client has
// no key and only uses this for advisory display, never to gate requests.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) cacheUser(user models.AuthUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return db.SetValue(s.conn, UserKey, string(raw))
}
