package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/martinsv/sitetrack/client"
	"github.com/martinsv/sitetrack/config"
	"github.com/martinsv/sitetrack/db"
	"github.com/martinsv/sitetrack/session"
)

// App holds the shared dependencies every command handler needs: config,
// logger, local state database, API client and session store.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	conn    *sql.DB
	api     *client.Client
	session *session.Store
}

// setup wires the dependency chain. The client reads its token through the
// session database on every request, so a login in one handler is visible
// to the next without rebuilding anything.
func (a *App) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.log = logger

	conn, err := db.Open(cfg.State.Path)
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	a.conn = conn

	a.api = client.New(cfg.API.BaseURL, func() string {
		token, err := db.GetValue(conn, session.TokenKey)
		if err != nil {
			logger.Warn("failed to read session token", zap.Error(err))
			return ""
		}
		return token
	}, time.Duration(cfg.API.TimeoutSec)*time.Second, logger)

	a.session = session.New(conn, a.api, logger)
	return nil
}

func (a *App) close() {
	if a.log != nil {
		a.log.Sync()
	}
	if a.conn != nil {
		a.conn.Close()
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// requireAuth enforces the route guard the way the web app guards its
// authenticated pages.
func (a *App) requireAuth() {
	if decision := session.Guard(a.session); !decision.Allowed {
		fmt.Printf("Not logged in. Run: sitetrack %s\n", decision.RedirectTo)
		os.Exit(1)
	}
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitetrack",
		Short: "CLI for a construction-site daily log backend: projects, daily logs, attachments and report export",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newRegisterCmd(app),
		newForgotPasswordCmd(app),
		newResetPasswordCmd(app),
		newProfileCmd(app),
		newProjectsCmd(app),
		newLogCmd(app),
		newReportCmd(app),
	)
	return cmd
}

// pageError reports a page's inline error the way the web app shows it,
// and exits non-zero.
func pageError(message string) {
	fmt.Printf("Error: %s\n", message)
	os.Exit(1)
}

// Execute initializes and runs the root command. It is the single entry point
// for the command-line interface.
func Execute() {
	app := &App{}
	rootCmd := newRootCmd(app)
	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, so we just need to exit.
		os.Exit(1)
	}
}
