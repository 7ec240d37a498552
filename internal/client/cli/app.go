package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/gymfitness/membership/internal/client/client"
	"github.com/gymfitness/membership/internal/client/config"
	"github.com/gymfitness/membership/internal/client/models"
	"github.com/gymfitness/membership/internal/client/repositories/sessions"
)

type App struct {
	config   *config.Config
	api      client.Client
	sessions sessions.Repository
	db       *sql.DB
	reader   *bufio.Reader
	out      io.Writer
	session  *models.Session
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if c.ServerEndpointAddr == "" {
		return nil, fmt.Errorf("server address is empty")
	}

	db, err := client.InitDatabase(ctx, c.SessionFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	api := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)
	app := newApp(c, api, sessions.NewSQLiteRepository(db), os.Stdin, os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, api client.Client, repo sessions.Repository, in io.Reader, out io.Writer) *App {
	return &App{config: c, api: api, sessions: repo, reader: bufio.NewReader(in), out: out}
}

// Run restores the saved session, then executes args as a single command
// or starts the prompt when args is empty.
func (a *App) Run(ctx context.Context, args []string) error {
	defer a.Close()

	if err := a.restoreSession(ctx); err != nil {
		fmt.Fprintf(a.out, "warning: %v\n", err)
	}

	if len(args) == 0 {
		a.Root(ctx)
		return nil
	}
	return a.exec(ctx, args[0])
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

func (a *App) isSignedIn() bool {
	return a.session != nil
}

func (a *App) restoreSession(ctx context.Context) error {
	s, err := a.sessions.Get(ctx)
	if err != nil {
		return err
	}
	a.session = s
	return nil
}

func (a *App) setSession(ctx context.Context, s *models.Session) {
	a.session = s
	if err := a.sessions.Save(ctx, s); err != nil {
		fmt.Fprintf(a.out, "warning: session not saved: %v\n", err)
	}
}

func (a *App) clearSession(ctx context.Context) {
	a.session = nil
	if err := a.sessions.Clear(ctx); err != nil {
		fmt.Fprintf(a.out, "warning: session not cleared: %v\n", err)
	}
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
