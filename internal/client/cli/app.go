package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/gestorhq/gestorcli/internal/client/api"
	"github.com/gestorhq/gestorcli/internal/client/config"
	"github.com/gestorhq/gestorcli/internal/client/models"
	"github.com/gestorhq/gestorcli/internal/client/repositories"
	"github.com/gestorhq/gestorcli/internal/client/routing"
	"github.com/gestorhq/gestorcli/internal/client/session"
	"github.com/gestorhq/gestorcli/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionController is the slice of session.Manager the shell needs.
// Narrowed to an interface so command handlers can be tested against a fake.
type sessionController interface {
	Snapshot() session.Session
	Initialize(ctx context.Context) (session.Session, error)
	Login(ctx context.Context, email, password string) (session.Session, error)
	Register(ctx context.Context, req models.RegisterRequest) (session.Session, error)
	Logout(ctx context.Context) (session.Session, error)
	RefreshProfile(ctx context.Context) (session.Session, error)
	ClearError() session.Session
}

type App struct {
	config  *config.Config
	session sessionController
	client  api.Client
	log     logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
	route   routing.Route
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	if log == nil {
		log = logging.NopLogger{}
	}

	repos, db, err := repositories.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := api.NewRESTClient(c.ServerBaseURL, repos.Credentials, log)
	apiClient.SetTimeouts(c.RequestTimeout, c.HealthTimeout)

	manager := session.NewManager(apiClient, repos.Credentials, log)

	return &App{
		config:  c,
		session: manager,
		client:  apiClient,
		log:     log,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		route:   routing.RouteHome,
	}, nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// navigate runs the guard against the current session and applies its
// decision to the shell's route.
func (a *App) navigate(to routing.Route) {
	s := a.session.Snapshot()
	d := routing.Resolve(s.Initialized, s.Authenticated, to)
	switch d.Action {
	case routing.ActionRedirect:
		a.route = d.Target
	case routing.ActionRender:
		a.route = to
	case routing.ActionWait:
		// Session still initializing; stay where we are.
	}
}

// Run initializes the session, starts the connectivity watcher, and enters
// the REPL. It returns when the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if _, err := a.session.Initialize(ctx); err != nil {
		a.log.Warn(ctx, "session initialization skipped", "error", err)
	}
	a.navigate(a.route)

	if m, ok := a.session.(*session.Manager); ok {
		go m.WatchConnectivity(ctx, a.config.OnlineCheckInterval)
	}

	a.Root(ctx)
}
