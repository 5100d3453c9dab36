package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/preranah7/archweekly/internal/client/client"
	"github.com/preranah7/archweekly/internal/client/config"
	"github.com/preranah7/archweekly/internal/client/models"
	"github.com/preranah7/archweekly/internal/client/query"
	"github.com/preranah7/archweekly/internal/client/render"
	"github.com/preranah7/archweekly/internal/client/router"
	"github.com/preranah7/archweekly/internal/client/session"
	"github.com/preranah7/archweekly/internal/client/storage"
	"github.com/preranah7/archweekly/internal/logging"
	"golang.org/x/term"
)

// API is the newsletter backend as seen by the views. *client.Client
// implements it.
type API interface {
	session.AuthAPI
	Logout(ctx context.Context) error

	Subscribe(ctx context.Context, email, referredBy string) (*models.SubscribeResponse, error)
	Unsubscribe(ctx context.Context, email string) (*models.MessageResponse, error)
	SubscriberStats(ctx context.Context) (*models.SubscriberStats, error)
	SubscriberCount(ctx context.Context) (*models.SubscriberCount, error)
	ReferralStats(ctx context.Context, email string) (*models.ReferralStats, error)
	ListSubscribers(ctx context.Context, page, limit int) (*models.SubscriberList, error)

	LatestNewsletter(ctx context.Context) (*models.NewsletterResponse, error)
	NewsletterArchive(ctx context.Context, page int) (*models.NewsletterArchive, error)
	NewsletterByID(ctx context.Context, id string) (*models.NewsletterResponse, error)
	TopArticles(ctx context.Context, limit int) (*models.TopArticles, error)
	ArticlesByCategory(ctx context.Context, category string) (*models.CategoryArticles, error)
	SendNewsletter(ctx context.Context, opts ...client.CallOption) (*models.SendResult, error)
	SendTestEmail(ctx context.Context, email string) (*models.TestEmailResponse, error)
	TriggerWorkflow(ctx context.Context, opts ...client.CallOption) (*models.SendResult, error)

	SystemDesignResources(ctx context.Context, category, difficulty string) (*models.SystemDesignResources, error)
	SystemDesignStats(ctx context.Context) (models.SystemDesignStats, error)
	TriggerSystemDesignUpdate(ctx context.Context, opts ...client.CallOption) (*models.SystemDesignUpdateResult, error)

	Health(ctx context.Context) models.HealthStatus
}

type App struct {
	config  *config.Config
	api     API
	repo    storage.Repository
	store   *session.Store
	cache   *query.Cache
	history *router.History
	out     *render.Renderer
	logger  logging.Logger

	reader      *bufio.Reader
	w           io.Writer
	interactive bool
	db          *sql.DB
}

// Deps are the pieces New cannot build itself.
type Deps struct {
	Repo   storage.Repository
	Logger logging.Logger
	In     io.Reader
	Out    io.Writer
	Color  bool
	// Interactive enables hidden code entry on a terminal.
	Interactive bool
	// ClientOptions are appended to the API client options.
	ClientOptions []client.Option
}

// New wires an App on top of d.Repo.
func New(cfg *config.Config, d Deps) (*App, error) {
	format, err := render.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}

	a := &App{
		config:      cfg,
		repo:        d.Repo,
		history:     router.NewHistory(router.PathHome),
		out:         render.New(d.Out, format, d.Color),
		logger:      d.Logger,
		reader:      bufio.NewReader(d.In),
		w:           d.Out,
		interactive: d.Interactive,
	}

	opts := []client.Option{
		client.WithLogger(d.Logger),
		client.WithTokenSource(session.NewStorageTokenSource(d.Repo, d.Logger)),
		client.WithUnauthorizedHook(a.onUnauthorized),
	}
	api := client.New(client.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.RequestTimeout}, append(opts, d.ClientOptions...)...)

	a.api = api
	a.store = session.NewStore(api, d.Repo, session.WithLogger(d.Logger))
	qopts := query.DefaultOptions()
	qopts.StaleTime = cfg.StaleTime
	qopts.Retry = cfg.RetryCount
	a.cache = query.New(qopts, query.WithLogger(d.Logger))

	return a, nil
}

// NewApp opens the database named in cfg and builds an App on the process
// stdin and stdout.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	a, err := New(cfg, Deps{
		Repo:        storage.NewSQLiteRepository(db),
		Logger:      logger,
		In:          os.Stdin,
		Out:         os.Stdout,
		Color:       stdoutTTY && !cfg.NoColor,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.db = db
	return a, nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Run loads the session and blocks in the REPL until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.boot(ctx)
	a.afterCommand(ctx)

	a.out.Muted("Welcome to ArchWeekly (type 'help' for commands)")
	runREPL(ctx, a, a.prompt, a.reader)
}

// boot loads the persisted session and checks it with the server, the way
// a page load does.
func (a *App) boot(ctx context.Context) {
	if err := a.store.Hydrate(ctx); err != nil {
		a.logger.Warn(ctx, "failed to load session", "error", err)
	}
	a.store.Revalidate(ctx)
}

// onUnauthorized is the API client's single reaction to a 401. The
// session ends at once; the reload from storage waits for afterCommand.
func (a *App) onUnauthorized(ctx context.Context) {
	if err := session.Purge(ctx, a.repo); err != nil {
		a.logger.Warn(ctx, "failed to purge session", "error", err)
	}
	a.store.Expire()
	a.history.Redirect(router.PathLogin)
}

// afterCommand completes a hard redirect requested while the last command
// ran. A sign-in that succeeded after the 401 is kept as is.
func (a *App) afterCommand(ctx context.Context) {
	if !a.history.TakeReload() {
		return
	}
	a.cache.Reset()
	if a.isLoggedIn() {
		return
	}
	a.boot(ctx)
	// A 401 during revalidation has already purged storage; drop its
	// redirect request.
	a.history.TakeReload()
	if !a.isLoggedIn() {
		a.out.Warning("Your session has ended. Type 'login' to sign in again.")
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().IsAuthenticated
}

func (a *App) isAdmin() bool {
	st := a.store.Snapshot()
	return st.IsAuthenticated && st.User.IsAdmin()
}

func (a *App) prompt() string {
	st := a.store.Snapshot()
	loc := a.history.Current().Path
	if st.IsAuthenticated && st.User != nil {
		return fmt.Sprintf("archweekly %s (%s)> ", loc, st.User.Email)
	}
	return fmt.Sprintf("archweekly %s> ", loc)
}
