package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/sitegen/internal/client/client"
	"github.com/dmitrijs2005/sitegen/internal/client/config"
	"github.com/dmitrijs2005/sitegen/internal/client/models"
	"github.com/dmitrijs2005/sitegen/internal/client/preview"
	"github.com/dmitrijs2005/sitegen/internal/client/publish"
	"github.com/dmitrijs2005/sitegen/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sitegen/internal/client/services"
	"github.com/dmitrijs2005/sitegen/internal/client/session"
	"github.com/dmitrijs2005/sitegen/internal/common"
	"github.com/dmitrijs2005/sitegen/internal/logging"
)

const msgBusy = "Запрос уже выполняется, подождите"

var (
	errBusy    = errors.New("request already in flight")
	errDropped = errors.New("screen closed before the response arrived")
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        io.Closer
	store     *session.Store
	auth      services.AuthService
	admin     services.AdminService
	gen       services.GenerationService
	preview   *preview.Server
	publisher *publish.Publisher
	reader    *bufio.Reader
	now       func() time.Time

	// alive is cancelled by Close; responses arriving afterwards are dropped.
	alive     context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu       sync.Mutex
	mode     models.AuthAction
	users    []models.User
	artifact *models.Artifact

	authBusy    atomic.Bool
	genBusy     atomic.Bool
	listBusy    atomic.Bool
	adminBusy   atomic.Bool
	publishBusy atomic.Bool
}

// NewApp opens the local session database, restores any saved session and
// wires the services against the configured endpoints.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := session.NewStore(metadata.NewSQLiteRepository(db), logger)
	if _, err := store.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	api := client.NewHTTPClient(
		client.Endpoints{AuthURL: c.AuthURL, AdminURL: c.AdminURL, GenerateURL: c.GenerateURL},
		client.WithTimeouts(c.RequestTimeout, c.GenerateTimeout),
		client.WithLogger(logger),
	)

	a := newApp(c, logger, store,
		services.NewAuthService(api, store, logger),
		services.NewAdminService(api, store, logger),
		services.NewGenerationService(api, store, logger, c.GenerationCost),
	)
	a.db = db

	pub, err := publish.New(ctx, publish.Options{
		BaseEndpoint: c.S3BaseEndpoint,
		Region:       c.S3Region,
		Bucket:       c.S3Bucket,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
		LinkTTL:      c.PublishLinkTTL,
	}, logger)
	switch {
	case err == nil:
		a.publisher = pub
	case errors.Is(err, publish.ErrDisabled):
	default:
		logger.Warn(ctx, "publishing unavailable", "error", err)
	}

	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, store *session.Store,
	as services.AuthService, ads services.AdminService, gs services.GenerationService) *App {
	alive, cancel := context.WithCancel(context.Background())
	return &App{
		config:  c,
		logger:  logger,
		store:   store,
		auth:    as,
		admin:   ads,
		gen:     gs,
		preview: preview.NewServer(c.ExportFileName, logger),
		reader:  bufio.NewReader(os.Stdin),
		now:     time.Now,
		alive:   alive,
		cancel:  cancel,
		mode:    models.ActionLogin,
	}
}

// Run starts the REPL and blocks until the user exits, input ends or ctx is
// done. The App is closed on return.
func (a *App) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, a.cancel)
	defer stop()
	defer a.Close(context.Background())

	printlnFn("sitegen (help — список команд)")
	a.render()
	if a.isAdmin() {
		_ = a.refreshUsers(a.alive, false)
	}

	runREPL(a.alive, a, a.header, a.reader)
	return nil
}

// Close tears the screen down. Safe to call more than once.
func (a *App) Close(ctx context.Context) error {
	var err error
	a.closeOnce.Do(func() {
		a.cancel()
		err = a.preview.Shutdown(ctx)
		if a.db != nil {
			err = errors.Join(err, a.db.Close())
		}
	})
	return err
}

func (a *App) isLoggedIn() bool {
	_, ok := a.store.Current()
	return ok
}

func (a *App) isAdmin() bool {
	u, ok := a.store.Current()
	return ok && u.IsAdmin
}

// dropped reports whether the screen was closed, in which case a response
// must not be applied.
func (a *App) dropped() bool {
	return a.alive.Err() != nil
}

// guard runs fn unless another request guarded by flag is in flight.
func (a *App) guard(flag *atomic.Bool, fn func() error) error {
	if !flag.CompareAndSwap(false, true) {
		a.notify(common.TitleError, msgBusy)
		return errBusy
	}
	defer flag.Store(false)
	return fn()
}

func (a *App) setMode(m models.AuthAction) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = m
}

func (a *App) currentMode() models.AuthAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setUsers(users []models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.users = users
}

func (a *App) cachedUsers() []models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.User(nil), a.users...)
}

func (a *App) setArtifact(art *models.Artifact) {
	a.mu.Lock()
	a.artifact = art
	a.mu.Unlock()
	a.preview.SetArtifact(art)
}

func (a *App) currentArtifact() *models.Artifact {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.artifact
}

// resetScreen drops everything tied to the previous session.
func (a *App) resetScreen() {
	a.mu.Lock()
	a.users = nil
	a.artifact = nil
	a.mode = models.ActionLogin
	a.mu.Unlock()
	a.preview.Clear()
}
