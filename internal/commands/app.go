package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/idilsaglam/sessiontodo/internal/config"
	"github.com/idilsaglam/sessiontodo/internal/logging"
	"github.com/idilsaglam/sessiontodo/internal/session"
	"github.com/idilsaglam/sessiontodo/internal/todo"
)

// App is the runtime shared by every command. The root Before hook fills it
// in; commands hold a pointer to it from registration time.
type App struct {
	Config  *config.Config
	Storage *session.Storage
	Store   *todo.Store

	// Session is the name the backend was opened with. Memory sessions get a
	// fresh random name since they end with the process.
	Session string
	Driver  string
}

// openApp opens the session backend selected by cfg and hydrates the store
// from it.
func openApp(cfg *config.Config) (*App, error) {
	opts := cfg.SessionOptions()
	if opts.Driver == session.DriverMemory {
		opts.Session = "mem-" + uuid.NewString()
	}

	backend, err := session.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	storage := session.New(backend, logging.WithSession(logging.Component("session"), opts.Session))
	store := todo.NewStore(
		todo.NewSessionCheckpoint(storage, cfg.Storage.Key),
		todo.WithLogger(logging.WithSession(logging.Component("store"), opts.Session)),
	)

	if cfg.DemoMode && todo.SeedDemo(store) {
		log.Info().Str("session", opts.Session).Msg("seeded demo todos")
	}

	return &App{
		Config:  cfg,
		Storage: storage,
		Store:   store,
		Session: opts.Session,
		Driver:  opts.Driver,
	}, nil
}

// Close releases the session backend.
func (a *App) Close() error {
	if a == nil || a.Storage == nil {
		return nil
	}
	return a.Storage.Close()
}
