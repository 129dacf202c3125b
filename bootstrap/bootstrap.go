// Package bootstrap initializes infrastructure in startup order: logging,
// database connection, schema migrations, and the record store on top.
package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/audiobot/audio"
	botconfig "github.com/m3rciful/audiobot/config"
	"github.com/m3rciful/audiobot/database"
	"github.com/m3rciful/audiobot/logger"
)

// Options control the bootstrap pipeline. The function fields exist for
// tests; zero values select the real implementations.
type Options struct {
	Config   *botconfig.Config
	Database database.Config

	LoggerInit func(*botconfig.Config) error
	Connect    func(database.Config) (*sqlx.DB, error)
	Migrate    func(database.Config) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	DB    *sqlx.DB
	Store audio.Store
}

// Run initializes the logger, connects to the database, applies migrations,
// and wires the audio store.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	connect := opts.Connect
	if connect == nil {
		connect = database.Connect
	}
	db, err := connect(opts.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	migrate := opts.Migrate
	if migrate == nil {
		migrate = database.RunMigrations
	}
	if err := migrate(opts.Database); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	return &Result{
		DB:    db,
		Store: audio.NewPostgresStore(db),
	}, nil
}
