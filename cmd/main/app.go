package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/matt-steen/date-ideas/pkg/config"
	"github.com/matt-steen/date-ideas/pkg/db"
	"github.com/matt-steen/date-ideas/pkg/notify"
	"github.com/matt-steen/date-ideas/pkg/postgres"
	"github.com/matt-steen/date-ideas/pkg/state"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const filePerms = 0o666

// app holds everything a command needs. close releases it.
type app struct {
	cfg   *config.Config
	store *state.Store
	close func()
}

type options struct {
	envFile  string
	logLevel string
}

func setup(ctx context.Context, opts options, sink notify.Sink) (*app, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, err
	}

	if opts.logLevel != "" {
		level, err := zerolog.ParseLevel(opts.logLevel)
		if err != nil {
			return nil, fmt.Errorf("error parsing log level: %w", err)
		}

		cfg.LogLevel = level
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		return nil, fmt.Errorf("error opening log file %s: %w", cfg.LogFile, err)
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Str("backend", string(cfg.Backend)).Msg("starting application...")

	remote, closer, err := openRemote(ctx, cfg)
	if err != nil {
		logFile.Close()

		return nil, err
	}

	return &app{
		cfg:   cfg,
		store: state.New(remote, sink),
		close: func() {
			if closer != nil {
				if err := closer.Close(); err != nil {
					log.Warn().Err(err).Msg("error closing remote store")
				}
			}

			logFile.Close()
		},
	}, nil
}

// openRemote connects to the configured backend. Without valid credentials it returns
// a nil Remote; the store then refuses every remote call.
func openRemote(ctx context.Context, cfg *config.Config) (state.Remote, io.Closer, error) {
	if !cfg.HasValidCredentials() {
		log.Warn().Str("backend", string(cfg.Backend)).Msg("no valid database credentials configured")

		return nil, nil, nil
	}

	switch cfg.Backend {
	case config.BackendPostgres:
		client, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		return client, client, nil
	default:
		database, err := db.NewDatabase(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		return database, database, nil
	}
}
