// Package app wires configuration, logging and AWS clients into a Handler.
package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/pricofy/comprehend-s3/internal/analysis"
	"github.com/pricofy/comprehend-s3/internal/awsclient"
	"github.com/pricofy/comprehend-s3/internal/comprehend"
	"github.com/pricofy/comprehend-s3/internal/config"
	"github.com/pricofy/comprehend-s3/internal/handler"
	"github.com/pricofy/comprehend-s3/internal/logging"
	"github.com/pricofy/comprehend-s3/internal/output"
	"github.com/pricofy/comprehend-s3/internal/storage"
)

// App is everything a function needs for its lifetime.
type App struct {
	Config  config.Config
	Log     *slog.Logger
	Clients *awsclient.Clients
	Handler *handler.Handler
}

// NewLogger configures the logger from cfg and reports the effective settings.
func NewLogger(cfg config.Config, w io.Writer) *slog.Logger {
	log := logging.New(w, cfg.LogLevel.SlogLevel(), cfg.LogColor)
	if cfg.LevelFallback != "" {
		log.Warn("unrecognized logging level, using default",
			slog.String("value", cfg.LevelFallback),
			slog.String("default", string(config.DefaultLevel)))
	}
	log.Info("setting logging level to "+string(cfg.LogLevel), cfg.LogAttrs()...)
	return log
}

// New builds an App from the environment. Clients are built once here and
// reused across invocations of the same execution environment.
// Printed object text goes to stdout and logs to logOut.
func New(ctx context.Context, getenv func(string) string, stdout, logOut io.Writer) (*App, error) {
	cfg := config.Load(getenv)
	log := NewLogger(cfg, logOut)

	awsCfg, err := awsclient.Load(ctx)
	if err != nil {
		return nil, err
	}
	return FromClients(cfg, log, awsCfg, stdout), nil
}

// FromClients builds an App around an already loaded AWS configuration.
func FromClients(cfg config.Config, log *slog.Logger, awsCfg aws.Config, stdout io.Writer) *App {
	clients := awsclient.New(awsCfg, cfg)
	store := storage.New(clients.S3)

	h := handler.New(handler.Deps{
		Objects:  store,
		Analyzer: analysis.NewPipeline(comprehend.New(clients.Comprehend), log),
		Saver:    output.NewWriter(store, output.Settings{Bucket: cfg.OutputBucket, Folder: cfg.OutputFolder}, log),
		Stdout:   stdout,
		Log:      log,
	})

	return &App{Config: cfg, Log: log, Clients: clients, Handler: h}
}
