package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"log/slog"

	"github.com/m3rciful/audiobot/bootstrap"
	"github.com/m3rciful/audiobot/bot"
	"github.com/m3rciful/audiobot/buildinfo"
	botconfig "github.com/m3rciful/audiobot/config"
	"github.com/m3rciful/audiobot/database"
	"github.com/m3rciful/audiobot/logger"
	"github.com/m3rciful/audiobot/telegram"
)

// appConfig composes the bot configuration with database settings, which
// live in their own package.
type appConfig struct {
	botconfig.Config `yaml:",inline"`
	Database         database.Config `yaml:"database"`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("audiobot: %v", err)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	log.Printf("loading config: %s", cfgPath)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	boot, err := bootstrap.Run(bootstrap.Options{
		Config:   &cfg.Config,
		Database: cfg.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = boot.DB.Close()
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	app := bot.New(&cfg.Config, boot.Store)

	startedAt := time.Now()
	runOpts := telegram.RunOptions{
		Config:      &cfg.Config,
		Registry:    app.Registry(),
		Middlewares: telegram.DefaultMiddlewares(&cfg.Config, nil),
		Routes:      app.Routes(),
		OnStart: func(ctx context.Context, rt telegram.Runtime) error {
			logger.L.With("component", "app").Info("app ready",
				slog.String("event", "ready"),
				slog.String("version", buildinfo.Version),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, rt telegram.Runtime) error {
			logger.L.With("component", "app").Info("shutting down...",
				slog.String("event", "shutdown"),
			)
			return nil
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return telegram.RunTelegram(ctx, runOpts)
}

func loadConfig(path string) (*appConfig, error) {
	var cfg appConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}
	if err := botconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	return &cfg, nil
}
