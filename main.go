package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/supertictactoe/internal"
	"github.com/rocketscienceinc/supertictactoe/internal/config"
)

const serviceName = "supertictactoe"

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := initLogger(conf)

	logger.Info("configuration loaded",
		"http_port", conf.HTTPPort,
		"storage_key", conf.Storage.Key,
		"ai_seeded", conf.AI.Seed != 0,
	)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger. Every record carries the service name and storage driver.
func initLogger(conf *config.Config) *slog.Logger {
	return newLogger(os.Stdout, conf)
}

func newLogger(w io.Writer, conf *config.Config) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel(conf.LogLevel)})

	return slog.New(handler).With("service", serviceName, "storage", conf.Storage.Driver)
}

// logLevel maps the config value to a slog level; anything unknown means info.
func logLevel(value string) slog.Level {
	switch value {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
