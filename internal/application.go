package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/supertictactoe/internal/config"
	"github.com/rocketscienceinc/supertictactoe/internal/minigame"
	"github.com/rocketscienceinc/supertictactoe/internal/repository"
	"github.com/rocketscienceinc/supertictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/supertictactoe/internal/service"
	"github.com/rocketscienceinc/supertictactoe/internal/strategy"
	"github.com/rocketscienceinc/supertictactoe/internal/usecase"
	"github.com/rocketscienceinc/supertictactoe/transport/rest"
	"github.com/rocketscienceinc/supertictactoe/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	profileRepo, closeStorage, err := openStorage(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	profileService := service.NewProfileService(logger, profileRepo)
	settings, stats := profileService.Load(ctx)
	log.Info("profile loaded", "difficulty", settings.AIDifficulty, "games_played", stats.GamesPlayed)

	orchestrator := usecase.NewOrchestrator(logger, profileService, strategy.NewRand(conf.AI.Seed))
	launcher := minigame.NewLauncher(logger, minigame.NewDefaultRegistry(), conf.AI.Seed)
	gameManager := usecase.NewGameManager(logger, orchestrator, launcher, profileService)

	wsServer := websocket.New(logger, gameManager)
	defer wsServer.Close()

	router := rest.NewRouter(logger, gameManager, profileService, wsServer)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func openStorage(ctx context.Context, conf *config.Config) (repository.ProfileRepository, func() error, error) {
	if conf.Storage.Driver == config.StorageMemory {
		return repository.NewMemoryProfileRepository(), func() error { return nil }, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewProfileRepository(redisStorage.Connection, conf.Storage.Key), redisStorage.Close, nil
}
