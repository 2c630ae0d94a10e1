package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/console"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
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

	decisions, closeDecisions, err := newDecisionRepository(ctx, log, conf.Redis)
	if err != nil {
		return err
	}
	defer closeDecisions()

	gameConf, err := NewGameConfig(conf.Game)
	if err != nil {
		return fmt.Errorf("could not build game config: %w", err)
	}

	seed := conf.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	gameController, err := tictactoe.NewGameController(logger, gameConf, search.NewEngine(), decisions, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("could not create game: %w", err)
	}

	log.Info("Starting game", "rows", gameConf.Rows, "cols", gameConf.Cols, "seed", seed)

	if err = console.New(logger, gameController, os.Stdin, os.Stdout).Run(ctx); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	log.Info("Game closed")

	return nil
}

// newDecisionRepository - redis-backed decision cache when enabled, in-memory otherwise.
func newDecisionRepository(ctx context.Context, log *slog.Logger, conf config.Redis) (repository.DecisionRepository, func(), error) {
	if !conf.Enabled {
		return repository.NewMemoryDecisionRepository(), func() {}, nil
	}

	if conf.Host == "" || conf.Port == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewDecisionRepository(redisStorage, conf.TTL), closeFn, nil
}

// NewGameConfig - maps file configuration onto the controller's settings.
func NewGameConfig(conf config.Game) (tictactoe.GameConfig, error) {
	humanMark, err := entity.ParseMark(conf.HumanMark)
	if err != nil {
		return tictactoe.GameConfig{}, fmt.Errorf("human mark: %w", err)
	}

	computerMark, err := entity.ParseMark(conf.ComputerMark)
	if err != nil {
		return tictactoe.GameConfig{}, fmt.Errorf("computer mark: %w", err)
	}

	return tictactoe.GameConfig{
		Rows:      conf.Rows,
		Cols:      conf.Cols,
		WinLength: conf.WinLength,
		Human: entity.PlayerConfig{
			ID:   conf.HumanID,
			Mark: humanMark,
			Name: conf.HumanName,
		},
		Computer: entity.PlayerConfig{
			ID:   conf.ComputerID,
			Mark: computerMark,
			Name: conf.ComputerName,
		},
		HumanMaximizes: conf.HumanMaximizes,
		Start:          tictactoe.StartPolicy(conf.Start),
		RandomOpening:  !conf.SearchOpening,
	}, nil
}
