package application

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

func TestNewGameConfig(t *testing.T) {
	t.Run("Maps the file config", func(t *testing.T) {
		// Given: a game section as loaded from config.yml
		conf := config.Game{
			Rows:         3,
			Cols:         3,
			Start:        "computer",
			HumanID:      1,
			HumanMark:    "o",
			HumanName:    "Alice",
			ComputerID:   2,
			ComputerMark: "X",
		}

		// When: building the controller settings
		gameConf, err := NewGameConfig(conf)
		require.NoError(t, err)

		// Then: marks are parsed and the random opening is on
		assert.Equal(t, tictactoe.GameConfig{
			Rows:          3,
			Cols:          3,
			Human:         entity.PlayerConfig{ID: 1, Mark: entity.MarkA, Name: "Alice"},
			Computer:      entity.PlayerConfig{ID: 2, Mark: entity.MarkB},
			Start:         tictactoe.StartComputer,
			RandomOpening: true,
		}, gameConf)
	})

	t.Run("Error on unknown mark", func(t *testing.T) {
		_, err := NewGameConfig(config.Game{HumanMark: "Z", ComputerMark: "X"})

		require.ErrorIs(t, err, entity.ErrUnknownMark)
	})
}

func TestNewDecisionRepository(t *testing.T) {
	t.Run("Memory cache when redis is disabled", func(t *testing.T) {
		decisions, closeFn, err := newDecisionRepository(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), config.Redis{})
		require.NoError(t, err)
		defer closeFn()

		_, err = decisions.GetByKey(context.Background(), "missing")
		require.ErrorIs(t, err, repository.ErrDecisionNotFound)
	})

	t.Run("Error on empty redis address", func(t *testing.T) {
		_, _, err := newDecisionRepository(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)), config.Redis{Enabled: true})

		require.ErrorIs(t, err, ErrAddrNotFound)
	})
}
