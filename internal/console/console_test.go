package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

func newGame(t *testing.T, start tictactoe.StartPolicy) *tictactoe.GameController {
	t.Helper()

	game, err := tictactoe.NewGameController(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		tictactoe.GameConfig{
			Rows:     3,
			Cols:     3,
			Human:    entity.PlayerConfig{ID: 1, Mark: entity.MarkA, Name: "You"},
			Computer: entity.PlayerConfig{ID: 2, Mark: entity.MarkB, Name: "Computer"},
			Start:    start,
		},
		search.NewEngine(),
		repository.NewMemoryDecisionRepository(),
		rand.New(rand.NewSource(1)),
	)
	require.NoError(t, err)

	return game
}

func run(t *testing.T, game *tictactoe.GameController, input string) string {
	t.Helper()

	var out bytes.Buffer
	console := New(slog.New(slog.NewTextHandler(io.Discard, nil)), game, strings.NewReader(input), &out)

	require.NoError(t, console.Run(context.Background()))

	return out.String()
}

func TestConsole_Run(t *testing.T) {
	t.Run("Reports bad input and quits", func(t *testing.T) {
		// Given: a game where the human starts
		game := newGame(t, tictactoe.StartHuman)

		// When: the player types garbage, an off-board cell and then quits
		output := run(t, game, "hello\n0 0\nq\n")

		// Then: both lines are rejected and the board is untouched
		assert.Contains(t, output, "Invalid input")
		assert.Contains(t, output, "Invalid move")
		assert.Contains(t, output, "You's turn (O)")
		assert.Equal(t, 0, game.Board().MovesPlayed())
	})

	t.Run("Plays a game to the end", func(t *testing.T) {
		// Given: a player who tries every cell in order
		game := newGame(t, tictactoe.StartHuman)
		input := "1 1\n1 2\n1 3\n2 1\n2 2\n2 3\n3 1\n3 2\n3 3\nn\n"

		// When: the console runs
		output := run(t, game, input)

		// Then: the game finished and the computer did not lose
		require.True(t, game.Outcome().IsTerminal())
		assert.Contains(t, output, "Computer plays")
		assert.Contains(t, output, "Play again?")
		assert.Contains(t, output, "Score: you 0")

		tally := game.Tally()
		assert.Equal(t, 0, tally.Human)
		assert.Equal(t, 1, tally.Computer+tally.Ties)
	})

	t.Run("Computer starts and input ends", func(t *testing.T) {
		game := newGame(t, tictactoe.StartComputer)

		output := run(t, game, "")

		assert.Contains(t, output, "Computer's turn (X)")
		assert.Equal(t, 1, game.Board().MovesPlayed())
	})

	t.Run("Stops when the context is cancelled", func(t *testing.T) {
		game := newGame(t, tictactoe.StartHuman)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		reader, writer := io.Pipe()
		defer writer.Close()

		var out bytes.Buffer
		err := New(slog.New(slog.NewTextHandler(io.Discard, nil)), game, reader, &out).Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, game.Board().MovesPlayed())
	})
}

func TestParseCell(t *testing.T) {
	row, col, err := parseCell("2 3")
	require.NoError(t, err)
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)

	row, col, err = parseCell("1,1")
	require.NoError(t, err)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	_, _, err = parseCell("1")
	require.ErrorIs(t, err, errBadInput)

	_, _, err = parseCell("a b")
	require.ErrorIs(t, err, errBadInput)
}
