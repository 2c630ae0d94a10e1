package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var errBadInput = errors.New("expected row and column, e.g. \"2 3\"")

type gameController interface {
	SubmitMove(player entity.Player, row, col int) error
	RequestComputerMove(ctx context.Context) (entity.Move, error)
	Reset()

	Board() *entity.Board
	Outcome() entity.Outcome
	Winner() (entity.Player, bool)
	CurrentPlayer() entity.Player
	IsComputerTurn() bool
	Human() entity.Player
	Tally() tictactoe.Tally
}

// Console - text front-end: renders the board and turns typed lines into controller calls.
type Console struct {
	logger *slog.Logger
	game   gameController
	in     io.Reader
	out    io.Writer
}

func New(logger *slog.Logger, game gameController, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		game:   game,
		in:     in,
		out:    out,
	}
}

// Run - plays games until the input ends, the player declines a new game or ctx is cancelled.
func (that *Console) Run(ctx context.Context) error {
	lines := that.readLines(ctx)

	for {
		if ctx.Err() != nil {
			return nil
		}

		board := that.game.Board()
		that.printf("\n%s\n", board)

		if that.game.Outcome().IsTerminal() {
			that.printResult(board)

			that.printf("Play again? [y/n] ")
			line, ok := that.next(ctx, lines)
			if !ok || !strings.HasPrefix(strings.ToLower(line), "y") {
				return nil
			}

			that.game.Reset()
			continue
		}

		player := that.game.CurrentPlayer()
		that.printf("%s's turn (%s)\n", player, player.Mark)

		if that.game.IsComputerTurn() {
			move, err := that.game.RequestComputerMove(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("computer move failed: %w", err)
			}

			that.printf("%s plays %d %d\n", player, move.Row+1, move.Col+1)
			continue
		}

		that.printf("Enter row and column (1-%d 1-%d) or q to quit: ", board.Rows(), board.Cols())
		line, ok := that.next(ctx, lines)
		if !ok || strings.EqualFold(line, "q") {
			return nil
		}

		row, col, err := parseCell(line)
		if err != nil {
			that.printf("Invalid input: %v\n", err)
			continue
		}

		if err = that.game.SubmitMove(that.game.Human(), row, col); err != nil {
			that.reject(err)
		}
	}
}

func (that *Console) printResult(board *entity.Board) {
	if winner, ok := that.game.Winner(); ok {
		line, _ := board.WinningLine()
		cells := make([]string, 0, len(line))
		for _, cell := range line {
			cells = append(cells, fmt.Sprintf("%d %d", cell.Row+1, cell.Col+1))
		}
		that.printf("%s wins! (%s)\n", winner, strings.Join(cells, ", "))
	} else {
		that.printf("It's a tie!\n")
	}

	tally := that.game.Tally()
	that.printf("Score: you %d, computer %d, ties %d\n", tally.Human, tally.Computer, tally.Ties)
}

func (that *Console) reject(err error) {
	switch {
	case errors.Is(err, apperror.ErrInvalidMove):
		that.printf("Invalid move\n")
	case errors.Is(err, apperror.ErrNotYourTurn), errors.Is(err, apperror.ErrComputerMovePending):
		that.printf("Wait for your turn\n")
	default:
		that.logger.Error("move rejected", "error", err)
		that.printf("Move rejected: %v\n", err)
	}
}

// readLines - feeds input lines to a channel so that reading never blocks cancellation.
func (that *Console) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			that.logger.Error("failed to read input", "error", err)
		}
	}()

	return lines
}

func (that *Console) next(ctx context.Context, lines <-chan string) (string, bool) {
	select {
	case line, ok := <-lines:
		if !ok {
			that.printf("\n")
		}
		return line, ok
	case <-ctx.Done():
		return "", false
	}
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

// parseCell - converts "row col" (1-based, space or comma separated) into 0-based coordinates.
func parseCell(line string) (int, int, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return 0, 0, errBadInput
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", errBadInput, err)
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", errBadInput, err)
	}

	return row - 1, col - 1, nil
}
