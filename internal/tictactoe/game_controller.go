package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/search"
)

const (
	StartRandom   StartPolicy = "random"
	StartHuman    StartPolicy = "human"
	StartComputer StartPolicy = "computer"
)

var ErrInvalidConfig = errors.New("invalid game config")

// StartPolicy - who moves first in the very first game of a session.
type StartPolicy string

type GameConfig struct {
	Rows      int
	Cols      int
	WinLength int

	Human    entity.PlayerConfig
	Computer entity.PlayerConfig

	// HumanMaximizes gives the max role to the human; by default the computer maximizes.
	HumanMaximizes bool
	Start          StartPolicy
	// RandomOpening makes the computer play a random cell on an empty board instead of searching.
	RandomOpening bool
}

// Tally - results of the games finished in this session.
type Tally struct {
	Human    int `json:"human"`
	Computer int `json:"computer"`
	Ties     int `json:"ties"`
}

type searchEngine interface {
	BestMove(
		ctx context.Context,
		board *entity.Board,
		depth int,
		toMove, maxPlayer, minPlayer entity.Player,
	) (search.Result, error)
}

type decisionRepo interface {
	Save(ctx context.Context, key string, decision entity.Decision) error
	GetByKey(ctx context.Context, key string) (entity.Decision, error)
}

// GameController - drives a game between a human and the search engine.
// The live board is only touched under the lock; searches work on a copy.
type GameController struct {
	logger    *slog.Logger
	engine    searchEngine
	decisions decisionRepo
	rng       *rand.Rand

	rows          int
	cols          int
	winLength     int
	randomOpening bool

	human     entity.Player
	computer  entity.Player
	maxPlayer entity.Player
	minPlayer entity.Player

	mu       sync.Mutex
	board    *entity.Board
	outcome  entity.Outcome
	current  entity.Player
	starting entity.Player
	pending  bool
	round    int
	tally    Tally
}

func NewGameController(
	logger *slog.Logger,
	conf GameConfig,
	engine searchEngine,
	decisions decisionRepo,
	rng *rand.Rand,
) (*GameController, error) {
	if err := validateConfig(conf); err != nil {
		return nil, err
	}

	human := entity.NewPlayer(conf.Human)
	computer := entity.NewPlayer(conf.Computer)

	that := &GameController{
		logger:    logger.With("component", "game_controller"),
		engine:    engine,
		decisions: decisions,
		rng:       rng,

		rows:          conf.Rows,
		cols:          conf.Cols,
		winLength:     conf.WinLength,
		randomOpening: conf.RandomOpening,

		human:     human,
		computer:  computer,
		maxPlayer: computer,
		minPlayer: human,
	}

	if conf.HumanMaximizes {
		that.maxPlayer, that.minPlayer = human, computer
	}

	switch conf.Start {
	case StartHuman:
		that.starting = human
	case StartComputer:
		that.starting = computer
	default:
		that.starting = computer
		if rng.Intn(2) == 0 {
			that.starting = human
		}
	}

	that.current = that.starting
	that.board = that.newBoard()

	return that, nil
}

func validateConfig(conf GameConfig) error {
	switch {
	case conf.Rows <= 0 || conf.Cols <= 0:
		return fmt.Errorf("%w: board must have at least one row and column", ErrInvalidConfig)
	case conf.WinLength < 0 || conf.WinLength > max(conf.Rows, conf.Cols):
		return fmt.Errorf("%w: win length %d doesn't fit the board", ErrInvalidConfig, conf.WinLength)
	case conf.Human.Mark == entity.MarkEmpty || conf.Computer.Mark == entity.MarkEmpty:
		return fmt.Errorf("%w: both players need a mark", ErrInvalidConfig)
	case conf.Human.Mark == conf.Computer.Mark:
		return fmt.Errorf("%w: players share the mark %s", ErrInvalidConfig, conf.Human.Mark)
	case conf.Human.ID == conf.Computer.ID:
		return fmt.Errorf("%w: players share the id %d", ErrInvalidConfig, conf.Human.ID)
	}

	switch conf.Start {
	case "", StartRandom, StartHuman, StartComputer:
		return nil
	default:
		return fmt.Errorf("%w: unknown start policy %q", ErrInvalidConfig, conf.Start)
	}
}

// SubmitMove - places the player's mark if it is their turn.
func (that *GameController) SubmitMove(player entity.Player, row, col int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.outcome.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if that.pending {
		return apperror.ErrComputerMovePending
	}

	if player != that.current {
		return fmt.Errorf("%w: %s", apperror.ErrNotYourTurn, player)
	}

	return that.applyMove(player, entity.Move{Row: row, Col: col})
}

// RequestComputerMove - searches and plays the computer's move. Only one request can be in flight;
// human moves are rejected until it completes.
func (that *GameController) RequestComputerMove(ctx context.Context) (entity.Move, error) {
	log := that.logger.With("method", "RequestComputerMove")

	that.mu.Lock()
	switch {
	case that.outcome.IsTerminal():
		that.mu.Unlock()
		return entity.Move{}, apperror.ErrGameFinished
	case that.pending:
		that.mu.Unlock()
		return entity.Move{}, apperror.ErrComputerMovePending
	case that.current != that.computer:
		that.mu.Unlock()
		return entity.Move{}, apperror.ErrNotComputerTurn
	}

	that.pending = true
	round := that.round
	snapshot := that.board.Clone()

	var (
		move    entity.Move
		opening bool
	)
	if that.randomOpening && snapshot.MovesPlayed() == 0 {
		moves := snapshot.LegalMoves()
		move = moves[that.rng.Intn(len(moves))]
		opening = true
	}
	that.mu.Unlock()

	var err error
	if !opening {
		move, err = that.decide(ctx, snapshot)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if round != that.round {
		log.Info("discarding computer move for a previous game", "move", move.String())
		return entity.Move{}, apperror.ErrGameReset
	}

	that.pending = false

	if err != nil {
		return entity.Move{}, err
	}

	if err = that.applyMove(that.computer, move); err != nil {
		return entity.Move{}, fmt.Errorf("computer failed to make turn: %w", err)
	}

	log.Debug("computer moved", "move", move.String(), "opening", opening)

	return move, nil
}

// decide - finds the computer's move on a private copy of the board, consulting the decision cache first.
func (that *GameController) decide(ctx context.Context, board *entity.Board) (entity.Move, error) {
	log := that.logger.With("method", "decide")

	depth := board.EmptyCount()
	key := entity.DecisionKey(board, depth, that.computer, that.maxPlayer, that.minPlayer)

	decision, err := that.decisions.GetByKey(ctx, key)
	switch {
	case err == nil:
		log.Debug("decision cache hit", "key", key)
		return decision.Move, nil
	case !errors.Is(err, repository.ErrDecisionNotFound):
		log.Warn("failed to read decision cache", "error", err)
	}

	result, err := that.engine.BestMove(ctx, board, depth, that.computer, that.maxPlayer, that.minPlayer)
	if err != nil {
		return entity.Move{}, fmt.Errorf("failed to search best move: %w", err)
	}

	if !result.Found {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	log.Debug("search finished", "move", result.Move.String(), "score", result.Score, "nodes", result.Nodes)

	decision = entity.Decision{Move: result.Move, Score: result.Score}
	if err = that.decisions.Save(ctx, key, decision); err != nil {
		log.Warn("failed to save decision", "error", err)
	}

	return result.Move, nil
}

// applyMove - places the mark and advances the game. Caller holds the lock.
func (that *GameController) applyMove(player entity.Player, move entity.Move) error {
	next, err := that.board.Apply(move, player.Mark)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.board = next
	that.outcome = next.Outcome()

	switch that.outcome {
	case entity.InProgress:
		that.current = that.opponent(player)
	case entity.Tie:
		that.tally.Ties++
		that.logger.Info("game finished", "outcome", that.outcome.String())
	default:
		if player == that.human {
			that.tally.Human++
		} else {
			that.tally.Computer++
		}
		that.logger.Info("game finished", "outcome", that.outcome.String(), "winner", player.String())
	}

	return nil
}

// Reset - clears the board for a new game; the player who did not start the previous game starts this one.
func (that *GameController) Reset() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.board = that.newBoard()
	that.outcome = entity.InProgress
	that.starting = that.opponent(that.starting)
	that.current = that.starting
	that.pending = false
	that.round++

	that.logger.Info("game reset", "starting", that.starting.String(), "round", that.round)
}

// Restart - same as Reset.
func (that *GameController) Restart() {
	that.Reset()
}

// Board - copy of the live board.
func (that *GameController) Board() *entity.Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board.Clone()
}

func (that *GameController) Outcome() entity.Outcome {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.outcome
}

// Winner - the player who won the current game, if any.
func (that *GameController) Winner() (entity.Player, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch that.outcome {
	case entity.OutcomeFor(that.human.Mark):
		return that.human, true
	case entity.OutcomeFor(that.computer.Mark):
		return that.computer, true
	default:
		return entity.Player{}, false
	}
}

func (that *GameController) CurrentPlayer() entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.current
}

func (that *GameController) StartingPlayer() entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.starting
}

// IsComputerTurn - true while the game is running and the computer is to move.
func (that *GameController) IsComputerTurn() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return !that.outcome.IsTerminal() && that.current == that.computer
}

func (that *GameController) Tally() Tally {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.tally
}

func (that *GameController) Human() entity.Player {
	return that.human
}

func (that *GameController) Computer() entity.Player {
	return that.computer
}

// Roles - the players holding the max and min search roles.
func (that *GameController) Roles() (entity.Player, entity.Player) {
	return that.maxPlayer, that.minPlayer
}

func (that *GameController) opponent(player entity.Player) entity.Player {
	if player == that.human {
		return that.computer
	}

	return that.human
}

func (that *GameController) newBoard() *entity.Board {
	if that.winLength > 0 {
		return entity.NewBoardWithWinLength(that.rows, that.cols, that.winLength)
	}

	return entity.NewBoard(that.rows, that.cols)
}
