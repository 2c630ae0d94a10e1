package search

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrUnknownPlayer = errors.New("player to move holds neither search role")

// Result - outcome of a search. Found is false when the board has no move to offer.
type Result struct {
	Move  entity.Move
	Found bool
	Score int
	Nodes int
}

// Engine - minimax search with alpha-beta pruning. It keeps no state between calls and is safe for concurrent use.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

type searcher struct {
	ctx       context.Context
	maxPlayer entity.Player
	minPlayer entity.Player
	nodes     int
}

// BestMove - searches depth plies ahead and returns the move that is best for toMove.
// maxPlayer and minPlayer keep their roles for the whole search; the board is never modified.
func (that *Engine) BestMove(
	ctx context.Context,
	board *entity.Board,
	depth int,
	toMove, maxPlayer, minPlayer entity.Player,
) (Result, error) {
	if toMove != maxPlayer && toMove != minPlayer {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, toMove)
	}

	s := &searcher{
		ctx:       ctx,
		maxPlayer: maxPlayer,
		minPlayer: minPlayer,
	}

	result, err := s.root(board, depth, toMove == maxPlayer)
	if err != nil {
		return Result{}, fmt.Errorf("search aborted: %w", err)
	}

	result.Nodes = s.nodes

	return result, nil
}

// root - expands the first ply and remembers the first move reaching the best score.
func (that *searcher) root(board *entity.Board, depth int, maximizing bool) (Result, error) {
	if err := that.ctx.Err(); err != nil {
		return Result{}, err
	}

	that.nodes++

	if board.Outcome().IsTerminal() {
		return Result{Score: entity.Score(board, that.maxPlayer, that.minPlayer)}, nil
	}

	// a move request always looks at least one ply ahead
	depth = max(depth, 1)

	mover := that.mover(maximizing)
	result := Result{Score: initScore(maximizing)}
	alpha, beta := math.MinInt, math.MaxInt

	for _, move := range board.LegalMoves() {
		child, err := board.Apply(move, mover.Mark)
		if err != nil {
			return Result{}, fmt.Errorf("failed to apply move %s: %w", move, err)
		}

		score, err := that.minimax(child, depth-1, !maximizing, alpha, beta)
		if err != nil {
			return Result{}, err
		}

		if !result.Found || (maximizing && score > result.Score) || (!maximizing && score < result.Score) {
			result.Move = move
			result.Score = score
			result.Found = true
		}

		if maximizing {
			alpha = max(alpha, result.Score)
		} else {
			beta = min(beta, result.Score)
		}

		if beta <= alpha {
			break
		}
	}

	return result, nil
}

func (that *searcher) minimax(board *entity.Board, depth int, maximizing bool, alpha, beta int) (int, error) {
	if err := that.ctx.Err(); err != nil {
		return 0, err
	}

	that.nodes++

	if depth <= 0 || board.Outcome().IsTerminal() {
		return entity.Score(board, that.maxPlayer, that.minPlayer), nil
	}

	mover := that.mover(maximizing)
	best := initScore(maximizing)

	for _, move := range board.LegalMoves() {
		child, err := board.Apply(move, mover.Mark)
		if err != nil {
			return 0, fmt.Errorf("failed to apply move %s: %w", move, err)
		}

		score, err := that.minimax(child, depth-1, !maximizing, alpha, beta)
		if err != nil {
			return 0, err
		}

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}

		if beta <= alpha {
			break
		}
	}

	return best, nil
}

func (that *searcher) mover(maximizing bool) entity.Player {
	if maximizing {
		return that.maxPlayer
	}

	return that.minPlayer
}

func initScore(maximizing bool) int {
	if maximizing {
		return math.MinInt
	}

	return math.MaxInt
}
