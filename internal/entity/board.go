package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	DefaultRows = 3
	DefaultCols = 3
)

// Move - coordinates of a single cell.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board - rows x cols grid of marks stored in row-major order.
// A board is never modified in place once handed out: Apply returns a new board.
type Board struct {
	rows      int
	cols      int
	winLength int
	cells     []Mark
	lines     [][]Move
}

// NewBoard - creates an empty board where a line of min(rows, cols) marks wins.
func NewBoard(rows, cols int) *Board {
	return NewBoardWithWinLength(rows, cols, min(rows, cols))
}

func NewBoardWithWinLength(rows, cols, winLength int) *Board {
	return &Board{
		rows:      rows,
		cols:      cols,
		winLength: winLength,
		cells:     make([]Mark, rows*cols),
		lines:     winLines(rows, cols, winLength),
	}
}

func (that *Board) Rows() int {
	return that.rows
}

func (that *Board) Cols() int {
	return that.cols
}

func (that *Board) WinLength() int {
	return that.winLength
}

// At - returns the mark at the cell, MarkEmpty for coordinates outside the board.
func (that *Board) At(row, col int) Mark {
	if !that.inBounds(row, col) {
		return MarkEmpty
	}

	return that.cells[row*that.cols+col]
}

// Clone - returns a deep copy of the board.
func (that *Board) Clone() *Board {
	cells := make([]Mark, len(that.cells))
	copy(cells, that.cells)

	return &Board{
		rows:      that.rows,
		cols:      that.cols,
		winLength: that.winLength,
		cells:     cells,
		lines:     that.lines,
	}
}

// LegalMoves - returns all empty cells in row-major order.
func (that *Board) LegalMoves() []Move {
	moves := make([]Move, 0, len(that.cells))
	for i, cell := range that.cells {
		if cell == MarkEmpty {
			moves = append(moves, Move{Row: i / that.cols, Col: i % that.cols})
		}
	}

	return moves
}

// Apply - returns a new board with the mark placed on the move's cell. The receiver is left untouched.
func (that *Board) Apply(move Move, mark Mark) (*Board, error) {
	if err := that.validateMove(move, mark); err != nil {
		return nil, err
	}

	next := that.Clone()
	next.cells[move.Row*that.cols+move.Col] = mark

	return next, nil
}

// validateMove - checks if the move is valid.
func (that *Board) validateMove(move Move, mark Mark) error {
	if mark != MarkA && mark != MarkB {
		return fmt.Errorf("%w: mark %d can't be placed", apperror.ErrInvalidMove, mark)
	}

	if !that.inBounds(move.Row, move.Col) {
		return fmt.Errorf("%w: cell %s is out of bounds", apperror.ErrInvalidMove, move)
	}

	if that.At(move.Row, move.Col) != MarkEmpty {
		return fmt.Errorf("%w: cell %s is already occupied", apperror.ErrInvalidMove, move)
	}

	return nil
}

func (that *Board) IsFull() bool {
	return that.EmptyCount() == 0
}

func (that *Board) EmptyCount() int {
	count := 0
	for _, cell := range that.cells {
		if cell == MarkEmpty {
			count++
		}
	}

	return count
}

func (that *Board) MovesPlayed() int {
	return len(that.cells) - that.EmptyCount()
}

// Key - compact textual form of the board, e.g. "3x3/3:X...O....".
func (that *Board) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%d/%d:", that.rows, that.cols, that.winLength)
	for _, cell := range that.cells {
		if cell == MarkEmpty {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(cell.String())
	}

	return sb.String()
}

func (that *Board) String() string {
	var sb strings.Builder
	for row := range that.rows {
		if row > 0 {
			sb.WriteString(strings.Repeat("-", that.cols*4-1))
			sb.WriteByte('\n')
		}
		for col := range that.cols {
			if col > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(" " + that.At(row, col).String() + " ")
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func (that *Board) inBounds(row, col int) bool {
	return row >= 0 && row < that.rows && col >= 0 && col < that.cols
}
