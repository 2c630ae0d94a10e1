package entity

import "slices"

const (
	InProgress Outcome = iota
	MarkAWins
	MarkBWins
	Tie
)

// Outcome - state of a game derived from its board.
type Outcome uint8

func (that Outcome) String() string {
	switch that {
	case MarkAWins:
		return "O wins"
	case MarkBWins:
		return "X wins"
	case Tie:
		return "tie"
	default:
		return "in progress"
	}
}

func (that Outcome) IsTerminal() bool {
	return that != InProgress
}

// OutcomeFor - outcome of a game won by the mark.
func OutcomeFor(mark Mark) Outcome {
	switch mark {
	case MarkA:
		return MarkAWins
	case MarkB:
		return MarkBWins
	default:
		return InProgress
	}
}

// winLines - every line of winLength cells: rows, then columns, then diagonals, then anti-diagonals.
func winLines(rows, cols, winLength int) [][]Move {
	if winLength <= 0 {
		return nil
	}

	var lines [][]Move

	line := func(row, col, dRow, dCol int) []Move {
		cells := make([]Move, winLength)
		for i := range winLength {
			cells[i] = Move{Row: row + i*dRow, Col: col + i*dCol}
		}
		return cells
	}

	for row := range rows {
		for col := 0; col+winLength <= cols; col++ {
			lines = append(lines, line(row, col, 0, 1))
		}
	}

	for col := range cols {
		for row := 0; row+winLength <= rows; row++ {
			lines = append(lines, line(row, col, 1, 0))
		}
	}

	for row := 0; row+winLength <= rows; row++ {
		for col := 0; col+winLength <= cols; col++ {
			lines = append(lines, line(row, col, 1, 1))
		}
	}

	for row := 0; row+winLength <= rows; row++ {
		for col := winLength - 1; col < cols; col++ {
			lines = append(lines, line(row, col, 1, -1))
		}
	}

	return lines
}

// WinningLine - returns the cells of the first complete line found, in scan order.
func (that *Board) WinningLine() ([]Move, bool) {
	line, ok := that.winningLine()
	if !ok {
		return nil, false
	}

	return slices.Clone(line), true
}

func (that *Board) winningLine() ([]Move, bool) {
	for _, line := range that.lines {
		first := that.At(line[0].Row, line[0].Col)
		if first == MarkEmpty {
			continue
		}

		complete := true
		for _, cell := range line[1:] {
			if that.At(cell.Row, cell.Col) != first {
				complete = false
				break
			}
		}

		if complete {
			return line, true
		}
	}

	return nil, false
}

// Winner - returns the mark that owns a complete line.
func (that *Board) Winner() (Mark, bool) {
	line, ok := that.winningLine()
	if !ok {
		return MarkEmpty, false
	}

	return that.At(line[0].Row, line[0].Col), true
}

func (that *Board) Outcome() Outcome {
	if winner, ok := that.Winner(); ok {
		return OutcomeFor(winner)
	}

	if that.IsFull() {
		return Tie
	}

	return InProgress
}

// Score - evaluates the board from maxPlayer's point of view: +1 if maxPlayer has won, -1 if minPlayer has won, 0 otherwise.
func Score(board *Board, maxPlayer, minPlayer Player) int {
	winner, ok := board.Winner()
	switch {
	case !ok:
		return 0
	case winner == maxPlayer.Mark:
		return 1
	case winner == minPlayer.Mark:
		return -1
	default:
		return 0
	}
}
