package entity

import "fmt"

// Decision - a searched move for a position, stored by the decision cache.
type Decision struct {
	Move  Move `json:"move"`
	Score int  `json:"score"`
}

// DecisionKey - identifies a search: position, search depth, mark to move and the max/min marks.
func DecisionKey(board *Board, depth int, toMove, maxPlayer, minPlayer Player) string {
	return fmt.Sprintf("%s:%d:%s:%s%s", board.Key(), depth, toMove.Mark, maxPlayer.Mark, minPlayer.Mark)
}
