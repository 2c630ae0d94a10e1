package entity

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MarkEmpty Mark = iota
	MarkA          // "O"
	MarkB          // "X"
)

var ErrUnknownMark = errors.New("unknown mark")

// Mark - content of a single board cell.
type Mark uint8

func (that Mark) String() string {
	switch that {
	case MarkA:
		return "O"
	case MarkB:
		return "X"
	default:
		return " "
	}
}

// Opponent - returns the other non-empty mark.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkA:
		return MarkB
	case MarkB:
		return MarkA
	default:
		return MarkEmpty
	}
}

// ParseMark - converts a symbol from configuration into a player mark.
func ParseMark(symbol string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(symbol)) {
	case "O":
		return MarkA, nil
	case "X":
		return MarkB, nil
	default:
		return MarkEmpty, fmt.Errorf("%w: %q", ErrUnknownMark, symbol)
	}
}
