// Package board implements the rectangular game board: positions,
// piece instances and the square index derived from them. Boards are
// plain data and cheap to clone; rules live in the engine package.
package board

import (
	"fmt"
	"strconv"
)

// Position identifies a square by zero-based file and rank. File 0 is
// the a-file; rank 0 is white's back rank. Wire and log output use
// algebraic form ("a1".."j10").
type Position struct {
	File int
	Rank int
}

// ParsePosition parses an algebraic square such as "e4" or "j10".
func ParsePosition(s string) (Position, error) {
	if len(s) < 2 || len(s) > 3 {
		return Position{}, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0] - 'a')
	if file < 0 || file > 9 {
		return Position{}, fmt.Errorf("invalid file in square %q", s)
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil || rank < 1 || rank > 10 {
		return Position{}, fmt.Errorf("invalid rank in square %q", s)
	}
	return Position{File: file, Rank: rank - 1}, nil
}

// String returns the algebraic form of the position.
func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.File, p.Rank+1)
}

// Add returns the position shifted by the given file and rank deltas.
// The result may be off-board; callers check with Board.OnBoard.
func (p Position) Add(df, dr int) Position {
	return Position{File: p.File + df, Rank: p.Rank + dr}
}

// Chebyshev returns the Chebyshev distance to q.
func (p Position) Chebyshev(q Position) int {
	df := p.File - q.File
	if df < 0 {
		df = -df
	}
	dr := p.Rank - q.Rank
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}

// Adjacent reports whether q is one king step away from p.
func (p Position) Adjacent(q Position) bool {
	return p.Chebyshev(q) == 1
}

// MarshalJSON encodes the position in algebraic form.
func (p Position) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON decodes a position from algebraic form.
func (p *Position) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid position %s", data)
	}
	parsed, err := ParsePosition(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
