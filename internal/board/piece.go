package board

import (
	"fmt"

	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// Color identifies a side.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// Forward returns the rank direction pawns of this color advance in.
func (c Color) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// String returns "white" or "black".
func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// MarshalJSON encodes the color as its name.
func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes a color from its name.
func (c *Color) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"white"`:
		*c = White
	case `"black"`:
		*c = Black
	default:
		return fmt.Errorf("invalid color %s", data)
	}
	return nil
}

// ParseColor parses "white" or "black".
func ParseColor(s string) (Color, error) {
	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return White, fmt.Errorf("invalid color %q", s)
}

// PieceInstance is one piece in one game. A nil Position means the
// piece is off the board: not yet placed, or captured. A captured
// piece never regains a position.
type PieceInstance struct {
	ID       int       `json:"id"`
	TypeID   string    `json:"typeId"`
	Owner    Color     `json:"owner"`
	Position *Position `json:"position"`
	HasMoved bool      `json:"hasMoved"`
	IsFrozen bool      `json:"isFrozen"`
}

// Type returns the catalog entry for the piece. It panics on an
// unknown type id; instance creation validates ids, so an unknown id
// here is an invariant violation.
func (p *PieceInstance) Type() *catalog.PieceType {
	return catalog.MustGet(p.TypeID)
}

// OnBoard reports whether the piece currently occupies a square.
func (p *PieceInstance) OnBoard() bool {
	return p.Position != nil
}

// String renders the piece for logs, e.g. "white knight e4" or
// "black herald (off)".
func (p *PieceInstance) String() string {
	if p.Position == nil {
		return fmt.Sprintf("%s %s (off)", p.Owner, p.TypeID)
	}
	return fmt.Sprintf("%s %s %s", p.Owner, p.TypeID, p.Position)
}
