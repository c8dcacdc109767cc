package engine

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// RecomputeFreeze refreshes every piece's frozen flag from the current
// positions. It runs after each board mutation so move generation
// always sees current auras. A piece is frozen when an adjacent piece
// holds it: a Herald holds either color, a freezer holds opponents,
// and a Chameleon holds opposing freezers. The pass is a plain scan
// over piece pairs; auras do not cascade, so a frozen freezer still
// freezes.
func RecomputeFreeze(b *board.Board) {
	for _, pc := range b.Pieces {
		if !pc.OnBoard() {
			pc.IsFrozen = false
			continue
		}
		pc.IsFrozen = frozenAt(b, pc)
	}
}

func frozenAt(b *board.Board, pc *board.PieceInstance) bool {
	t := pc.Type()
	if t.Unfreezable {
		return false
	}
	for _, o := range b.Pieces {
		if o == pc || !o.OnBoard() || o.Position.Chebyshev(*pc.Position) != 1 {
			continue
		}
		ot := o.Type()
		switch {
		case ot.FreezesAnyColor:
			return true
		case ot.CanFreeze && o.Owner != pc.Owner:
			return true
		case ot.CaptureType == catalog.CaptureChameleon && o.Owner != pc.Owner && t.CanFreeze:
			return true
		}
	}
	return false
}
