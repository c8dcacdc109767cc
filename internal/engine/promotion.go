package engine

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// PromotionRequired reports whether pc, standing on to, has to promote
// before the move completes.
func PromotionRequired(b *board.Board, pc *board.PieceInstance, to board.Position) bool {
	if !pc.Type().Pawnlike() {
		return false
	}
	return to.Rank == b.Size().BackRank(pc.Owner.Other())
}

// PromotionOptions lists the type ids pc may promote to. A type with a
// fixed promotion target overrides the computed set. Otherwise the
// options are the types currently on the board, either color, that are
// not pawn tier, not the mandatory royal, not a king replacer and can
// capture; with nothing qualifying the classic four stand in.
func PromotionOptions(b *board.Board, pc *board.PieceInstance) []string {
	if fixed := pc.Type().PromotesTo; fixed != "" {
		return []string{fixed}
	}
	var out []string
	seen := make(map[string]bool)
	for _, o := range b.Pieces {
		if !o.OnBoard() || seen[o.TypeID] {
			continue
		}
		t := o.Type()
		if t.Tier == catalog.TierPawn || t.IsMandatory || t.ReplacesKing || t.CaptureType == catalog.CaptureNone {
			continue
		}
		seen[o.TypeID] = true
		out = append(out, o.TypeID)
	}
	if len(out) == 0 {
		return []string{catalog.Queen, catalog.Rook, catalog.Bishop, catalog.Knight}
	}
	return out
}

func validPromotion(options []string, choice string) bool {
	for _, o := range options {
		if o == choice {
			return true
		}
	}
	return false
}
