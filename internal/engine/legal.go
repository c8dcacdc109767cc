package engine

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
)

// LegalMoves filters the pseudo-legal destinations of pc down to those
// that do not leave its owner's royal attacked.
func LegalMoves(b *board.Board, pc *board.PieceInstance, ep *board.Position) []board.Position {
	var out []board.Position
	for _, to := range PseudoLegalMoves(b, pc, ep) {
		if !wouldBeInCheck(b, pc, to, ep) {
			out = append(out, to)
		}
	}
	return out
}

// wouldBeInCheck applies the move on a clone, side effects and freeze
// recomputation included, and tests the mover's own royal there.
func wouldBeInCheck(b *board.Board, pc *board.PieceInstance, to board.Position, ep *board.Position) bool {
	probe := b.Clone()
	applyBoardMove(probe, probe.PieceByID(pc.ID), to, ep, "")
	return IsInCheck(probe, pc.Owner)
}

// HasLegalMoves reports whether color c has at least one legal move.
func HasLegalMoves(b *board.Board, c board.Color, ep *board.Position) bool {
	for _, pc := range b.Pieces {
		if pc.Owner != c || !pc.OnBoard() {
			continue
		}
		for _, to := range PseudoLegalMoves(b, pc, ep) {
			if !wouldBeInCheck(b, pc, to, ep) {
				return true
			}
		}
	}
	return false
}
