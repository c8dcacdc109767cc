package engine

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
)

// castleDests returns the castling destinations of a royal piece: two
// files toward an unmoved castling partner on the same home rank, with
// every square between them empty. The mover must not be in check and
// the crossed square and destination must both be safe; safety is
// probed on a clone with the pieces relocated, so non-displacement
// attackers see the final geometry.
func castleDests(b *board.Board, pc *board.PieceInstance) []board.Position {
	t := pc.Type()
	if !t.IsRoyal || pc.HasMoved || pc.Position == nil {
		return nil
	}
	if pc.Position.Rank != b.Size().BackRank(pc.Owner) {
		return nil
	}
	if IsInCheck(b, pc.Owner) {
		return nil
	}
	var out []board.Position
	for _, step := range [2]int{1, -1} {
		partner := castlePartner(b, pc, step)
		if partner == nil {
			continue
		}
		dest := pc.Position.Add(2*step, 0)
		if !b.OnBoard(dest) {
			continue
		}
		if castleSafe(b, pc, partner, pc.Position.Add(step, 0), dest) {
			out = append(out, dest)
		}
	}
	return out
}

// castlePartner scans along the home rank and returns the first piece
// met iff it qualifies: friendly, unmoved, can castle, not royal, and
// at least two files away.
func castlePartner(b *board.Board, pc *board.PieceInstance, step int) *board.PieceInstance {
	for p := pc.Position.Add(step, 0); b.OnBoard(p); p = p.Add(step, 0) {
		occ := b.At(p)
		if occ == nil {
			continue
		}
		t := occ.Type()
		if occ.Owner != pc.Owner || occ.HasMoved || !t.CanCastle || t.IsRoyal {
			return nil
		}
		if abs(p.File-pc.Position.File) < 2 {
			return nil
		}
		return occ
	}
	return nil
}

func castleSafe(b *board.Board, pc, partner *board.PieceInstance, crossed, dest board.Position) bool {
	enemy := pc.Owner.Other()

	probe := b.Clone()
	relocate(probe, pc.ID, crossed)
	RecomputeFreeze(probe)
	if IsSquareAttacked(probe, crossed, enemy) {
		return false
	}

	probe = b.Clone()
	relocate(probe, partner.ID, crossed)
	relocate(probe, pc.ID, dest)
	RecomputeFreeze(probe)
	return !IsSquareAttacked(probe, dest, enemy)
}

// relocate moves a cloned piece by direct position write plus index
// rebuild, sidestepping occupancy checks while squares are swapped
// around.
func relocate(b *board.Board, id int, to board.Position) {
	if pc := b.PieceByID(id); pc != nil {
		p := to
		pc.Position = &p
		b.Rebuild()
	}
}
