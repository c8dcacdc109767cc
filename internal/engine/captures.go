package engine

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// resolveCaptures derives every piece a validated move removes,
// evaluated on the board as it stands before the move is applied.
// Swap moves and castling resolve no captures and never come through
// here.
func resolveCaptures(b *board.Board, pc *board.PieceInstance, from, to board.Position, ep *board.Position) []*board.PieceInstance {
	switch pc.Type().CaptureType {
	case catalog.CaptureStandard:
		if occ := b.At(to); occ != nil && occ.Owner != pc.Owner {
			return []*board.PieceInstance{occ}
		}
		if v := enPassantVictim(b, pc, from, to, ep); v != nil {
			return []*board.PieceInstance{v}
		}
		return nil
	case catalog.CaptureCannon:
		if occ := b.At(to); occ != nil && occ.Owner != pc.Owner {
			return []*board.PieceInstance{occ}
		}
		return nil
	case catalog.CaptureCoordinator:
		return coordinatorCaptures(b, pc, to, func(v *board.PieceInstance) bool {
			return enemyCapturable(pc, v)
		})
	case catalog.CaptureWithdrawal:
		if v := withdrawalVictim(b, pc, from, to); v != nil {
			return []*board.PieceInstance{v}
		}
		return nil
	case catalog.CaptureBoxer:
		return boxerCaptures(b, pc, to, func(v *board.PieceInstance) bool {
			return enemyCapturable(pc, v)
		})
	case catalog.CaptureThief:
		if v := thiefVictim(b, pc, from, to); v != nil {
			return []*board.PieceInstance{v}
		}
		return nil
	case catalog.CaptureLongLeap:
		for _, path := range longLeapPaths(b, from, pc.Owner) {
			if path.dest == to {
				return path.jumped
			}
		}
		return nil
	case catalog.CaptureChameleon:
		return chameleonCaptures(b, pc, from, to)
	}
	return nil
}

// enemyCapturable reports whether v is an on-board capturable piece of
// pc's opponent.
func enemyCapturable(pc *board.PieceInstance, v *board.PieceInstance) bool {
	return v != nil && v.OnBoard() && v.Owner != pc.Owner && v.Type().CanBeCaptured
}

// enPassantVictim returns the pawn removed by a diagonal capture onto
// the en-passant target. The victim sits on the mover's source rank,
// not on the target square.
func enPassantVictim(b *board.Board, pc *board.PieceInstance, from, to board.Position, ep *board.Position) *board.PieceInstance {
	if ep == nil || to != *ep {
		return nil
	}
	if !pc.Type().Movement.HasSpecial(catalog.SpecialPawnCaptureDiagonal) {
		return nil
	}
	if abs(to.File-from.File) != 1 || to.Rank-from.Rank != pc.Owner.Forward() {
		return nil
	}
	v := b.At(board.Position{File: to.File, Rank: from.Rank})
	if enemyCapturable(pc, v) {
		return v
	}
	return nil
}

// withdrawalVictim is the adjacent enemy the mover retreats directly
// away from.
func withdrawalVictim(b *board.Board, pc *board.PieceInstance, from, to board.Position) *board.PieceInstance {
	sx, sy := sign(to.File-from.File), sign(to.Rank-from.Rank)
	v := b.At(from.Add(-sx, -sy))
	if enemyCapturable(pc, v) {
		return v
	}
	return nil
}

// thiefVictim is the enemy one square beyond the destination along the
// movement direction.
func thiefVictim(b *board.Board, pc *board.PieceInstance, from, to board.Position) *board.PieceInstance {
	sx, sy := sign(to.File-from.File), sign(to.Rank-from.Rank)
	v := b.At(to.Add(sx, sy))
	if enemyCapturable(pc, v) {
		return v
	}
	return nil
}

// coordinatorCaptures returns the victims standing on the two squares
// that pair the destination with the victims' own royal: same file as
// that royal at the destination's rank, and same rank as that royal at
// the destination's file.
func coordinatorCaptures(b *board.Board, pc *board.PieceInstance, to board.Position, victim func(*board.PieceInstance) bool) []*board.PieceInstance {
	king := b.Royal(pc.Owner.Other())
	if king == nil || !king.OnBoard() {
		return nil
	}
	kp := *king.Position
	var out []*board.PieceInstance
	for _, p := range [2]board.Position{
		{File: kp.File, Rank: to.Rank},
		{File: to.File, Rank: kp.Rank},
	} {
		if p == to || p == kp {
			continue
		}
		if v := b.At(p); victim(v) {
			out = append(out, v)
		}
	}
	return out
}

// boxerCaptures returns the victims orthogonally adjacent to the
// destination that end up sandwiched between the arriving mover and
// another friendly piece.
func boxerCaptures(b *board.Board, pc *board.PieceInstance, to board.Position, victim func(*board.PieceInstance) bool) []*board.PieceInstance {
	var out []*board.PieceInstance
	for _, d := range orthogonalDirs {
		n := to.Add(d.df, d.dr)
		v := b.At(n)
		if !victim(v) {
			continue
		}
		ally := b.At(n.Add(d.df, d.dr))
		if ally != nil && ally.Owner == pc.Owner && ally != pc {
			out = append(out, v)
		}
	}
	return out
}

// chameleonCaptures resolves every mimicked style the move from→to
// matches: the displacement victim on the destination, long-leap jumps
// over at least one long leaper, and, when the move is a clear slide,
// withdrawal from an adjacent withdrawer, coordination against enemy
// coordinators and orthogonal sandwiches against enemy boxers.
func chameleonCaptures(b *board.Board, pc *board.PieceInstance, from, to board.Position) []*board.PieceInstance {
	var out []*board.PieceInstance
	seen := make(map[int]bool)
	take := func(v *board.PieceInstance) {
		if v != nil && !seen[v.ID] {
			seen[v.ID] = true
			out = append(out, v)
		}
	}

	if occ := b.At(to); occ != nil && occ.Owner != pc.Owner {
		take(occ)
	}

	df, dr := to.File-from.File, to.Rank-from.Rank
	collinear := df == 0 || dr == 0 || abs(df) == abs(dr)
	if !collinear {
		return out
	}

	for _, path := range longLeapPaths(b, from, pc.Owner) {
		if path.dest == to && jumpedLongLeaper(path.jumped) {
			for _, j := range path.jumped {
				take(j)
			}
		}
	}

	if !pathClear(b, from, to) {
		return out
	}
	sx, sy := sign(df), sign(dr)
	if w := b.At(from.Add(-sx, -sy)); enemyCapturable(pc, w) && w.TypeID == catalog.Withdrawer {
		take(w)
	}
	for _, v := range coordinatorCaptures(b, pc, to, func(v *board.PieceInstance) bool {
		return enemyCapturable(pc, v) && v.TypeID == catalog.Coordinator
	}) {
		take(v)
	}
	if df == 0 || dr == 0 {
		for _, v := range boxerCaptures(b, pc, to, func(v *board.PieceInstance) bool {
			return enemyCapturable(pc, v) && v.TypeID == catalog.Boxer
		}) {
			take(v)
		}
	}
	return out
}

// pathClear reports whether the squares strictly between from and to
// on their shared line are empty.
func pathClear(b *board.Board, from, to board.Position) bool {
	sx, sy := sign(to.File-from.File), sign(to.Rank-from.Rank)
	for p := from.Add(sx, sy); p != to; p = p.Add(sx, sy) {
		if b.At(p) != nil {
			return false
		}
	}
	return true
}
