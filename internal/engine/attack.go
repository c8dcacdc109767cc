package engine

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// IsSquareAttacked reports whether a piece of color by could capture
// on target this turn. Displacement attackers are scanned through the
// move generator; the non-displacement styles each get a direct
// geometric test keyed on the attacker's capture type. Frozen
// attackers threaten nothing.
func IsSquareAttacked(b *board.Board, target board.Position, by board.Color) bool {
	tgt := b.At(target)
	for _, pc := range b.Pieces {
		if !pc.OnBoard() || pc.Owner != by || pc.IsFrozen {
			continue
		}
		t := pc.Type()
		switch t.CaptureType {
		case catalog.CaptureStandard, catalog.CaptureCannon:
			for _, p := range movementDests(b, pc, nil) {
				if p == target {
					return true
				}
			}
		case catalog.CaptureCoordinator:
			if coordinatorThreat(b, pc, target) {
				return true
			}
		case catalog.CaptureBoxer:
			if boxerThreat(b, pc, target) {
				return true
			}
		case catalog.CaptureWithdrawal:
			if withdrawerThreat(b, pc, target) {
				return true
			}
		case catalog.CaptureThief:
			if thiefThreat(b, pc, target) {
				return true
			}
		case catalog.CaptureLongLeap:
			if tgt != nil && longLeapThreat(b, pc, tgt) {
				return true
			}
		case catalog.CaptureChameleon:
			if tgt != nil && chameleonThreatens(b, pc, tgt) {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether c's royal piece is attacked. A side with
// no royal on the board is not "in check"; end detection treats that
// as a loss in its own right.
func IsInCheck(b *board.Board, c board.Color) bool {
	royal := b.Royal(c)
	if royal == nil || !royal.OnBoard() {
		return false
	}
	return IsSquareAttacked(b, *royal.Position, c.Other())
}

// coordinatorThreat: some quiet slide destination of pc pairs with
// the defending side's royal so that one of the two pairing squares is
// target.
func coordinatorThreat(b *board.Board, pc *board.PieceInstance, target board.Position) bool {
	king := b.Royal(pc.Owner.Other())
	if king == nil || !king.OnBoard() {
		return false
	}
	kp := *king.Position
	for _, d := range allDirs {
		for p := pc.Position.Add(d.df, d.dr); b.OnBoard(p); p = p.Add(d.df, d.dr) {
			if b.At(p) != nil {
				break
			}
			if (kp.File == target.File && p.Rank == target.Rank) ||
				(p.File == target.File && kp.Rank == target.Rank) {
				return true
			}
		}
	}
	return false
}

// boxerThreat: some quiet orthogonal slide of pc ends next to target
// with another friendly piece on the far side of it.
func boxerThreat(b *board.Board, pc *board.PieceInstance, target board.Position) bool {
	for _, d := range orthogonalDirs {
		for p := pc.Position.Add(d.df, d.dr); b.OnBoard(p); p = p.Add(d.df, d.dr) {
			if b.At(p) != nil {
				break
			}
			if p.Chebyshev(target) != 1 || (p.File != target.File && p.Rank != target.Rank) {
				continue
			}
			opposite := board.Position{File: 2*target.File - p.File, Rank: 2*target.Rank - p.Rank}
			if !b.OnBoard(opposite) {
				continue
			}
			if ally := b.At(opposite); ally != nil && ally.Owner == pc.Owner && ally != pc {
				return true
			}
		}
	}
	return false
}

// withdrawerThreat: target is adjacent and pc has at least one empty
// square directly away from it to retreat to.
func withdrawerThreat(b *board.Board, pc *board.PieceInstance, target board.Position) bool {
	pp := *pc.Position
	if pp.Chebyshev(target) != 1 {
		return false
	}
	away := pp.Add(sign(pp.File-target.File), sign(pp.Rank-target.Rank))
	return b.OnBoard(away) && b.At(away) == nil
}

// thiefThreat: pc can slide up the line toward target and stop on the
// empty square just short of it, capturing one square beyond its stop.
func thiefThreat(b *board.Board, pc *board.PieceInstance, target board.Position) bool {
	pp := *pc.Position
	df := target.File - pp.File
	dr := target.Rank - pp.Rank
	if df == 0 && dr == 0 {
		return false
	}
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return false
	}
	steps := abs(df)
	if steps == 0 {
		steps = abs(dr)
	}
	if steps < 2 {
		return false
	}
	sx, sy := sign(df), sign(dr)
	for k := 1; k < steps; k++ {
		if b.At(pp.Add(k*sx, k*sy)) != nil {
			return false
		}
	}
	return true
}

// longLeapThreat: tgt is jumped, and so captured, on some long-leap
// path of pc.
func longLeapThreat(b *board.Board, pc *board.PieceInstance, tgt *board.PieceInstance) bool {
	for _, path := range longLeapPaths(b, *pc.Position, pc.Owner) {
		for _, j := range path.jumped {
			if j == tgt {
				return true
			}
		}
	}
	return false
}
