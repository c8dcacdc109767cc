package engine

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// The chameleon captures a piece by moving the way that piece moves.
// Generation therefore works per enemy: quiet moves are queen slides,
// displacement targets come from copying the victim's own movement,
// screen-jump targets from enemy cannons, and jump paths from enemy
// long leapers. Coordinator, boxer and withdrawer mimicry produces no
// destinations beyond the quiet slides; those styles only decide which
// captures a chosen move resolves. A chameleon never copies another
// chameleon.
func genChameleon(ctx genContext, ds *destSet) {
	for _, d := range allDirs {
		slideWalk(ctx, d, false, ds)
	}
	for _, e := range ctx.b.Pieces {
		if !e.OnBoard() || e.Owner == ctx.owner {
			continue
		}
		t := e.Type()
		switch t.CaptureType {
		case catalog.CaptureStandard:
			if t.CanBeCaptured && chameleonReaches(ctx, e) {
				ds.add(*e.Position)
			}
		case catalog.CaptureCannon:
			if t.CanBeCaptured && chameleonCannonReach(ctx.b, ctx.pos, *e.Position) {
				ds.add(*e.Position)
			}
		}
	}
	for _, path := range longLeapPaths(ctx.b, ctx.pos, ctx.owner) {
		if jumpedLongLeaper(path.jumped) {
			ds.add(path.dest)
		}
	}
}

// chameleonReaches reports whether the chameleon generating under ctx
// could land on e's square using e's own movement. The copied pattern
// runs with e's color for direction-sensitive tags, so an enemy pawn
// is taken against its own forward direction and a Regent's mode is
// judged for its owner.
func chameleonReaches(ctx genContext, e *board.PieceInstance) bool {
	cctx := ctx
	cctx.dirColor = e.Owner
	cctx.self = e
	for _, p := range generate(cctx, e.Type().Movement, catalog.CaptureStandard) {
		if p == *e.Position {
			return true
		}
	}
	return false
}

// chameleonCannonReach reports whether target is the square a cannon
// sitting on from would capture on, over exactly one screen.
func chameleonCannonReach(b *board.Board, from, target board.Position) bool {
	for _, d := range orthogonalDirs {
		if p, ok := cannonCaptureSquare(b, from, d); ok && p == target {
			return true
		}
	}
	return false
}

func jumpedLongLeaper(jumped []*board.PieceInstance) bool {
	for _, j := range jumped {
		if j.TypeID == catalog.LongLeaper {
			return true
		}
	}
	return false
}

// chameleonThreatens reports whether cham could capture tgt on the
// current board. The attack oracle calls this for every chameleon of
// the attacking side; the test is keyed by how tgt itself captures.
func chameleonThreatens(b *board.Board, cham, tgt *board.PieceInstance) bool {
	if tgt == nil || !tgt.OnBoard() || !cham.OnBoard() || tgt.Owner == cham.Owner {
		return false
	}
	t := tgt.Type()
	switch t.CaptureType {
	case catalog.CaptureStandard:
		ctx := genContext{
			b:        b,
			pos:      *cham.Position,
			owner:    cham.Owner,
			dirColor: cham.Owner,
			moved:    cham.HasMoved,
			self:     cham,
		}
		return t.CanBeCaptured && chameleonReaches(ctx, tgt)
	case catalog.CaptureCannon:
		return t.CanBeCaptured && chameleonCannonReach(b, *cham.Position, *tgt.Position)
	case catalog.CaptureCoordinator:
		return coordinatorThreat(b, cham, *tgt.Position)
	case catalog.CaptureBoxer:
		return boxerThreat(b, cham, *tgt.Position)
	case catalog.CaptureWithdrawal:
		return withdrawerThreat(b, cham, *tgt.Position)
	case catalog.CaptureLongLeap:
		for _, path := range longLeapPaths(b, *cham.Position, cham.Owner) {
			for _, j := range path.jumped {
				if j == tgt {
					return true
				}
			}
		}
		return false
	case catalog.CaptureNone:
		// Herald line: two squares orthogonally over an empty square.
		if t.CanBeCaptured && t.Movement.HasSpecial(catalog.SpecialHeraldOrthogonal) {
			return heraldLineReach(b, *cham.Position, *tgt.Position)
		}
		return false
	}
	return false
}

func heraldLineReach(b *board.Board, from, target board.Position) bool {
	df := target.File - from.File
	dr := target.Rank - from.Rank
	if !(df == 0 && abs(dr) == 2) && !(dr == 0 && abs(df) == 2) {
		return false
	}
	return b.At(from.Add(sign(df), sign(dr))) == nil
}
