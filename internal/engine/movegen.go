package engine

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// dir is a unit step in (file, rank) space.
type dir struct {
	df int
	dr int
}

var (
	orthogonalDirs = []dir{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs   = []dir{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allDirs        = []dir{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func slideDirs(s catalog.SlideSet) []dir {
	switch s {
	case catalog.SlideOrthogonal:
		return orthogonalDirs
	case catalog.SlideDiagonal:
		return diagonalDirs
	case catalog.SlideAll:
		return allDirs
	}
	return nil
}

// genContext is the perspective a movement pattern is generated under.
// owner decides friend and enemy; dirColor decides the forward
// direction of pawn-like tags; self identifies the piece whose
// movement is generated, used by the Regent condition. owner and
// dirColor differ only while the Chameleon copies an enemy's movement.
type genContext struct {
	b        *board.Board
	pos      board.Position
	owner    board.Color
	dirColor board.Color
	moved    bool
	ep       *board.Position
	self     *board.PieceInstance
}

// destSet accumulates destinations without duplicates, preserving
// first-seen order.
type destSet struct {
	seen map[board.Position]bool
	list []board.Position
}

func newDestSet() *destSet {
	return &destSet{seen: make(map[board.Position]bool)}
}

func (d *destSet) add(p board.Position) {
	if !d.seen[p] {
		d.seen[p] = true
		d.list = append(d.list, p)
	}
}

// PseudoLegalMoves returns every destination the piece's movement
// rules allow, ignoring whether the move would leave the mover's
// royal attacked. Frozen and off-board pieces generate nothing.
// Castling appears here too; its own preconditions include the attack
// checks on the traversed squares.
func PseudoLegalMoves(b *board.Board, pc *board.PieceInstance, ep *board.Position) []board.Position {
	if pc.Position == nil || pc.IsFrozen {
		return nil
	}
	out := movementDests(b, pc, ep)
	return append(out, castleDests(b, pc)...)
}

// movementDests is PseudoLegalMoves without castling. The attack
// oracle uses it directly so that two royals probing each other cannot
// recurse through castle generation.
func movementDests(b *board.Board, pc *board.PieceInstance, ep *board.Position) []board.Position {
	if pc.Position == nil || pc.IsFrozen {
		return nil
	}
	t := pc.Type()
	ctx := genContext{
		b:        b,
		pos:      *pc.Position,
		owner:    pc.Owner,
		dirColor: pc.Owner,
		moved:    pc.HasMoved,
		ep:       ep,
		self:     pc,
	}
	return generate(ctx, t.Movement, t.CaptureType)
}

// generate unions the three movement channels of a pattern under the
// given context.
func generate(ctx genContext, mv catalog.Movement, ct catalog.CaptureType) []board.Position {
	ds := newDestSet()
	displacement := ct == catalog.CaptureStandard
	for _, d := range slideDirs(mv.Slides) {
		slideWalk(ctx, d, displacement, ds)
	}
	for _, off := range mv.Leaps {
		for _, e := range catalog.ExpandLeaps(off, mv.LeapSymmetric) {
			leapProbe(ctx, e, displacement, ds)
		}
	}
	for _, sp := range mv.Specials {
		genSpecial(ctx, sp, ct, ds)
	}
	return ds.list
}

// slideWalk extends a ray until it leaves the board or meets a piece.
func slideWalk(ctx genContext, d dir, displacement bool, ds *destSet) {
	for p := ctx.pos.Add(d.df, d.dr); ctx.b.OnBoard(p); p = p.Add(d.df, d.dr) {
		occ := ctx.b.At(p)
		if occ == nil {
			ds.add(p)
			continue
		}
		if canTake(ctx, occ, displacement) {
			ds.add(p)
		}
		return
	}
}

// leapProbe tries a single leap offset.
func leapProbe(ctx genContext, off catalog.Offset, displacement bool, ds *destSet) {
	p := ctx.pos.Add(off.File, off.Rank)
	if !ctx.b.OnBoard(p) {
		return
	}
	occ := ctx.b.At(p)
	if occ == nil || canTake(ctx, occ, displacement) {
		ds.add(p)
	}
}

// canTake reports whether a displacement capture of occ is allowed
// from the generating perspective.
func canTake(ctx genContext, occ *board.PieceInstance, displacement bool) bool {
	return displacement && occ.Owner != ctx.owner && occ.Type().CanBeCaptured
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
