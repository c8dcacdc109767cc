package engine

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// genSpecial runs one tagged movement algorithm.
func genSpecial(ctx genContext, sp catalog.Special, ct catalog.CaptureType, ds *destSet) {
	displacement := ct == catalog.CaptureStandard
	switch sp {
	case catalog.SpecialPawnForward:
		genPawnForward(ctx, ds)
	case catalog.SpecialPawnCaptureDiagonal:
		genPawnCaptureDiagonal(ctx, ds)
	case catalog.SpecialShogiPawn:
		genShogiPawn(ctx, displacement, ds)
	case catalog.SpecialPeasantDiagonal:
		genPeasantDiagonal(ctx, ds)
	case catalog.SpecialPeasantCaptureForward:
		genPeasantCaptureForward(ctx, displacement, ds)
	case catalog.SpecialKingOneSquare:
		genKingOneSquare(ctx, displacement, ds)
	case catalog.SpecialSwapAdjacent:
		genSwapAdjacent(ctx, ds)
	case catalog.SpecialRegentConditional:
		genRegent(ctx, displacement, ds)
	case catalog.SpecialHeraldOrthogonal:
		genHeraldOrthogonal(ctx, ds)
	case catalog.SpecialBounce:
		genBounce(ctx, displacement, ds)
	case catalog.SpecialLongLeap:
		for _, path := range longLeapPaths(ctx.b, ctx.pos, ctx.owner) {
			ds.add(path.dest)
		}
	case catalog.SpecialChameleon:
		genChameleon(ctx, ds)
	case catalog.SpecialGrasshopper:
		genGrasshopper(ctx, displacement, ds)
	case catalog.SpecialCannonMove:
		genCannonMove(ctx, ds)
	case catalog.SpecialNightrider:
		genNightrider(ctx, displacement, ds)
	}
}

// startBand reports whether the position is inside the two-rank band
// a pawn may double-step from.
func startBand(ctx genContext) bool {
	if ctx.dirColor == board.White {
		return ctx.pos.Rank <= 1
	}
	return ctx.pos.Rank >= ctx.b.Ranks-2
}

func genPawnForward(ctx genContext, ds *destSet) {
	fwd := ctx.dirColor.Forward()
	one := ctx.pos.Add(0, fwd)
	if !ctx.b.OnBoard(one) || ctx.b.At(one) != nil {
		return
	}
	ds.add(one)
	if ctx.moved || !startBand(ctx) {
		return
	}
	two := ctx.pos.Add(0, 2*fwd)
	if ctx.b.OnBoard(two) && ctx.b.At(two) == nil {
		ds.add(two)
	}
}

func genPawnCaptureDiagonal(ctx genContext, ds *destSet) {
	fwd := ctx.dirColor.Forward()
	for _, df := range [2]int{-1, 1} {
		p := ctx.pos.Add(df, fwd)
		if !ctx.b.OnBoard(p) {
			continue
		}
		if occ := ctx.b.At(p); occ != nil {
			if occ.Owner != ctx.owner && occ.Type().CanBeCaptured {
				ds.add(p)
			}
			continue
		}
		// En-passant: the target square is empty, the victim sits on
		// the mover's rank one file over.
		if ctx.ep != nil && p == *ctx.ep {
			victim := ctx.b.At(board.Position{File: p.File, Rank: ctx.pos.Rank})
			if victim != nil && victim.Owner != ctx.owner && victim.Type().CanBeCaptured {
				ds.add(p)
			}
		}
	}
}

func genShogiPawn(ctx genContext, displacement bool, ds *destSet) {
	p := ctx.pos.Add(0, ctx.dirColor.Forward())
	if !ctx.b.OnBoard(p) {
		return
	}
	occ := ctx.b.At(p)
	if occ == nil || canTake(ctx, occ, displacement) {
		ds.add(p)
	}
}

func genPeasantDiagonal(ctx genContext, ds *destSet) {
	fwd := ctx.dirColor.Forward()
	for _, df := range [2]int{-1, 1} {
		one := ctx.pos.Add(df, fwd)
		if !ctx.b.OnBoard(one) || ctx.b.At(one) != nil {
			continue
		}
		ds.add(one)
		if ctx.moved {
			continue
		}
		two := ctx.pos.Add(2*df, 2*fwd)
		if ctx.b.OnBoard(two) && ctx.b.At(two) == nil {
			ds.add(two)
		}
	}
}

func genPeasantCaptureForward(ctx genContext, displacement bool, ds *destSet) {
	p := ctx.pos.Add(0, ctx.dirColor.Forward())
	if !ctx.b.OnBoard(p) {
		return
	}
	if occ := ctx.b.At(p); occ != nil && canTake(ctx, occ, displacement) {
		ds.add(p)
	}
}

func genKingOneSquare(ctx genContext, displacement bool, ds *destSet) {
	for _, d := range allDirs {
		p := ctx.pos.Add(d.df, d.dr)
		if !ctx.b.OnBoard(p) {
			continue
		}
		occ := ctx.b.At(p)
		if occ == nil || canTake(ctx, occ, displacement) {
			ds.add(p)
		}
	}
}

func genSwapAdjacent(ctx genContext, ds *destSet) {
	for _, d := range allDirs {
		p := ctx.pos.Add(d.df, d.dr)
		if !ctx.b.OnBoard(p) {
			continue
		}
		if occ := ctx.b.At(p); occ != nil && occ.Owner == ctx.owner {
			ds.add(p)
		}
	}
}

// genRegent is the conditional royal: an unrestricted queen once the
// owner's second royalty-tier piece is gone (and one was drafted),
// otherwise exactly two squares in any direction with a blockable
// first square.
func genRegent(ctx genContext, displacement bool, ds *destSet) {
	queenMode := ctx.b.HadMultipleRoyals[ctx.dirColor] &&
		!ctx.b.HasOtherRoyalty(ctx.dirColor, ctx.self)
	if queenMode {
		for _, d := range allDirs {
			slideWalk(ctx, d, displacement, ds)
		}
		return
	}
	for _, d := range allDirs {
		mid := ctx.pos.Add(d.df, d.dr)
		if !ctx.b.OnBoard(mid) || ctx.b.At(mid) != nil {
			continue
		}
		p := ctx.pos.Add(2*d.df, 2*d.dr)
		if !ctx.b.OnBoard(p) {
			continue
		}
		occ := ctx.b.At(p)
		if occ == nil || canTake(ctx, occ, displacement) {
			ds.add(p)
		}
	}
}

func genHeraldOrthogonal(ctx genContext, ds *destSet) {
	for _, d := range orthogonalDirs {
		mid := ctx.pos.Add(d.df, d.dr)
		if !ctx.b.OnBoard(mid) || ctx.b.At(mid) != nil {
			continue
		}
		p := ctx.pos.Add(2*d.df, 2*d.dr)
		if ctx.b.OnBoard(p) && ctx.b.At(p) == nil {
			ds.add(p)
		}
	}
}

// genBounce walks a diagonal ray that reflects off board edges. The
// trajectory ends when it revisits a square, hits a piece, or reaches
// the step cap.
func genBounce(ctx genContext, displacement bool, ds *destSet) {
	maxSteps := ctx.b.Files * ctx.b.Ranks
	for _, start := range diagonalDirs {
		visited := map[board.Position]bool{ctx.pos: true}
		cur := ctx.pos
		d := start
		for steps := 0; steps < maxSteps; steps++ {
			next := cur.Add(d.df, d.dr)
			if !ctx.b.OnBoard(next) {
				if next.File < 0 || next.File >= ctx.b.Files {
					d.df = -d.df
				}
				if next.Rank < 0 || next.Rank >= ctx.b.Ranks {
					d.dr = -d.dr
				}
				next = cur.Add(d.df, d.dr)
				if !ctx.b.OnBoard(next) {
					break
				}
			}
			if visited[next] {
				break
			}
			visited[next] = true
			occ := ctx.b.At(next)
			if occ == nil {
				ds.add(next)
				cur = next
				continue
			}
			if canTake(ctx, occ, displacement) {
				ds.add(next)
			}
			break
		}
	}
}

// leapPath is one long-leap landing square together with the enemies
// jumped on the way there.
type leapPath struct {
	dest   board.Position
	jumped []*board.PieceInstance
}

// longLeapPaths walks the eight queen lines. Empty squares are
// landing spots; capturable, jumpable enemies are passed over and
// accumulate as captures; anything else ends the line.
func longLeapPaths(b *board.Board, pos board.Position, owner board.Color) []leapPath {
	var out []leapPath
	for _, d := range allDirs {
		var jumped []*board.PieceInstance
		for p := pos.Add(d.df, d.dr); b.OnBoard(p); p = p.Add(d.df, d.dr) {
			occ := b.At(p)
			if occ == nil {
				out = append(out, leapPath{dest: p, jumped: append([]*board.PieceInstance(nil), jumped...)})
				continue
			}
			t := occ.Type()
			if occ.Owner == owner || !t.CanBeCaptured || !t.CanBeJumpedOver {
				break
			}
			jumped = append(jumped, occ)
		}
	}
	return out
}

func genGrasshopper(ctx genContext, displacement bool, ds *destSet) {
	for _, d := range allDirs {
		hurdle := board.Position{}
		found := false
		for p := ctx.pos.Add(d.df, d.dr); ctx.b.OnBoard(p); p = p.Add(d.df, d.dr) {
			if ctx.b.At(p) != nil {
				hurdle = p
				found = true
				break
			}
		}
		if !found || !ctx.b.At(hurdle).Type().CanBeJumpedOver {
			continue
		}
		land := hurdle.Add(d.df, d.dr)
		if !ctx.b.OnBoard(land) {
			continue
		}
		occ := ctx.b.At(land)
		if occ == nil || canTake(ctx, occ, displacement) {
			ds.add(land)
		}
	}
}

// genCannonMove slides orthogonally to empty squares and captures over
// exactly one screen.
func genCannonMove(ctx genContext, ds *destSet) {
	for _, d := range orthogonalDirs {
		for p := ctx.pos.Add(d.df, d.dr); ctx.b.OnBoard(p); p = p.Add(d.df, d.dr) {
			if ctx.b.At(p) != nil {
				break
			}
			ds.add(p)
		}
		if p, ok := cannonCaptureSquare(ctx.b, ctx.pos, d); ok {
			occ := ctx.b.At(p)
			if occ.Owner != ctx.owner && occ.Type().CanBeCaptured {
				ds.add(p)
			}
		}
	}
}

// cannonCaptureSquare returns the square a cannon on pos would capture
// on along d: the first piece after exactly one jumpable screen.
func cannonCaptureSquare(b *board.Board, pos board.Position, d dir) (board.Position, bool) {
	p := pos.Add(d.df, d.dr)
	for ; b.OnBoard(p); p = p.Add(d.df, d.dr) {
		if b.At(p) != nil {
			break
		}
	}
	if !b.OnBoard(p) || !b.At(p).Type().CanBeJumpedOver {
		return board.Position{}, false
	}
	for p = p.Add(d.df, d.dr); b.OnBoard(p); p = p.Add(d.df, d.dr) {
		if b.At(p) != nil {
			return p, true
		}
	}
	return board.Position{}, false
}

func genNightrider(ctx genContext, displacement bool, ds *destSet) {
	for _, off := range catalog.ExpandLeaps(catalog.Offset{File: 1, Rank: 2}, true) {
		for k := 1; ; k++ {
			p := ctx.pos.Add(k*off.File, k*off.Rank)
			if !ctx.b.OnBoard(p) {
				break
			}
			occ := ctx.b.At(p)
			if occ == nil {
				ds.add(p)
				continue
			}
			if canTake(ctx, occ, displacement) {
				ds.add(p)
			}
			break
		}
	}
}
