package engine

import (
	"testing"

	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// put places a new piece on an algebraic square.
func put(t *testing.T, b *board.Board, id int, typeID string, c board.Color, square string) *board.PieceInstance {
	p, err := board.ParsePosition(square)
	if err != nil {
		t.Fatalf("bad square %q: %v", square, err)
	}
	pc := &board.PieceInstance{ID: id, TypeID: typeID, Owner: c, Position: &p}
	b.Add(pc)
	return pc
}

func sq(t *testing.T, s string) board.Position {
	p, err := board.ParsePosition(s)
	if err != nil {
		t.Fatalf("bad square %q: %v", s, err)
	}
	return p
}

// destsOf collects a piece's pseudo-legal destinations by name.
func destsOf(b *board.Board, pc *board.PieceInstance, ep *board.Position) map[string]bool {
	out := make(map[string]bool)
	for _, p := range PseudoLegalMoves(b, pc, ep) {
		out[p.String()] = true
	}
	return out
}

// playing wraps a hand-built board in a play-phase game, white to
// move.
func playing(b *board.Board) *GameState {
	g := &GameState{
		Phase:       PhasePlay,
		BoardSize:   b.Size().String(),
		Board:       b,
		CurrentTurn: board.White,
		TurnNumber:  1,
	}
	RecomputeFreeze(b)
	g.refreshDerived()
	return g
}

func req(t *testing.T, from, to string) MoveRequest {
	return MoveRequest{From: sq(t, from), To: sq(t, to)}
}

func wantDests(t *testing.T, ds map[string]bool, yes, no []string) {
	for _, s := range yes {
		if !ds[s] {
			t.Errorf("missing destination %s", s)
		}
	}
	for _, s := range no {
		if ds[s] {
			t.Errorf("unexpected destination %s", s)
		}
	}
}

func TestRookSlides(t *testing.T) {
	// White: Rook d4, Pawn d6, King a1. Black: Bishop f4, King h8.
	// The rook stops before its own pawn and captures the bishop.
	b := board.New(board.Size8x8)
	rook := put(t, b, 1, catalog.Rook, board.White, "d4")
	put(t, b, 2, catalog.Pawn, board.White, "d6")
	put(t, b, 3, catalog.King, board.White, "a1")
	put(t, b, 4, catalog.Bishop, board.Black, "f4")
	put(t, b, 5, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	ds := destsOf(b, rook, nil)
	wantDests(t, ds,
		[]string{"d5", "d3", "d2", "d1", "c4", "b4", "a4", "e4", "f4"},
		[]string{"d6", "d7", "g4", "e5"})
}

func TestPawnForwardAndDiagonal(t *testing.T) {
	// White Pawn e2 on its start band: single and double push, diagonal
	// takes only where an enemy stands.
	b := board.New(board.Size8x8)
	pawn := put(t, b, 1, catalog.Pawn, board.White, "e2")
	put(t, b, 2, catalog.Knight, board.Black, "d3")
	put(t, b, 3, catalog.King, board.White, "a1")
	put(t, b, 4, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	ds := destsOf(b, pawn, nil)
	wantDests(t, ds, []string{"e3", "e4", "d3"}, []string{"f3", "e5"})

	// A blocker on e3 stops both pushes.
	put(t, b, 5, catalog.Rook, board.Black, "e3")
	ds = destsOf(b, pawn, nil)
	wantDests(t, ds, []string{"d3"}, []string{"e3", "e4"})
}

func TestShogiPawnAndPeasant(t *testing.T) {
	// Shogi pawn pushes and captures straight ahead.
	b := board.New(board.Size8x8)
	sp := put(t, b, 1, catalog.ShogiPawn, board.White, "c4")
	put(t, b, 2, catalog.Knight, board.Black, "c5")
	put(t, b, 3, catalog.King, board.White, "a1")
	put(t, b, 4, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)
	wantDests(t, destsOf(b, sp, nil), []string{"c5"}, []string{"b5", "d5", "c3"})

	// Peasant steps diagonally, two steps while unmoved, and captures
	// only straight ahead.
	peasant := put(t, b, 5, catalog.Peasant, board.White, "e3")
	put(t, b, 6, catalog.Bishop, board.Black, "e4")
	RecomputeFreeze(b)
	ds := destsOf(b, peasant, nil)
	wantDests(t, ds, []string{"d4", "f4", "c5", "g5", "e4"}, []string{"e5", "d3"})

	peasant.HasMoved = true
	ds = destsOf(b, peasant, nil)
	wantDests(t, ds, []string{"d4", "f4", "e4"}, []string{"c5", "g5"})
}

func TestHeraldMoves(t *testing.T) {
	// Herald b2: exactly two squares orthogonally, intermediate and
	// destination both empty.
	b := board.New(board.Size8x8)
	h := put(t, b, 1, catalog.Herald, board.White, "b2")
	put(t, b, 2, catalog.Pawn, board.White, "c2")
	put(t, b, 3, catalog.Knight, board.Black, "b4")
	put(t, b, 4, catalog.King, board.White, "h1")
	put(t, b, 5, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	// d2 blocked by the pawn on c2, b4 occupied, so only the b-file
	// downward line is closed by the edge.
	wantDests(t, destsOf(b, h, nil), nil, []string{"d2", "b4", "c2", "b3", "b1", "a2"})
}

func TestGrasshopper(t *testing.T) {
	// Grasshopper d4 hops the pawn on d6 and lands on d7; without a
	// hurdle a line yields nothing.
	b := board.New(board.Size8x8)
	g := put(t, b, 1, catalog.Grasshopper, board.White, "d4")
	put(t, b, 2, catalog.Pawn, board.White, "d6")
	put(t, b, 3, catalog.Knight, board.Black, "f6")
	put(t, b, 4, catalog.King, board.White, "a1")
	put(t, b, 5, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	ds := destsOf(b, g, nil)
	// f6 is its own hurdle line: e5 empty, f6 occupied, land g7.
	wantDests(t, ds, []string{"d7", "g7"}, []string{"d5", "d6", "e5", "c4", "b4"})
}

func TestCannonMoveAndScreenCapture(t *testing.T) {
	// Cannon b2 slides the empty b-file up to the screen, then captures
	// the knight beyond it; the friendly piece beyond a screen is safe.
	b := board.New(board.Size8x8)
	c := put(t, b, 1, catalog.Cannon, board.White, "b2")
	put(t, b, 2, catalog.Pawn, board.White, "b5")
	put(t, b, 3, catalog.Knight, board.Black, "b7")
	put(t, b, 4, catalog.Pawn, board.White, "f2")
	put(t, b, 5, catalog.Rook, board.White, "g2")
	put(t, b, 6, catalog.King, board.White, "a1")
	put(t, b, 7, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	ds := destsOf(b, c, nil)
	wantDests(t, ds,
		[]string{"b3", "b4", "c2", "d2", "e2", "b7"},
		[]string{"b5", "b6", "b8", "f2", "g2"})
}

func TestNightrider(t *testing.T) {
	// Nightrider b1 repeats the knight vector: c3, d5, e7. A friendly
	// piece on d5 cuts the line after c3.
	b := board.New(board.Size8x8)
	n := put(t, b, 1, catalog.Nightrider, board.White, "b1")
	put(t, b, 2, catalog.King, board.White, "h1")
	put(t, b, 3, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)
	wantDests(t, destsOf(b, n, nil), []string{"c3", "d5", "e7"}, nil)

	put(t, b, 4, catalog.Pawn, board.White, "d5")
	RecomputeFreeze(b)
	wantDests(t, destsOf(b, n, nil), []string{"c3"}, []string{"d5", "e7"})
}

func TestPontiffBounce(t *testing.T) {
	// Pontiff a1 with its own pawn on c3: the single diagonal runs to
	// b2 and stops before the pawn; the edge reflections all fold back
	// onto the same line.
	b := board.New(board.Size8x8)
	p := put(t, b, 1, catalog.Pontiff, board.White, "a1")
	put(t, b, 2, catalog.Pawn, board.White, "c3")
	put(t, b, 3, catalog.King, board.White, "e1")
	put(t, b, 4, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)
	wantDests(t, destsOf(b, p, nil), []string{"b2"}, []string{"c3", "d4"})

	// With an enemy on c3 instead, the bounce line ends in a capture.
	b2 := board.New(board.Size8x8)
	p2 := put(t, b2, 1, catalog.Pontiff, board.White, "a1")
	put(t, b2, 2, catalog.Knight, board.Black, "c3")
	put(t, b2, 3, catalog.King, board.White, "e1")
	put(t, b2, 4, catalog.King, board.Black, "h8")
	RecomputeFreeze(b2)
	wantDests(t, destsOf(b2, p2, nil), []string{"b2", "c3"}, []string{"d4"})
}

func TestPontiffReflects(t *testing.T) {
	// Pontiff h4: the up-right ray leaves the board at i5 and reflects
	// into g5, f6, g7 ... walled in by friendly pawns to keep the
	// trajectory short.
	b := board.New(board.Size8x8)
	p := put(t, b, 1, catalog.Pontiff, board.White, "h4")
	put(t, b, 2, catalog.Pawn, board.White, "f6")
	put(t, b, 3, catalog.Pawn, board.White, "f2")
	put(t, b, 4, catalog.Pawn, board.White, "e1")
	put(t, b, 5, catalog.Pawn, board.White, "e7")
	put(t, b, 6, catalog.King, board.White, "a1")
	put(t, b, 7, catalog.King, board.Black, "a8")
	RecomputeFreeze(b)

	ds := destsOf(b, p, nil)
	wantDests(t, ds, []string{"g5", "g3"}, []string{"f6", "f2", "h5", "h3"})
}

func TestLongLeaperChainCapture(t *testing.T) {
	// White: Long Leaper a1, King e1. Black: Pawn b2, Knight c3,
	// King h8. The leaper jumps both on the way to d4 and captures
	// them in one move.
	b := board.New(board.Size8x8)
	leaper := put(t, b, 1, catalog.LongLeaper, board.White, "a1")
	pawn := put(t, b, 2, catalog.Pawn, board.Black, "b2")
	knight := put(t, b, 3, catalog.Knight, board.Black, "c3")
	put(t, b, 4, catalog.King, board.White, "e1")
	put(t, b, 5, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	if ds := destsOf(b, leaper, nil); !ds["d4"] {
		t.Fatal("leaper on a1 should reach d4 over b2 and c3")
	}

	g := playing(b)
	out := g.ApplyMove(board.White, req(t, "a1", "d4"))
	if !out.OK() {
		t.Fatalf("move rejected: %s", out.Err)
	}
	if pawn.OnBoard() || knight.OnBoard() {
		t.Error("jumped pieces should be captured")
	}
	if len(out.Record.Captured) != 2 {
		t.Errorf("captured %d pieces, want 2", len(out.Record.Captured))
	}
	if got := b.At(sq(t, "d4")); got != leaper {
		t.Error("leaper should stand on d4")
	}
}

func TestFoolBlocksLongLeaper(t *testing.T) {
	// Same line with a Fool on b2: uncapturable, unjumpable, the whole
	// diagonal is closed.
	b := board.New(board.Size8x8)
	leaper := put(t, b, 1, catalog.LongLeaper, board.White, "a1")
	put(t, b, 2, catalog.Fool, board.Black, "b2")
	put(t, b, 3, catalog.Knight, board.Black, "c3")
	put(t, b, 4, catalog.King, board.White, "e1")
	put(t, b, 5, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	ds := destsOf(b, leaper, nil)
	wantDests(t, ds, nil, []string{"b2", "c3", "d4"})
}

func TestChameleonCopiesKnight(t *testing.T) {
	// White: Chameleon c3, King e1. Black: Knight b5, King h8. The
	// chameleon takes the knight with the knight's own leap.
	b := board.New(board.Size8x8)
	cham := put(t, b, 1, catalog.Chameleon, board.White, "c3")
	put(t, b, 2, catalog.King, board.White, "e1")
	knight := put(t, b, 3, catalog.Knight, board.Black, "b5")
	put(t, b, 4, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	if ds := destsOf(b, cham, nil); !ds["b5"] {
		t.Fatal("chameleon on c3 should reach the knight on b5")
	}

	g := playing(b)
	out := g.ApplyMove(board.White, req(t, "c3", "b5"))
	if !out.OK() {
		t.Fatalf("move rejected: %s", out.Err)
	}
	if knight.OnBoard() {
		t.Error("knight should be captured")
	}
	if got := b.At(sq(t, "b5")); got != cham {
		t.Error("chameleon should stand on b5")
	}
	if g.InCheck != nil {
		t.Errorf("no side should be in check, got %v", *g.InCheck)
	}
}

func TestChameleonCopiesPawnDirection(t *testing.T) {
	// The chameleon takes an enemy pawn along the pawn's own capture
	// direction: from e5 down onto d4, never from c3 up onto d4.
	b := board.New(board.Size8x8)
	far := put(t, b, 1, catalog.Chameleon, board.White, "c3")
	near := put(t, b, 2, catalog.Chameleon, board.White, "e5")
	put(t, b, 3, catalog.Pawn, board.Black, "d4")
	put(t, b, 4, catalog.King, board.White, "h1")
	put(t, b, 5, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	if destsOf(b, far, nil)["d4"] {
		t.Error("chameleon below the pawn must not reach it")
	}
	if !destsOf(b, near, nil)["d4"] {
		t.Error("chameleon above the pawn should take it like a black pawn would")
	}
}

func TestChameleonStyleTargets(t *testing.T) {
	// Quiet slides stop before any piece; a thief is not takeable at
	// all; a cannon is takeable over a screen.
	b := board.New(board.Size8x8)
	cham := put(t, b, 1, catalog.Chameleon, board.White, "d4")
	put(t, b, 2, catalog.Thief, board.Black, "f4")
	put(t, b, 3, catalog.Pawn, board.White, "d6")
	put(t, b, 4, catalog.Cannon, board.Black, "d8")
	put(t, b, 5, catalog.King, board.White, "a1")
	put(t, b, 6, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	ds := destsOf(b, cham, nil)
	wantDests(t, ds, []string{"e4", "d5", "d8"}, []string{"f4", "d6", "d7"})
}

func TestChameleonJumpsLongLeaper(t *testing.T) {
	// A jump line counts only when a long leaper is among the jumped:
	// over the leaper on e5 the chameleon lands on f6 or beyond, while
	// a line over a lone pawn stays closed.
	b := board.New(board.Size8x8)
	cham := put(t, b, 1, catalog.Chameleon, board.White, "d4")
	leaper := put(t, b, 2, catalog.LongLeaper, board.Black, "e5")
	put(t, b, 3, catalog.Pawn, board.Black, "c5")
	put(t, b, 4, catalog.King, board.White, "a1")
	put(t, b, 5, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	ds := destsOf(b, cham, nil)
	wantDests(t, ds, []string{"f6", "g7"}, []string{"b6", "a7"})

	g := playing(b)
	out := g.ApplyMove(board.White, req(t, "d4", "f6"))
	if !out.OK() {
		t.Fatalf("move rejected: %s", out.Err)
	}
	if leaper.OnBoard() {
		t.Error("jumped long leaper should be captured")
	}
}

func TestRegentModes(t *testing.T) {
	// With another royalty piece alive the Regent steps exactly two
	// squares over an empty first square. Alone, with multiple royals
	// drafted, it slides like a queen.
	b := board.New(board.Size8x8)
	b.HadMultipleRoyals[board.White] = true
	regent := put(t, b, 1, catalog.Regent, board.White, "e4")
	put(t, b, 2, catalog.Queen, board.White, "a1")
	put(t, b, 3, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	ds := destsOf(b, regent, nil)
	wantDests(t, ds, []string{"c4", "g4", "e2", "e6", "c2", "g6", "c6", "g2"}, []string{"d4", "f4", "e5", "a4"})

	// Blocked first square closes that direction.
	put(t, b, 4, catalog.Pawn, board.White, "d4")
	RecomputeFreeze(b)
	ds = destsOf(b, regent, nil)
	wantDests(t, ds, []string{"g4"}, []string{"c4", "d4"})

	// Queen gone: full queen slides.
	b.Capture(b.PieceByID(2))
	RecomputeFreeze(b)
	ds = destsOf(b, regent, nil)
	wantDests(t, ds, []string{"f4", "g4", "h4", "e5", "e8", "a8"}, []string{"d4", "c4"})
}

func TestFreezeAura(t *testing.T) {
	// A herald freezes both colors next to it; the fool shrugs it
	// off; a chameleon freezes an opposing freezer, and the two
	// freeze each other.
	b := board.New(board.Size8x8)
	herald := put(t, b, 1, catalog.Herald, board.White, "d4")
	ownPawn := put(t, b, 2, catalog.Pawn, board.White, "d5")
	enemyRook := put(t, b, 3, catalog.Rook, board.Black, "e4")
	fool := put(t, b, 4, catalog.Fool, board.Black, "c4")
	cham := put(t, b, 5, catalog.Chameleon, board.Black, "d3")
	put(t, b, 6, catalog.King, board.White, "h1")
	put(t, b, 7, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	if !ownPawn.IsFrozen {
		t.Error("herald should freeze its own pawn")
	}
	if !enemyRook.IsFrozen {
		t.Error("herald should freeze the enemy rook")
	}
	if fool.IsFrozen {
		t.Error("fool cannot be frozen")
	}
	if !herald.IsFrozen {
		t.Error("enemy chameleon should freeze the herald")
	}
	if !cham.IsFrozen {
		t.Error("the herald freezes any color, the chameleon included")
	}
	if moves := PseudoLegalMoves(b, enemyRook, nil); len(moves) != 0 {
		t.Errorf("frozen rook generated %d moves, want 0", len(moves))
	}

	// The pass is idempotent.
	RecomputeFreeze(b)
	if !ownPawn.IsFrozen || fool.IsFrozen {
		t.Error("second freeze pass changed the verdict")
	}
}
