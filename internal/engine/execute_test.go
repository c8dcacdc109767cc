package engine

import (
	"testing"

	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

func TestApplyMoveValidation(t *testing.T) {
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Pawn, board.White, "e2")
	put(t, b, 2, catalog.King, board.White, "e1")
	put(t, b, 3, catalog.Pawn, board.Black, "d7")
	put(t, b, 4, catalog.King, board.Black, "e8")
	g := playing(b)

	g.Phase = PhaseDraft
	if out := g.ApplyMove(board.White, req(t, "e2", "e3")); out.Err != MoveErrWrongPhase {
		t.Errorf("draft phase: got %q, want %q", out.Err, MoveErrWrongPhase)
	}
	g.Phase = PhasePlay

	g.Result = &Result{Type: ResultDrawAgreement}
	if out := g.ApplyMove(board.White, req(t, "e2", "e3")); out.Err != MoveErrGameOver {
		t.Errorf("finished game: got %q, want %q", out.Err, MoveErrGameOver)
	}
	g.Result = nil

	if out := g.ApplyMove(board.Black, req(t, "d7", "d6")); out.Err != MoveErrNotYourTurn {
		t.Errorf("out of turn: got %q, want %q", out.Err, MoveErrNotYourTurn)
	}
	if out := g.ApplyMove(board.White, req(t, "d5", "d6")); out.Err != MoveErrNoPiece {
		t.Errorf("empty source: got %q, want %q", out.Err, MoveErrNoPiece)
	}
	if out := g.ApplyMove(board.White, req(t, "d7", "d6")); out.Err != MoveErrNotYourPiece {
		t.Errorf("enemy piece: got %q, want %q", out.Err, MoveErrNotYourPiece)
	}
	if out := g.ApplyMove(board.White, req(t, "e2", "e5")); out.Err != MoveErrIllegal {
		t.Errorf("bad destination: got %q, want %q", out.Err, MoveErrIllegal)
	}

	out := g.ApplyMove(board.White, req(t, "e2", "e4"))
	if !out.OK() {
		t.Fatalf("legal push rejected: %s", out.Err)
	}
	if g.CurrentTurn != board.Black {
		t.Error("turn should pass to black")
	}
}

func TestCoordinatorCapturesBothPairings(t *testing.T) {
	// White: Coordinator d2, King a2. Black: King h8, Knight h5,
	// Bishop d8, Queen e5. Coordinator to d5 pairs with the black king
	// on h5 and d8, taking knight and bishop in one move; the queen
	// stands on neither pairing square and survives.
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Coordinator, board.White, "d2")
	put(t, b, 2, catalog.King, board.White, "a2")
	put(t, b, 3, catalog.King, board.Black, "h8")
	knight := put(t, b, 4, catalog.Knight, board.Black, "h5")
	bishop := put(t, b, 5, catalog.Bishop, board.Black, "d8")
	queen := put(t, b, 6, catalog.Queen, board.Black, "e5")
	g := playing(b)

	out := g.ApplyMove(board.White, req(t, "d2", "d5"))
	if !out.OK() {
		t.Fatalf("move rejected: %s", out.Err)
	}
	if knight.OnBoard() {
		t.Error("knight on h5 shares the king's file, should be taken")
	}
	if bishop.OnBoard() {
		t.Error("bishop on d8 shares the king's rank, should be taken")
	}
	if !queen.OnBoard() {
		t.Error("queen stands on no pairing square")
	}
	if len(out.Record.Captured) != 2 {
		t.Errorf("captured %d, want 2", len(out.Record.Captured))
	}
	if g.InCheck == nil || *g.InCheck != board.Black {
		t.Error("the coordinator now pairs onto h8 itself: black is in check")
	}
	if g.Result != nil {
		t.Error("queen takes on d5, the game continues")
	}
}

func TestWithdrawerCapturesOnRetreat(t *testing.T) {
	// The withdrawer takes the adjacent knight only by moving straight
	// away from it.
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Withdrawer, board.White, "d4")
	put(t, b, 2, catalog.King, board.White, "a1")
	knight := put(t, b, 3, catalog.Knight, board.Black, "e5")
	put(t, b, 4, catalog.King, board.Black, "h8")
	g := playing(b)

	out := g.ApplyMove(board.White, req(t, "d4", "d1"))
	if !out.OK() {
		t.Fatalf("sideways retreat rejected: %s", out.Err)
	}
	if !knight.OnBoard() || len(out.Record.Captured) != 0 {
		t.Error("moving off-line captures nothing")
	}

	b2 := board.New(board.Size8x8)
	put(t, b2, 1, catalog.Withdrawer, board.White, "d4")
	put(t, b2, 2, catalog.King, board.White, "a1")
	knight2 := put(t, b2, 3, catalog.Knight, board.Black, "e5")
	put(t, b2, 4, catalog.King, board.Black, "h8")
	g2 := playing(b2)

	out = g2.ApplyMove(board.White, req(t, "d4", "b2"))
	if !out.OK() {
		t.Fatalf("retreat rejected: %s", out.Err)
	}
	if knight2.OnBoard() {
		t.Error("withdrawing along the line should capture the knight")
	}
}

func TestBoxerCapturesAgainstAlly(t *testing.T) {
	// White: Boxer b3, Knight d5, King a1. Black: Pawn d4, Rook e3,
	// King h8. Boxer to d3 boxes the pawn against the knight; the rook
	// has no white piece behind it and survives.
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Boxer, board.White, "b3")
	put(t, b, 2, catalog.Knight, board.White, "d5")
	put(t, b, 3, catalog.King, board.White, "a1")
	pawn := put(t, b, 4, catalog.Pawn, board.Black, "d4")
	rook := put(t, b, 5, catalog.Rook, board.Black, "e3")
	put(t, b, 6, catalog.King, board.Black, "h8")
	g := playing(b)

	out := g.ApplyMove(board.White, req(t, "b3", "d3"))
	if !out.OK() {
		t.Fatalf("move rejected: %s", out.Err)
	}
	if pawn.OnBoard() {
		t.Error("pawn should be boxed against the knight on d5")
	}
	if !rook.OnBoard() {
		t.Error("nothing behind the rook, no box")
	}
	if len(out.Record.Captured) != 1 {
		t.Errorf("captured %d, want 1", len(out.Record.Captured))
	}
}

func TestThiefStealsBeyondLanding(t *testing.T) {
	// The thief landing on e5 takes the piece one square further along
	// its line; landing short of nothing takes nothing.
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Thief, board.White, "b2")
	put(t, b, 2, catalog.King, board.White, "a1")
	put(t, b, 3, catalog.King, board.Black, "h8")
	g := playing(b)

	out := g.ApplyMove(board.White, req(t, "b2", "e2"))
	if !out.OK() {
		t.Fatalf("quiet slide rejected: %s", out.Err)
	}
	if len(out.Record.Captured) != 0 {
		t.Error("f2 is empty, nothing to steal")
	}

	b2 := board.New(board.Size8x8)
	thief := put(t, b2, 1, catalog.Thief, board.White, "b2")
	put(t, b2, 2, catalog.King, board.White, "a1")
	bishop := put(t, b2, 3, catalog.Bishop, board.Black, "f6")
	put(t, b2, 4, catalog.King, board.Black, "h8")
	g2 := playing(b2)

	out = g2.ApplyMove(board.White, req(t, "b2", "e5"))
	if !out.OK() {
		t.Fatalf("steal rejected: %s", out.Err)
	}
	if bishop.OnBoard() {
		t.Error("bishop on f6 should be stolen from e5")
	}
	if got := b2.At(sq(t, "e5")); got != thief {
		t.Error("thief stays on its landing square")
	}
}

func TestCastleExecution(t *testing.T) {
	// Kingside with the rook home on h1.
	b := board.New(board.Size8x8)
	king := put(t, b, 1, catalog.King, board.White, "e1")
	rook := put(t, b, 2, catalog.Rook, board.White, "h1")
	put(t, b, 3, catalog.King, board.Black, "h8")
	g := playing(b)

	out := g.ApplyMove(board.White, req(t, "e1", "g1"))
	if !out.OK() {
		t.Fatalf("castle rejected: %s", out.Err)
	}
	if !out.Record.Castle {
		t.Error("record should mark the castle")
	}
	if king.Position.String() != "g1" || rook.Position.String() != "f1" {
		t.Errorf("after castling: king %v rook %v", king.Position, rook.Position)
	}
	if !king.HasMoved || !rook.HasMoved {
		t.Error("both movers should be marked moved")
	}

	// A cannon two files away can be the partner: the king lands on
	// its square.
	b2 := board.New(board.Size8x8)
	king2 := put(t, b2, 1, catalog.King, board.White, "e1")
	cannon := put(t, b2, 2, catalog.Cannon, board.White, "g1")
	put(t, b2, 3, catalog.King, board.Black, "h8")
	g2 := playing(b2)

	out = g2.ApplyMove(board.White, req(t, "e1", "g1"))
	if !out.OK() {
		t.Fatalf("cannon castle rejected: %s", out.Err)
	}
	if king2.Position.String() != "g1" || cannon.Position.String() != "f1" {
		t.Errorf("after castling: king %v cannon %v", king2.Position, cannon.Position)
	}
}

func TestCastleNeedsUnmovedPartner(t *testing.T) {
	b := board.New(board.Size8x8)
	king := put(t, b, 1, catalog.King, board.White, "e1")
	rook := put(t, b, 2, catalog.Rook, board.White, "h1")
	put(t, b, 3, catalog.King, board.Black, "h8")
	rook.HasMoved = true
	RecomputeFreeze(b)

	if destsOf(b, king, nil)["g1"] {
		t.Error("no castle with a moved partner")
	}
}

func TestEnPassantCycle(t *testing.T) {
	// White: Pawn e2, King h1. Black: Pawn d4, King h8. The double
	// push opens e3 for one move and the black pawn takes through it.
	b := board.New(board.Size8x8)
	white := put(t, b, 1, catalog.Pawn, board.White, "e2")
	put(t, b, 2, catalog.King, board.White, "h1")
	black := put(t, b, 3, catalog.Pawn, board.Black, "d4")
	put(t, b, 4, catalog.King, board.Black, "h8")
	g := playing(b)

	out := g.ApplyMove(board.White, req(t, "e2", "e4"))
	if !out.OK() {
		t.Fatalf("double push rejected: %s", out.Err)
	}
	if g.EnPassantTarget == nil || g.EnPassantTarget.String() != "e3" {
		t.Fatalf("en passant target = %v, want e3", g.EnPassantTarget)
	}

	out = g.ApplyMove(board.Black, req(t, "d4", "e3"))
	if !out.OK() {
		t.Fatalf("en passant capture rejected: %s", out.Err)
	}
	if !out.Record.EnPassant {
		t.Error("record should mark en passant")
	}
	if white.OnBoard() {
		t.Error("the passed pawn should be captured")
	}
	if black.Position.String() != "e3" {
		t.Errorf("capturing pawn on %v, want e3", black.Position)
	}
	if g.EnPassantTarget != nil {
		t.Error("target should be cleared after the reply")
	}
}

func TestFoolCannotBeTakenEnPassant(t *testing.T) {
	// The fool double-steps like a pawn, but it cannot be captured,
	// en passant included.
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Fool, board.White, "e2")
	put(t, b, 2, catalog.King, board.White, "h1")
	put(t, b, 3, catalog.Pawn, board.Black, "d4")
	put(t, b, 4, catalog.King, board.Black, "h8")
	g := playing(b)

	out := g.ApplyMove(board.White, req(t, "e2", "e4"))
	if !out.OK() {
		t.Fatalf("fool push rejected: %s", out.Err)
	}
	if out = g.ApplyMove(board.Black, req(t, "d4", "e3")); out.Err != MoveErrIllegal {
		t.Errorf("capturing the fool en passant: got %q, want %q", out.Err, MoveErrIllegal)
	}
}

func TestPromotionChoices(t *testing.T) {
	// Options come from the piece types on the board: here only the
	// rook qualifies, so "queen" is refused.
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Pawn, board.White, "e7")
	put(t, b, 2, catalog.King, board.White, "h1")
	put(t, b, 3, catalog.Rook, board.Black, "a5")
	put(t, b, 4, catalog.King, board.Black, "a4")
	g := playing(b)

	if out := g.ApplyMove(board.White, req(t, "e7", "e8")); out.Err != MoveErrNeedPromotion {
		t.Fatalf("missing choice: got %q, want %q", out.Err, MoveErrNeedPromotion)
	}
	r := req(t, "e7", "e8")
	r.Promotion = catalog.Queen
	if out := g.ApplyMove(board.White, r); out.Err != MoveErrBadPromotion {
		t.Fatalf("no queen on the board: got %q, want %q", out.Err, MoveErrBadPromotion)
	}
	r.Promotion = catalog.Rook
	out := g.ApplyMove(board.White, r)
	if !out.OK() {
		t.Fatalf("rook promotion rejected: %s", out.Err)
	}
	if got := b.At(sq(t, "e8")); got == nil || got.TypeID != catalog.Rook {
		t.Errorf("promoted piece = %v, want a rook", got)
	}
	if out.Record.Promotion != catalog.Rook {
		t.Error("record should carry the promotion")
	}
}

func TestPromotionFallbackAndFool(t *testing.T) {
	// With no candidate types on the board the classic four are
	// offered.
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Pawn, board.White, "e7")
	put(t, b, 2, catalog.King, board.White, "h1")
	put(t, b, 3, catalog.King, board.Black, "a4")
	g := playing(b)

	r := req(t, "e7", "e8")
	r.Promotion = catalog.Queen
	if out := g.ApplyMove(board.White, r); !out.OK() {
		t.Fatalf("fallback queen rejected: %s", out.Err)
	}

	// The fool promotes to the jester and nothing else.
	b2 := board.New(board.Size8x8)
	put(t, b2, 1, catalog.Fool, board.White, "e7")
	put(t, b2, 2, catalog.King, board.White, "h1")
	put(t, b2, 3, catalog.Queen, board.Black, "a6")
	put(t, b2, 4, catalog.King, board.Black, "a4")
	g2 := playing(b2)

	r = req(t, "e7", "e8")
	r.Promotion = catalog.Queen
	if out := g2.ApplyMove(board.White, r); out.Err != MoveErrBadPromotion {
		t.Fatalf("fool ignores the board types: got %q", out.Err)
	}
	r.Promotion = catalog.Jester
	out := g2.ApplyMove(board.White, r)
	if !out.OK() {
		t.Fatalf("jester promotion rejected: %s", out.Err)
	}
	if got := b2.At(sq(t, "e8")); got == nil || got.TypeID != catalog.Jester {
		t.Errorf("promoted piece = %v, want a jester", got)
	}
	if got := g2.VictoryPoints.Get(board.White); got != -15 {
		t.Errorf("white victory points = %d, want -15 with a jester out", got)
	}
}

func TestSwapExecution(t *testing.T) {
	// The chamberlain trades places with an adjacent friendly rook;
	// only the chamberlain is marked moved.
	b := board.New(board.Size8x8)
	cham := put(t, b, 1, catalog.Chamberlain, board.White, "d1")
	rook := put(t, b, 2, catalog.Rook, board.White, "d2")
	put(t, b, 3, catalog.King, board.White, "h1")
	put(t, b, 4, catalog.King, board.Black, "h8")
	g := playing(b)

	out := g.ApplyMove(board.White, req(t, "d1", "d2"))
	if !out.OK() {
		t.Fatalf("swap rejected: %s", out.Err)
	}
	if !out.Record.Swap {
		t.Error("record should mark the swap")
	}
	if cham.Position.String() != "d2" || rook.Position.String() != "d1" {
		t.Errorf("after swap: chamberlain %v rook %v", cham.Position, rook.Position)
	}
	if !cham.HasMoved {
		t.Error("the mover is marked moved")
	}
	if rook.HasMoved {
		t.Error("the swapped partner keeps its unmoved state")
	}
}

func TestCheckmateEndsGame(t *testing.T) {
	// White: Rook a7, King a1. Black: King h8, Pawns g7 h7. Ra8 is
	// mate on the back rank.
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Rook, board.White, "a7")
	put(t, b, 2, catalog.King, board.White, "a1")
	put(t, b, 3, catalog.King, board.Black, "h8")
	put(t, b, 4, catalog.Pawn, board.Black, "g7")
	put(t, b, 5, catalog.Pawn, board.Black, "h7")
	g := playing(b)

	out := g.ApplyMove(board.White, req(t, "a7", "a8"))
	if !out.OK() {
		t.Fatalf("mating move rejected: %s", out.Err)
	}
	if g.Result == nil {
		t.Fatal("game should be over")
	}
	if g.Result.Type != ResultCheckmate {
		t.Errorf("result %q, want %q", g.Result.Type, ResultCheckmate)
	}
	if g.Result.Winner == nil || *g.Result.Winner != board.White {
		t.Error("white delivered the mate")
	}
	if g.Phase != PhaseEnded {
		t.Errorf("phase %q, want %q", g.Phase, PhaseEnded)
	}
}

func TestStalemateScoredByVictoryPoints(t *testing.T) {
	// White: Queen c2, King a1. Black: King a8. Qc7 leaves black no
	// move and no check; white is ahead on points and takes the win.
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Queen, board.White, "c2")
	put(t, b, 2, catalog.King, board.White, "a1")
	put(t, b, 3, catalog.King, board.Black, "a8")
	g := playing(b)

	out := g.ApplyMove(board.White, req(t, "c2", "c7"))
	if !out.OK() {
		t.Fatalf("move rejected: %s", out.Err)
	}
	if g.Result == nil || g.Result.Type != ResultStalemate {
		t.Fatalf("result %+v, want stalemate", g.Result)
	}
	if g.Result.Winner == nil || *g.Result.Winner != board.White {
		t.Error("white leads on victory points")
	}
}

func TestStalemateTieIsDrawn(t *testing.T) {
	// White: Herald d7, King e4. Black: King a8, Knight c8. Herald to
	// b7 freezes everything black; thirty points each, drawn game.
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Herald, board.White, "d7")
	put(t, b, 2, catalog.King, board.White, "e4")
	put(t, b, 3, catalog.King, board.Black, "a8")
	put(t, b, 4, catalog.Knight, board.Black, "c8")
	g := playing(b)

	out := g.ApplyMove(board.White, req(t, "d7", "b7"))
	if !out.OK() {
		t.Fatalf("herald move rejected: %s", out.Err)
	}
	if g.Result == nil || g.Result.Type != ResultDrawVPTie {
		t.Fatalf("result %+v, want a victory-point tie", g.Result)
	}
	if g.Result.Winner != nil {
		t.Error("a tie has no winner")
	}
}

func TestTurnBookkeeping(t *testing.T) {
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.Pawn, board.White, "e2")
	put(t, b, 2, catalog.King, board.White, "e1")
	put(t, b, 3, catalog.Pawn, board.Black, "d7")
	put(t, b, 4, catalog.King, board.Black, "e8")
	g := playing(b)

	if out := g.ApplyMove(board.White, req(t, "e2", "e3")); !out.OK() {
		t.Fatalf("white move rejected: %s", out.Err)
	}
	if g.TurnNumber != 1 {
		t.Errorf("after white: turn %d, want 1", g.TurnNumber)
	}
	if out := g.ApplyMove(board.Black, req(t, "d7", "d6")); !out.OK() {
		t.Fatalf("black move rejected: %s", out.Err)
	}
	if g.TurnNumber != 2 {
		t.Errorf("after black: turn %d, want 2", g.TurnNumber)
	}
	if g.CurrentTurn != board.White {
		t.Error("white to move again")
	}
	if len(g.MoveHistory) != 2 {
		t.Errorf("history length %d, want 2", len(g.MoveHistory))
	}
	if g.MoveHistory[0].Number != 1 || g.MoveHistory[1].Number != 1 {
		t.Error("both half-moves belong to turn 1")
	}
}

func TestLegalMovesNeverLeaveCheck(t *testing.T) {
	// A pinned position: every legal move of every white piece must be
	// pseudo-legal and must leave white out of check.
	b := board.New(board.Size8x8)
	put(t, b, 1, catalog.King, board.White, "e1")
	put(t, b, 2, catalog.Bishop, board.White, "e2")
	put(t, b, 3, catalog.Knight, board.White, "g1")
	put(t, b, 4, catalog.Rook, board.Black, "e8")
	put(t, b, 5, catalog.Withdrawer, board.Black, "d3")
	put(t, b, 6, catalog.King, board.Black, "h8")
	RecomputeFreeze(b)

	for _, pc := range b.PiecesOf(board.White) {
		pseudo := destsOf(b, pc, nil)
		for _, to := range LegalMoves(b, pc, nil) {
			if !pseudo[to.String()] {
				t.Errorf("%s to %s is legal but not pseudo-legal", pc, to)
			}
			probe := b.Clone()
			applyBoardMove(probe, probe.PieceByID(pc.ID), to, nil, "")
			if IsInCheck(probe, board.White) {
				t.Errorf("%s to %s leaves white in check", pc, to)
			}
		}
	}

	// The bishop is pinned to the e-file and bishops cannot stay on a
	// file, so it has no legal move at all.
	bishop := b.PieceByID(2)
	if moves := LegalMoves(b, bishop, nil); len(moves) != 0 {
		t.Errorf("pinned bishop has moves %v, want none", moves)
	}
}
