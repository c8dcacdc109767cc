package engine

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// moveEffects summarizes what applying a move did to the board.
type moveEffects struct {
	captured  []*board.PieceInstance
	castle    bool
	swap      bool
	enPassant bool
}

// applyBoardMove performs an already validated move on b: it resolves
// captures, relocates the mover and any castle or swap partner,
// applies the promotion overwrite, then rebuilds the index and
// recomputes freeze. Castling is recognized as a royal two-file step
// toward a qualifying partner, ahead of any same-looking plain step.
func applyBoardMove(b *board.Board, pc *board.PieceInstance, to board.Position, ep *board.Position, promotion string) moveEffects {
	from := *pc.Position
	t := pc.Type()

	if t.IsRoyal && !pc.HasMoved && to.Rank == from.Rank && abs(to.File-from.File) == 2 {
		if partner := castlePartner(b, pc, sign(to.File-from.File)); partner != nil {
			setPos(partner, from.Add(sign(to.File-from.File), 0))
			partner.HasMoved = true
			setPos(pc, to)
			pc.HasMoved = true
			b.Rebuild()
			RecomputeFreeze(b)
			return moveEffects{castle: true}
		}
	}

	if occ := b.At(to); occ != nil && occ.Owner == pc.Owner &&
		t.Movement.HasSpecial(catalog.SpecialSwapAdjacent) && from.Chebyshev(to) == 1 {
		setPos(occ, from)
		setPos(pc, to)
		pc.HasMoved = true
		b.Rebuild()
		RecomputeFreeze(b)
		return moveEffects{swap: true}
	}

	eff := moveEffects{captured: resolveCaptures(b, pc, from, to, ep)}
	eff.enPassant = len(eff.captured) > 0 && ep != nil && to == *ep && b.At(to) == nil &&
		t.Movement.HasSpecial(catalog.SpecialPawnCaptureDiagonal)
	for _, v := range eff.captured {
		v.Position = nil
		v.IsFrozen = false
	}
	setPos(pc, to)
	pc.HasMoved = true
	if promotion != "" {
		pc.TypeID = promotion
	}
	b.Rebuild()
	RecomputeFreeze(b)
	return eff
}

func setPos(pc *board.PieceInstance, p board.Position) {
	q := p
	pc.Position = &q
}

// ApplyMove validates and executes one move for color c. Rule
// violations come back in the outcome; the board mutates only on
// success.
func (g *GameState) ApplyMove(c board.Color, req MoveRequest) MoveOutcome {
	if g.Phase != PhasePlay {
		return MoveOutcome{Err: MoveErrWrongPhase}
	}
	if g.Result != nil {
		return MoveOutcome{Err: MoveErrGameOver}
	}
	if c != g.CurrentTurn {
		return MoveOutcome{Err: MoveErrNotYourTurn}
	}
	pc := g.Board.At(req.From)
	if pc == nil {
		return MoveOutcome{Err: MoveErrNoPiece}
	}
	if pc.Owner != c {
		return MoveOutcome{Err: MoveErrNotYourPiece}
	}
	legal := false
	for _, p := range LegalMoves(g.Board, pc, g.EnPassantTarget) {
		if p == req.To {
			legal = true
			break
		}
	}
	if !legal {
		return MoveOutcome{Err: MoveErrIllegal}
	}

	promotion := ""
	if PromotionRequired(g.Board, pc, req.To) {
		if req.Promotion == "" {
			return MoveOutcome{Err: MoveErrNeedPromotion}
		}
		if !validPromotion(PromotionOptions(g.Board, pc), req.Promotion) {
			return MoveOutcome{Err: MoveErrBadPromotion}
		}
		promotion = req.Promotion
	}

	from := *pc.Position
	typeID := pc.TypeID
	eff := applyBoardMove(g.Board, pc, req.To, g.EnPassantTarget, promotion)

	g.EnPassantTarget = nil
	if !eff.castle && !eff.swap &&
		catalog.MustGet(typeID).Movement.HasSpecial(catalog.SpecialPawnForward) &&
		req.To.File == from.File && abs(req.To.Rank-from.Rank) == 2 {
		mid := board.Position{File: from.File, Rank: (from.Rank + req.To.Rank) / 2}
		g.EnPassantTarget = &mid
	}

	rec := MoveRecord{
		Number:    g.TurnNumber,
		Color:     c,
		PieceID:   pc.ID,
		TypeID:    typeID,
		From:      from,
		To:        req.To,
		Promotion: promotion,
		Castle:    eff.castle,
		Swap:      eff.swap,
		EnPassant: eff.enPassant,
	}
	for _, v := range eff.captured {
		rec.Captured = append(rec.Captured, v.ID)
	}
	g.MoveHistory = append(g.MoveHistory, rec)

	if c == board.Black {
		g.TurnNumber++
	}
	g.CurrentTurn = c.Other()
	g.refreshDerived()
	g.evaluateEnd()
	return MoveOutcome{Record: &g.MoveHistory[len(g.MoveHistory)-1]}
}
