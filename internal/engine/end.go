package engine

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
)

// evaluateEnd settles the game for the side to move, if it just
// ended. A side without a royal piece has lost outright. A side with
// no legal move has been checkmated when in check; otherwise the
// stalemate resolves by comparing victory points, with equality a
// draw.
func (g *GameState) evaluateEnd() {
	if g.Result != nil {
		return
	}
	mover := g.CurrentTurn
	if royal := g.Board.Royal(mover); royal == nil || !royal.OnBoard() {
		w := mover.Other()
		g.SetResult(Result{Type: ResultCheckmate, Winner: &w})
		return
	}
	if HasLegalMoves(g.Board, mover, g.EnPassantTarget) {
		return
	}
	if IsInCheck(g.Board, mover) {
		w := mover.Other()
		g.SetResult(Result{Type: ResultCheckmate, Winner: &w})
		return
	}
	wvp := g.Board.VictoryPoints(board.White)
	bvp := g.Board.VictoryPoints(board.Black)
	switch {
	case wvp > bvp:
		w := board.White
		g.SetResult(Result{Type: ResultStalemate, Winner: &w})
	case bvp > wvp:
		w := board.Black
		g.SetResult(Result{Type: ResultStalemate, Winner: &w})
	default:
		g.SetResult(Result{Type: ResultDrawVPTie})
	}
}
