// Package engine implements the fairy-chess rules: move generation,
// attack detection, check and legality filtering, special mechanics,
// move execution and end detection. The engine is pure: it holds no
// shared state, never talks to a transport, and reports rule
// violations as structured results instead of errors.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/liamiak1/hyper-fairy-chess/internal/board"
)

// Phase is the game-side lifecycle phase.
type Phase string

const (
	PhaseSetup     Phase = "setup"
	PhaseDraft     Phase = "draft"
	PhasePlacement Phase = "placement"
	PhasePlay      Phase = "play"
	PhaseEnded     Phase = "ended"
)

// ResultType classifies how a game ended.
type ResultType string

const (
	ResultCheckmate     ResultType = "checkmate"
	ResultStalemate     ResultType = "stalemate"
	ResultDrawVPTie     ResultType = "draw-vp-tie"
	ResultResignation   ResultType = "resignation"
	ResultTimeout       ResultType = "timeout"
	ResultDrawAgreement ResultType = "draw-agreement"
	ResultAborted       ResultType = "aborted"
)

// Result is the final verdict of a game. Winner is nil for draws and
// aborted games.
type Result struct {
	Type   ResultType   `json:"type"`
	Winner *board.Color `json:"winner"`
}

// PerColor stores one integer per side, keyed by board.Color.
type PerColor [2]int

// Get returns the value for the color.
func (p PerColor) Get(c board.Color) int {
	return p[c]
}

// Set stores the value for the color.
func (p *PerColor) Set(c board.Color, v int) {
	p[c] = v
}

// MarshalJSON encodes the pair under "white" and "black" keys.
func (p PerColor) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"white":%d,"black":%d}`, p[board.White], p[board.Black])), nil
}

// UnmarshalJSON decodes the pair from "white" and "black" keys.
func (p *PerColor) UnmarshalJSON(data []byte) error {
	var aux struct {
		White int `json:"white"`
		Black int `json:"black"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p[board.White] = aux.White
	p[board.Black] = aux.Black
	return nil
}

// MoveRecord describes one executed move.
type MoveRecord struct {
	Number    int            `json:"number"`
	Color     board.Color    `json:"color"`
	PieceID   int            `json:"pieceId"`
	TypeID    string         `json:"typeId"`
	From      board.Position `json:"from"`
	To        board.Position `json:"to"`
	Captured  []int          `json:"captured,omitempty"`
	Promotion string         `json:"promotion,omitempty"`
	Castle    bool           `json:"castle,omitempty"`
	Swap      bool           `json:"swap,omitempty"`
	EnPassant bool           `json:"enPassant,omitempty"`
}

// MoveRequest is a client's move attempt.
type MoveRequest struct {
	From      board.Position `json:"from"`
	To        board.Position `json:"to"`
	Promotion string         `json:"promotionPieceType,omitempty"`
}

// MoveError enumerates why a move attempt was rejected.
type MoveError string

const (
	MoveErrWrongPhase    MoveError = "wrong phase"
	MoveErrGameOver      MoveError = "game over"
	MoveErrNotYourTurn   MoveError = "not your turn"
	MoveErrNoPiece       MoveError = "no piece at source"
	MoveErrNotYourPiece  MoveError = "not your piece"
	MoveErrIllegal       MoveError = "illegal destination"
	MoveErrNeedPromotion MoveError = "promotion required"
	MoveErrBadPromotion  MoveError = "invalid promotion"
)

// MoveOutcome reports the result of a move attempt. Err is empty on
// success and Record describes the applied move.
type MoveOutcome struct {
	Err    MoveError
	Record *MoveRecord
}

// OK reports whether the move was applied.
func (o MoveOutcome) OK() bool {
	return o.Err == ""
}

// GameState is the authoritative state of one game.
type GameState struct {
	Phase           Phase             `json:"phase"`
	BoardSize       string            `json:"boardSize"`
	Board           *board.Board      `json:"board"`
	Budget          PerColor          `json:"budget"`
	RemainingBudget PerColor          `json:"remainingBudget"`
	VictoryPoints   PerColor          `json:"victoryPoints"`
	CurrentTurn     board.Color       `json:"currentTurn"`
	TurnNumber      int               `json:"turnNumber"`
	EnPassantTarget *board.Position   `json:"enPassantTarget"`
	InCheck         *board.Color      `json:"inCheck"`
	MoveHistory     []MoveRecord      `json:"moveHistory"`
	Result          *Result           `json:"result"`
}

// NewGame returns a game in the setup phase with an empty board and
// the same budget for both sides.
func NewGame(size board.Size, budget int) *GameState {
	g := &GameState{
		Phase:       PhaseSetup,
		BoardSize:   size.String(),
		Board:       board.New(size),
		CurrentTurn: board.White,
	}
	g.Budget.Set(board.White, budget)
	g.Budget.Set(board.Black, budget)
	g.RemainingBudget = g.Budget
	return g
}

// BeginDraft moves the game into the draft phase.
func (g *GameState) BeginDraft() {
	g.Phase = PhaseDraft
}

// BeginPlacement moves the game into the placement phase.
func (g *GameState) BeginPlacement() {
	g.Phase = PhasePlacement
}

// BeginPlay starts play: white to move, turn one, freeze and check
// state computed from the placed board.
func (g *GameState) BeginPlay() {
	g.Phase = PhasePlay
	g.CurrentTurn = board.White
	g.TurnNumber = 1
	RecomputeFreeze(g.Board)
	g.refreshDerived()
}

// SetResult ends the game with a result built outside the rules
// engine (resignation, timeout, draw agreement, abort). Legality is
// not consulted.
func (g *GameState) SetResult(r Result) {
	res := r
	g.Result = &res
	g.Phase = PhaseEnded
}

// Resign ends the game with the resigning player's opponent winning.
func (g *GameState) Resign(c board.Color) {
	w := c.Other()
	g.SetResult(Result{Type: ResultResignation, Winner: &w})
}

// TimeoutLoss ends the game with the timed-out player's opponent
// winning.
func (g *GameState) TimeoutLoss(c board.Color) {
	w := c.Other()
	g.SetResult(Result{Type: ResultTimeout, Winner: &w})
}

// AgreeDraw ends the game as a draw by agreement.
func (g *GameState) AgreeDraw() {
	g.SetResult(Result{Type: ResultDrawAgreement})
}

// Abort terminates the game with no winner after an internal fault.
func (g *GameState) Abort() {
	g.SetResult(Result{Type: ResultAborted})
}

// refreshDerived recomputes victory points and the in-check flag from
// the board.
func (g *GameState) refreshDerived() {
	g.VictoryPoints.Set(board.White, g.Board.VictoryPoints(board.White))
	g.VictoryPoints.Set(board.Black, g.Board.VictoryPoints(board.Black))
	g.InCheck = nil
	for _, c := range [2]board.Color{board.White, board.Black} {
		if IsInCheck(g.Board, c) {
			cc := c
			g.InCheck = &cc
			break
		}
	}
}
