package protocol

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/draft"
	"github.com/liamiak1/hyper-fairy-chess/internal/engine"
)

// RoomSettings configures a room at creation time. MoveTimeLimit is a
// reserved field; nil means no per-move clock.
type RoomSettings struct {
	Budget         int    `json:"budget"`
	BoardSize      string `json:"boardSize"`
	DraftTimeLimit int    `json:"draftTimeLimit"`
	MoveTimeLimit  *int   `json:"moveTimeLimit,omitempty"`
}

// CreateRoom opens a new room with the sender as its first player.
type CreateRoom struct {
	Envelope
	PlayerName string       `json:"playerName"`
	Settings   RoomSettings `json:"settings"`
}

// JoinRoom enters an existing room by code.
type JoinRoom struct {
	Envelope
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

// LeaveRoom abandons the room. During a live game it counts as
// resignation.
type LeaveRoom struct {
	Envelope
}

// DraftSubmit carries the sender's army selection.
type DraftSubmit struct {
	Envelope
	Draft []draft.Selection `json:"draft"`
}

// PlacePiece drops one pool piece onto a square.
type PlacePiece struct {
	Envelope
	PieceID  int            `json:"pieceId"`
	Position board.Position `json:"position"`
}

// MakeMove plays one move; the embedded request carries from, to and
// the optional promotion choice.
type MakeMove struct {
	Envelope
	engine.MoveRequest
}

// OfferDraw proposes a draw to the opponent.
type OfferDraw struct {
	Envelope
}

// RespondDraw answers a pending draw offer.
type RespondDraw struct {
	Envelope
	Accept bool `json:"accept"`
}

// Resign concedes the game.
type Resign struct {
	Envelope
}

// Reconnect resumes a dropped session by room code and player id.
type Reconnect struct {
	Envelope
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

// Ping requests a PONG with the server clock.
type Ping struct {
	Envelope
}
