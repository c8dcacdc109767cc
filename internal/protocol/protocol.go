// Package protocol defines the wire messages exchanged between the
// server and its clients. Every message is a flat JSON object carrying
// a type tag and a millisecond timestamp next to its payload fields;
// the typed structs here embed Envelope so the header and the payload
// marshal as siblings.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Inbound message types.
const (
	TypeCreateRoom  = "CREATE_ROOM"
	TypeJoinRoom    = "JOIN_ROOM"
	TypeLeaveRoom   = "LEAVE_ROOM"
	TypeDraftSubmit = "DRAFT_SUBMIT"
	TypePlacePiece  = "PLACE_PIECE"
	TypeMakeMove    = "MAKE_MOVE"
	TypeOfferDraw   = "OFFER_DRAW"
	TypeRespondDraw = "RESPOND_DRAW"
	TypeResign      = "RESIGN"
	TypeReconnect   = "RECONNECT"
	TypePing        = "PING"
)

// Outbound message types.
const (
	TypeRoomCreated        = "ROOM_CREATED"
	TypeRoomJoined         = "ROOM_JOINED"
	TypePlayerJoined       = "PLAYER_JOINED"
	TypePlayerLeft         = "PLAYER_LEFT"
	TypeRoomError          = "ROOM_ERROR"
	TypeDraftCountdown     = "DRAFT_COUNTDOWN"
	TypeDraftStart         = "DRAFT_START"
	TypeDraftSubmitted     = "DRAFT_SUBMITTED"
	TypeDraftRejected      = "DRAFT_REJECTED"
	TypeDraftReveal        = "DRAFT_REVEAL"
	TypeDraftTimeout       = "DRAFT_TIMEOUT"
	TypePlacementStart     = "PLACEMENT_START"
	TypePiecePlaced        = "PIECE_PLACED"
	TypePlacementError     = "PLACEMENT_ERROR"
	TypeGameStart          = "GAME_START"
	TypeMoveMade           = "MOVE_MADE"
	TypeMoveRejected       = "MOVE_REJECTED"
	TypeGameOver           = "GAME_OVER"
	TypePlayerDisconnected = "PLAYER_DISCONNECTED"
	TypePlayerReconnected  = "PLAYER_RECONNECTED"
	TypeSyncState          = "SYNC_STATE"
	TypePong               = "PONG"
	TypeDrawOffered        = "DRAW_OFFERED"
)

// ROOM_ERROR codes.
const (
	RoomErrNotFound       = "NOT_FOUND"
	RoomErrFull           = "FULL"
	RoomErrAlreadyStarted = "ALREADY_STARTED"
	RoomErrInvalidCode    = "INVALID_CODE"
)

// MOVE_REJECTED reasons.
const (
	RejectInvalidMove = "INVALID_MOVE"
	RejectNotYourTurn = "NOT_YOUR_TURN"
	RejectGameOver    = "GAME_OVER"
)

// DRAFT_REJECTED reasons.
const (
	DraftRejectNotDrafting      = "NOT_DRAFTING"
	DraftRejectAlreadySubmitted = "ALREADY_SUBMITTED"
	DraftRejectInvalidArmy      = "INVALID_ARMY"
)

// PLAYER_LEFT reasons.
const (
	LeftReasonLeft         = "left"
	LeftReasonDisconnected = "disconnected"
	LeftReasonTimeout      = "timeout"
)

// Envelope is the header shared by every message.
type Envelope struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
}

// MessageType identifies the message independent of its Go type. Every
// outbound struct embeds Envelope, so this is available on all of them.
func (e Envelope) MessageType() string {
	return e.Type
}

// NewEnvelope stamps a header with the given type and time.
func NewEnvelope(typ string, now time.Time) Envelope {
	return Envelope{Type: typ, Timestamp: now.UnixMilli()}
}

// ErrMissingType marks a structurally valid message with no type tag.
var ErrMissingType = errors.New("message has no type")

// DecodeEnvelope reads the header of a raw message so the caller can
// route on the type before decoding the full payload.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("malformed message: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, ErrMissingType
	}
	return env, nil
}
