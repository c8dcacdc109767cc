package protocol

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/draft"
	"github.com/liamiak1/hyper-fairy-chess/internal/engine"
	"github.com/liamiak1/hyper-fairy-chess/internal/placement"
)

// PlayerInfo is the public view of a room member.
type PlayerInfo struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Color     board.Color `json:"color"`
	Connected bool        `json:"connected"`
}

// PlacementView is the wire form of the placement phase.
type PlacementView struct {
	CurrentPlacer board.Color            `json:"currentPlacer"`
	WhitePool     []*board.PieceInstance `json:"whitePool"`
	BlackPool     []*board.PieceInstance `json:"blackPool"`
}

// NewPlacementView snapshots a placement state for the wire.
func NewPlacementView(st *placement.State) *PlacementView {
	return &PlacementView{
		CurrentPlacer: st.CurrentPlacer,
		WhitePool:     st.Pool(board.White),
		BlackPool:     st.Pool(board.Black),
	}
}

// DraftProgress is the wire form of an ongoing draft: the deadline and
// who has already submitted, never the submitted content.
type DraftProgress struct {
	Budget    int      `json:"budget"`
	Deadline  int64    `json:"deadline"`
	Submitted []string `json:"submitted"`
}

// RoomCreated confirms room creation to its first player.
type RoomCreated struct {
	Envelope
	RoomCode string       `json:"roomCode"`
	PlayerID string       `json:"playerId"`
	Role     board.Color  `json:"role"`
	Settings RoomSettings `json:"settings"`
}

// RoomJoined confirms entry to the joiner.
type RoomJoined struct {
	Envelope
	RoomCode string       `json:"roomCode"`
	PlayerID string       `json:"playerId"`
	Role     board.Color  `json:"role"`
	Settings RoomSettings `json:"settings"`
	Players  []PlayerInfo `json:"players"`
	Phase    string       `json:"phase"`
}

// PlayerJoined announces a new member to the rest of the room.
type PlayerJoined struct {
	Envelope
	Player PlayerInfo `json:"player"`
}

// PlayerLeft announces a departure and why.
type PlayerLeft struct {
	Envelope
	PlayerID string `json:"playerId"`
	Reason   string `json:"reason"`
}

// RoomError reports a failed room operation to the sender.
type RoomError struct {
	Envelope
	Code    string `json:"error"`
	Message string `json:"message"`
}

// DraftCountdown ticks down the seconds before drafting opens.
type DraftCountdown struct {
	Envelope
	TimeRemaining int `json:"timeRemaining"`
}

// DraftStart opens the draft phase.
type DraftStart struct {
	Envelope
	Budget    int    `json:"budget"`
	BoardSize string `json:"boardSize"`
	TimeLimit int    `json:"timeLimit"`
}

// DraftSubmitted reveals that a player has submitted, not what.
type DraftSubmitted struct {
	Envelope
	PlayerID string `json:"playerId"`
}

// DraftRejected reports an invalid or duplicate submission to its
// sender; the room keeps whatever was accepted before.
type DraftRejected struct {
	Envelope
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// DraftReveal shows both armies once drafting closes.
type DraftReveal struct {
	Envelope
	WhiteDraft *draft.PlayerDraft `json:"whiteDraft"`
	BlackDraft *draft.PlayerDraft `json:"blackDraft"`
}

// DraftTimeout announces that a player's missing draft was replaced by
// the fallback army.
type DraftTimeout struct {
	Envelope
	DefaultedPlayer string `json:"defaultedPlayer"`
}

// PlacementStart opens the placement phase.
type PlacementStart struct {
	Envelope
	Placement *PlacementView `json:"placementState"`
}

// PiecePlaced broadcasts one accepted placement. ActualPosition is set
// when the Herald rules moved the piece somewhere other than requested.
type PiecePlaced struct {
	Envelope
	PieceID        int                 `json:"pieceId"`
	Position       board.Position      `json:"position"`
	ActualPosition *board.Position     `json:"actualPosition,omitempty"`
	PawnSwap       *placement.PawnSwap `json:"pawnSwap,omitempty"`
	NextPlacer     board.Color         `json:"nextPlacer"`
	Placement      *PlacementView      `json:"placementState"`
	GameState      *engine.GameState   `json:"gameState"`
}

// PlacementError reports a rejected placement to the placer, with a
// fresh snapshot to recover from.
type PlacementError struct {
	Envelope
	Message   string         `json:"message"`
	Placement *PlacementView `json:"placementState"`
}

// GameStart opens the play phase.
type GameStart struct {
	Envelope
	GameState *engine.GameState `json:"gameState"`
}

// MoveMade broadcasts one accepted move and the resulting state.
type MoveMade struct {
	Envelope
	Move      *engine.MoveRecord `json:"move"`
	GameState *engine.GameState  `json:"gameState"`
}

// MoveRejected reports a refused move to the mover with the
// authoritative state.
type MoveRejected struct {
	Envelope
	Reason       string            `json:"reason"`
	CorrectState *engine.GameState `json:"correctState"`
}

// GameOver announces the result to both players.
type GameOver struct {
	Envelope
	Result     *engine.Result    `json:"result"`
	FinalState *engine.GameState `json:"finalState"`
}

// PlayerDisconnected starts the reconnect grace period.
type PlayerDisconnected struct {
	Envelope
	PlayerID       string `json:"playerId"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// PlayerReconnected cancels a pending disconnect timeout.
type PlayerReconnected struct {
	Envelope
	PlayerID string `json:"playerId"`
}

// SyncState rebuilds a reconnecting client. Only the sections for the
// current phase are present.
type SyncState struct {
	Envelope
	Phase      string             `json:"phase"`
	Settings   RoomSettings       `json:"settings"`
	Players    []PlayerInfo       `json:"players"`
	MyColor    board.Color        `json:"myColor"`
	GameState  *engine.GameState  `json:"gameState,omitempty"`
	Placement  *PlacementView     `json:"placementState,omitempty"`
	WhiteDraft *draft.PlayerDraft `json:"whiteDraft,omitempty"`
	BlackDraft *draft.PlayerDraft `json:"blackDraft,omitempty"`
	Draft      *DraftProgress     `json:"draftState,omitempty"`
}

// Pong answers a PING.
type Pong struct {
	Envelope
	ServerTime int64 `json:"serverTime"`
}

// DrawOffered relays a draw offer to the opponent.
type DrawOffered struct {
	Envelope
	PlayerID string `json:"playerId"`
}
