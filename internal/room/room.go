// Package room implements the authoritative game rooms. Each room is
// one goroutine consuming a FIFO event channel; client messages,
// connection changes and expired timers all arrive as events, so a
// room never needs a lock around its game state. Timers fire by
// posting back into the same channel.
package room

import (
	"encoding/json"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/op/go-logging"

	"github.com/liamiak1/hyper-fairy-chess/internal/archive"
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/draft"
	"github.com/liamiak1/hyper-fairy-chess/internal/engine"
	"github.com/liamiak1/hyper-fairy-chess/internal/placement"
	"github.com/liamiak1/hyper-fairy-chess/internal/protocol"
)

var log = logging.MustGetLogger("room")

// Phase is the room lifecycle phase. It tracks the engine phase but
// belongs to the room: the countdown happens while the room is still
// waiting, and an aborted room is ended even if no game ever started.
type Phase string

const (
	PhaseWaiting   Phase = "waiting"
	PhaseDrafting  Phase = "drafting"
	PhasePlacement Phase = "placement"
	PhasePlaying   Phase = "playing"
	PhaseEnded     Phase = "ended"
)

const (
	countdownSeconds = 3
	revealDelay      = 3 * time.Second
	disconnectGrace  = 60 * time.Second
	maxNameLen       = 20
	eventBuffer      = 64
)

// Sender delivers outbound messages for one room. Send targets a
// single bound player, Broadcast every connected player in the room,
// and Release drops a binding after a rejected join or a departure.
type Sender interface {
	Send(playerID string, msg any)
	Broadcast(msg any)
	Release(playerID string)
}

// Saver persists finished games. A nil Saver disables archiving.
type Saver interface {
	SaveGame(rec *archive.GameRecord) error
}

// Player is one seat in a room.
type Player struct {
	ID        string
	Name      string
	Color     board.Color
	Connected bool
	LastSeen  time.Time
}

func (p *Player) info() protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:        p.ID,
		Name:      p.Name,
		Color:     p.Color,
		Connected: p.Connected,
	}
}

type eventKind int

const (
	evMessage eventKind = iota
	evJoin
	evDisconnect
	evReconnect
	evCountdownTick
	evDraftDeadline
	evRevealDone
	evGraceExpired
)

// Event is one unit of room work. The transport posts joins, messages
// and connection changes; the room posts its own timer expiries.
type Event struct {
	kind   eventKind
	player string
	name   string
	typ    string
	data   json.RawMessage
}

// JoinEvent seats a new player. The transport must bind the player ID
// to its connection before posting so the reply can be delivered.
func JoinEvent(playerID, name string) Event {
	return Event{kind: evJoin, player: playerID, name: name}
}

// MessageEvent carries one decoded client message.
func MessageEvent(playerID, typ string, data []byte) Event {
	return Event{kind: evMessage, player: playerID, typ: typ, data: data}
}

// DisconnectEvent reports a dropped connection.
func DisconnectEvent(playerID string) Event {
	return Event{kind: evDisconnect, player: playerID}
}

// ReconnectEvent reports a returning player on a fresh connection.
func ReconnectEvent(playerID string) Event {
	return Event{kind: evReconnect, player: playerID}
}

// Deps wires a room's external services.
type Deps struct {
	Clock   Clock
	Send    Sender
	Archive Saver
}

// Room is one game room. All fields below mu are owned by the room
// goroutine; mu covers only what the directory sweeper reads from
// outside.
type Room struct {
	Code     string
	settings protocol.RoomSettings
	size     board.Size
	clock    Clock
	send     Sender
	archive  Saver

	events chan Event
	done   chan struct{}
	stop   sync.Once

	mu           sync.Mutex
	phase        Phase
	lastActivity time.Time

	players   []*Player
	createdAt time.Time

	game      *engine.GameState
	drafts    [2]*draft.PlayerDraft
	submitted [2]bool
	placing   *placement.State
	drawOffer string

	countdownLeft int
	draftDeadline time.Time

	countdownTimer Timer
	draftTimer     Timer
	revealTimer    Timer
	graceTimers    map[string]Timer
}

// New builds a room around already-normalized settings. The caller
// seats the first player and calls Start.
func New(code string, settings protocol.RoomSettings, deps Deps) *Room {
	size, err := board.ParseSize(settings.BoardSize)
	if err != nil {
		// NormalizeSettings rejected this earlier; fall back rather
		// than panic in case a caller skipped it.
		log.Errorf("room %s: bad board size %q, using 8x8", code, settings.BoardSize)
		size = board.Size8x8
		settings.BoardSize = size.String()
	}
	now := deps.Clock.Now()
	return &Room{
		Code:         code,
		settings:     settings,
		size:         size,
		clock:        deps.Clock,
		send:         deps.Send,
		archive:      deps.Archive,
		events:       make(chan Event, eventBuffer),
		done:         make(chan struct{}),
		phase:        PhaseWaiting,
		lastActivity: now,
		createdAt:    now,
		graceTimers:  make(map[string]Timer),
	}
}

// Start launches the room worker.
func (r *Room) Start() {
	go r.run()
}

// Stop terminates the room worker. Pending events are dropped.
func (r *Room) Stop() {
	r.stop.Do(func() { close(r.done) })
}

// Post enqueues one event for the room worker. Events posted to a
// stopped room are discarded.
func (r *Room) Post(ev Event) {
	select {
	case r.events <- ev:
	case <-r.done:
	}
}

func (r *Room) run() {
	for {
		select {
		case ev := <-r.events:
			r.handleEvent(ev)
		case <-r.done:
			r.stopTimers()
			return
		}
	}
}

// handleEvent dispatches one event. A panic in a handler aborts the
// game instead of killing the process: the room broadcasts the aborted
// result and goes to ended.
func (r *Room) handleEvent(ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("room %s: handler panic: %v", r.Code, rec)
			r.abort()
		}
	}()
	r.touch()
	switch ev.kind {
	case evJoin:
		r.handleJoin(ev.player, ev.name)
	case evMessage:
		r.handleMessage(ev.player, ev.typ, ev.data)
	case evDisconnect:
		r.handleDisconnect(ev.player)
	case evReconnect:
		r.handleReconnect(ev.player)
	case evCountdownTick:
		r.tickCountdown()
	case evDraftDeadline:
		r.expireDraft()
	case evRevealDone:
		r.beginPlacement()
	case evGraceExpired:
		r.expireGrace(ev.player)
	}
}

// handleMessage routes one client message. Unknown types are logged
// and dropped; a malformed payload never takes the room down.
func (r *Room) handleMessage(playerID, typ string, data json.RawMessage) {
	p := r.player(playerID)
	if p == nil {
		log.Warningf("room %s: message %s from unknown player %s", r.Code, typ, playerID)
		return
	}
	p.LastSeen = r.clock.Now()
	switch typ {
	case protocol.TypeDraftSubmit:
		r.handleDraftSubmit(p, data)
	case protocol.TypePlacePiece:
		r.handlePlacePiece(p, data)
	case protocol.TypeMakeMove:
		r.handleMakeMove(p, data)
	case protocol.TypeOfferDraw:
		r.handleOfferDraw(p)
	case protocol.TypeRespondDraw:
		r.handleRespondDraw(p, data)
	case protocol.TypeResign:
		r.handleResign(p)
	case protocol.TypeLeaveRoom:
		r.handleLeave(p)
	case protocol.TypePing:
		r.send.Send(p.ID, protocol.Pong{
			Envelope:   r.env(protocol.TypePong),
			ServerTime: r.clock.Now().UnixMilli(),
		})
	default:
		log.Warningf("room %s: unhandled message type %s", r.Code, typ)
	}
}

// seat assigns the first free color. Callers check capacity first.
func (r *Room) seat(id, name string) *Player {
	color := board.White
	for _, p := range r.players {
		if p.Color == board.White {
			color = board.Black
		}
	}
	p := &Player{
		ID:        id,
		Name:      clampName(name),
		Color:     color,
		Connected: true,
		LastSeen:  r.clock.Now(),
	}
	r.players = append(r.players, p)
	return p
}

func (r *Room) player(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) byColor(c board.Color) *Player {
	for _, p := range r.players {
		if p.Color == c {
			return p
		}
	}
	return nil
}

func (r *Room) opponent(id string) *Player {
	for _, p := range r.players {
		if p.ID != id {
			return p
		}
	}
	return nil
}

func (r *Room) playersInfo() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		infos = append(infos, p.info())
	}
	return infos
}

func clampName(name string) string {
	if name == "" {
		return "player"
	}
	if utf8.RuneCountInString(name) <= maxNameLen {
		return name
	}
	runes := []rune(name)
	return string(runes[:maxNameLen])
}

func (r *Room) env(typ string) protocol.Envelope {
	return protocol.NewEnvelope(typ, r.clock.Now())
}

func (r *Room) touch() {
	r.mu.Lock()
	r.lastActivity = r.clock.Now()
	r.mu.Unlock()
}

func (r *Room) setPhase(p Phase) {
	r.mu.Lock()
	r.phase = p
	r.mu.Unlock()
}

// Phase returns the lifecycle phase. Safe from any goroutine.
func (r *Room) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Settings returns the room's normalized settings. They never change
// after creation.
func (r *Room) Settings() protocol.RoomSettings {
	return r.settings
}

// Sender returns the transport half the room replies through, so the
// transport can attach returning connections to it.
func (r *Room) Sender() Sender {
	return r.send
}

// Expired reports whether the room has ended and been idle for at
// least the given duration. The sweeper calls this from outside the
// room goroutine.
func (r *Room) Expired(now time.Time, idle time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase == PhaseEnded && now.Sub(r.lastActivity) >= idle
}

func (r *Room) stopTimers() {
	if r.countdownTimer != nil {
		r.countdownTimer.Stop()
		r.countdownTimer = nil
	}
	if r.draftTimer != nil {
		r.draftTimer.Stop()
		r.draftTimer = nil
	}
	if r.revealTimer != nil {
		r.revealTimer.Stop()
		r.revealTimer = nil
	}
	for id, t := range r.graceTimers {
		t.Stop()
		delete(r.graceTimers, id)
	}
}

// abort force-ends the room after an internal fault.
func (r *Room) abort() {
	r.stopTimers()
	if r.game != nil && r.game.Result == nil {
		r.game.Abort()
	}
	r.setPhase(PhaseEnded)
	if r.game != nil {
		r.send.Broadcast(protocol.GameOver{
			Envelope:   r.env(protocol.TypeGameOver),
			Result:     r.game.Result,
			FinalState: r.game,
		})
	}
}
