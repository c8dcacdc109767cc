package room

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/protocol"
)

// codeAlphabet leaves out 0, O, 1, I and L so codes survive being read
// aloud or retyped.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	codeLength     = 6
	maxCodeRetries = 100

	defaultBudget    = 400
	defaultBoardSize = "8x8"
	defaultDraftTime = 120
)

var (
	// ErrInvalidCode means the client-supplied code is not a room code.
	ErrInvalidCode = errors.New("invalid room code")
	// ErrNotFound means no live room has that code.
	ErrNotFound = errors.New("room not found")
	// ErrCodesExhausted means code generation kept colliding.
	ErrCodesExhausted = errors.New("room code space exhausted")
)

var countPrinter = message.NewPrinter(language.English)

// DefaultSettings returns the stock room settings.
func DefaultSettings() protocol.RoomSettings {
	return protocol.RoomSettings{
		Budget:         defaultBudget,
		BoardSize:      defaultBoardSize,
		DraftTimeLimit: defaultDraftTime,
	}
}

func applyDefaults(s, def protocol.RoomSettings) protocol.RoomSettings {
	if s.BoardSize == "" {
		s.BoardSize = def.BoardSize
	}
	if s.Budget == 0 {
		s.Budget = def.Budget
	}
	if s.DraftTimeLimit == 0 {
		s.DraftTimeLimit = def.DraftTimeLimit
	}
	return s
}

func validateSettings(s protocol.RoomSettings) error {
	if _, err := board.ParseSize(s.BoardSize); err != nil {
		return err
	}
	if s.Budget < 0 {
		return fmt.Errorf("budget must not be negative, got %d", s.Budget)
	}
	if s.DraftTimeLimit < 0 {
		return fmt.Errorf("draft time limit must not be negative, got %d", s.DraftTimeLimit)
	}
	if s.MoveTimeLimit != nil && *s.MoveTimeLimit <= 0 {
		return fmt.Errorf("move time limit must be positive, got %d", *s.MoveTimeLimit)
	}
	return nil
}

// NormalizeSettings fills the stock defaults into a creation request
// and rejects values the engine cannot host.
func NormalizeSettings(s protocol.RoomSettings) (protocol.RoomSettings, error) {
	s = applyDefaults(s, DefaultSettings())
	if err := validateSettings(s); err != nil {
		return s, err
	}
	return s, nil
}

// NormalizeCode uppercases a client-supplied room code and checks its
// shape before any map lookup.
func NormalizeCode(code string) (string, error) {
	up := strings.ToUpper(strings.TrimSpace(code))
	if len(up) != codeLength {
		return "", ErrInvalidCode
	}
	for _, c := range up {
		if !strings.ContainsRune(codeAlphabet, c) {
			return "", ErrInvalidCode
		}
	}
	return up, nil
}

// Directory owns every live room, keyed by code.
type Directory struct {
	clock    Clock
	archive  Saver
	defaults protocol.RoomSettings

	mu    sync.RWMutex
	rooms map[string]*Room
	rng   *rand.Rand

	sweepStop chan struct{}
	stop      sync.Once
}

// NewDirectory returns an empty directory. rng draws room codes; a nil
// rng gets a time-seeded one. archive may be nil.
func NewDirectory(clock Clock, rng *rand.Rand, archive Saver) *Directory {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Directory{
		clock:     clock,
		archive:   archive,
		defaults:  DefaultSettings(),
		rooms:     make(map[string]*Room),
		rng:       rng,
		sweepStop: make(chan struct{}),
	}
}

// SetDefaults replaces the settings filled into creation requests.
// Call before serving traffic.
func (d *Directory) SetDefaults(s protocol.RoomSettings) error {
	if err := validateSettings(s); err != nil {
		return err
	}
	d.defaults = s
	return nil
}

// Create allocates a room with a fresh code, seats the creator and
// starts the room worker. The caller owns sending ROOM_CREATED.
func (d *Directory) Create(playerName string, settings protocol.RoomSettings, send Sender) (*Room, *Player, error) {
	settings = applyDefaults(settings, d.defaults)
	if err := validateSettings(settings); err != nil {
		return nil, nil, err
	}

	d.mu.Lock()
	code, err := d.freeCode()
	if err != nil {
		d.mu.Unlock()
		return nil, nil, err
	}
	r := New(code, settings, Deps{Clock: d.clock, Send: send, Archive: d.archive})
	p := r.seat(uuid.NewString(), playerName)
	d.rooms[code] = r
	n := len(d.rooms)
	d.mu.Unlock()

	r.Start()
	log.Infof("room %s created by %s (%s live)", code, p.Name,
		countPrinter.Sprintf("%d rooms", n))
	return r, p, nil
}

// freeCode draws random codes until one is unused. Caller holds d.mu.
func (d *Directory) freeCode() (string, error) {
	buf := make([]byte, codeLength)
	for attempt := 0; attempt < maxCodeRetries; attempt++ {
		for i := range buf {
			buf[i] = codeAlphabet[d.rng.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := d.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodesExhausted
}

// Lookup resolves a client-supplied code to a live room.
func (d *Directory) Lookup(code string) (*Room, error) {
	norm, err := NormalizeCode(code)
	if err != nil {
		return nil, err
	}
	d.mu.RLock()
	r := d.rooms[norm]
	d.mu.RUnlock()
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

// Remove stops a room and forgets its code.
func (d *Directory) Remove(code string) {
	d.mu.Lock()
	r := d.rooms[code]
	delete(d.rooms, code)
	d.mu.Unlock()
	if r != nil {
		r.Stop()
	}
}

// Len reports the number of live rooms.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rooms)
}

// Sweep evicts rooms that ended and have been idle for at least idle.
// Returns how many were removed.
func (d *Directory) Sweep(idle time.Duration) int {
	now := d.clock.Now()

	d.mu.Lock()
	var evicted []*Room
	for code, r := range d.rooms {
		if r.Expired(now, idle) {
			delete(d.rooms, code)
			evicted = append(evicted, r)
		}
	}
	remaining := len(d.rooms)
	d.mu.Unlock()

	for _, r := range evicted {
		r.Stop()
	}
	if len(evicted) > 0 {
		log.Infof("swept %s", countPrinter.Sprintf("%d idle rooms, %d remain", len(evicted), remaining))
	}
	return len(evicted)
}

// StartSweeper runs Sweep every interval until Close.
func (d *Directory) StartSweeper(interval, idle time.Duration) {
	var arm func()
	arm = func() {
		d.clock.AfterFunc(interval, func() {
			select {
			case <-d.sweepStop:
				return
			default:
			}
			d.Sweep(idle)
			arm()
		})
	}
	arm()
}

// Close stops the sweeper and every room.
func (d *Directory) Close() {
	d.stop.Do(func() { close(d.sweepStop) })
	d.mu.Lock()
	rooms := make([]*Room, 0, len(d.rooms))
	for _, r := range d.rooms {
		rooms = append(rooms, r)
	}
	d.rooms = make(map[string]*Room)
	d.mu.Unlock()
	for _, r := range rooms {
		r.Stop()
	}
}
