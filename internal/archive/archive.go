// Package archive persists finished games and aggregate server
// statistics in BadgerDB. Records are stored under their room code
// with a time-ordered index so recent games can be listed without
// scanning every value.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/liamiak1/hyper-fairy-chess/internal/draft"
	"github.com/liamiak1/hyper-fairy-chess/internal/engine"
	"github.com/liamiak1/hyper-fairy-chess/internal/protocol"
)

// Storage keys
const (
	keyStats   = "stats"
	gamePrefix = "game:"
	idxPrefix  = "idx:"
)

// ErrNotFound is returned when no archived game exists for a code.
var ErrNotFound = errors.New("game not archived")

// GameRecord is the archived form of one finished game.
type GameRecord struct {
	Code       string                `json:"code"`
	Settings   protocol.RoomSettings `json:"settings"`
	Players    []protocol.PlayerInfo `json:"players"`
	WhiteDraft *draft.PlayerDraft    `json:"white_draft,omitempty"`
	BlackDraft *draft.PlayerDraft    `json:"black_draft,omitempty"`
	Moves      []engine.MoveRecord   `json:"moves,omitempty"`
	Result     *engine.Result        `json:"result"`
	CreatedAt  time.Time             `json:"created_at"`
	EndedAt    time.Time             `json:"ended_at"`
}

// ServerStats stores aggregate counters across all archived games.
type ServerStats struct {
	GamesArchived int            `json:"games_archived"`
	TotalMoves    int            `json:"total_moves"`
	ByResult      map[string]int `json:"by_result"`
	ByBoard       map[string]int `json:"by_board"`
}

// NewServerStats returns empty server statistics
func NewServerStats() *ServerStats {
	return &ServerStats{
		ByResult: make(map[string]int),
		ByBoard:  make(map[string]int),
	}
}

// Archive wraps BadgerDB for persistent game storage
type Archive struct {
	db *badger.DB

	// mu serializes the stats read-modify-write in SaveGame. Rooms end
	// on independent goroutines.
	mu sync.Mutex
}

// Open opens (or creates) the archive database in dir.
func Open(dir string) (*Archive, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Archive{db: db}, nil
}

// Close closes the database
func (a *Archive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func gameKey(code string) []byte {
	return []byte(gamePrefix + code)
}

// idxKey orders lexically by end time. Millis are zero-padded so the
// byte order matches the numeric order.
func idxKey(endedAt time.Time, code string) []byte {
	return []byte(fmt.Sprintf("%s%013d:%s", idxPrefix, endedAt.UnixMilli(), code))
}

// SaveGame archives a finished game and updates the server statistics.
// A record saved twice under the same code overwrites the earlier one.
func (a *Archive) SaveGame(rec *GameRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	stats, err := a.Stats()
	if err != nil {
		return err
	}

	stats.GamesArchived++
	stats.TotalMoves += len(rec.Moves)
	if rec.Result != nil {
		stats.ByResult[string(rec.Result.Type)]++
	}
	stats.ByBoard[rec.Settings.BoardSize]++

	statsData, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return a.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(gameKey(rec.Code), data); err != nil {
			return err
		}
		if err := txn.Set(idxKey(rec.EndedAt, rec.Code), []byte(rec.Code)); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), statsData)
	})
}

// LoadGame loads one archived game by room code.
func (a *Archive) LoadGame(code string) (*GameRecord, error) {
	rec := &GameRecord{}

	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(code))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// ListRecent returns the codes of the most recently finished games,
// newest first, at most limit of them.
func (a *Archive) ListRecent(limit int) ([]string, error) {
	var codes []string

	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(idxPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Seek past the last possible index key, then walk backwards.
		seek := append([]byte(idxPrefix), 0xFF)
		for it.Seek(seek); it.Valid() && len(codes) < limit; it.Next() {
			err := it.Item().Value(func(val []byte) error {
				codes = append(codes, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return codes, nil
}

// Stats loads the aggregate statistics, returns empty stats if not found
func (a *Archive) Stats() (*ServerStats, error) {
	stats := NewServerStats()

	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}
