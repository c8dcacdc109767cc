// Package placement runs the placement phase: each side's drafted army
// becomes a pool of unplaced piece instances, and the players
// alternately drop them into their home zones. Royalty goes on the
// center back-rank files, pieces on the outer back-rank files, pawns on
// the pawn rank. The Herald is the exception: its true square is the
// pawn rank of an edge file, displacing a pawn upward if one is there.
package placement

import (
	"errors"
	"fmt"

	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
	"github.com/liamiak1/hyper-fairy-chess/internal/draft"
)

// Placement violations.
var (
	ErrComplete    = errors.New("placement already complete")
	ErrNotYourTurn = errors.New("not your placement turn")
	ErrNotInPool   = errors.New("piece not in pool")
	ErrBadZone     = errors.New("square outside the piece's zone")
	ErrOccupied    = errors.New("square occupied")
)

// royaltyFile reports whether the file is one of the two center
// back-rank files reserved for royalty, on every board size.
func royaltyFile(f int) bool {
	return f == 3 || f == 4
}

// PawnSwap reports a pawn displaced to the back rank by a Herald
// placement.
type PawnSwap struct {
	PieceID int            `json:"pieceId"`
	From    board.Position `json:"from"`
	To      board.Position `json:"to"`
}

// Placed reports one successful placement. Actual differs from
// Requested when the Herald rule snapped the piece.
type Placed struct {
	Piece     *board.PieceInstance `json:"piece"`
	Requested board.Position       `json:"requested"`
	Actual    board.Position       `json:"actual"`
	Swap      *PawnSwap            `json:"pawnSwap,omitempty"`
}

// State tracks the two placement pools and whose turn it is to place.
type State struct {
	CurrentPlacer board.Color

	pools  [2][]*board.PieceInstance
	royals [2]int
}

// NewState expands both drafts into piece instances, registers them on
// the board with no position yet, and returns the pools with white to
// place first. Instance ids are unique across the game.
func NewState(b *board.Board, white, black *draft.PlayerDraft) *State {
	s := &State{CurrentPlacer: board.White}
	drafts := [2]*draft.PlayerDraft{board.White: white, board.Black: black}
	nextID := 1
	for _, c := range [2]board.Color{board.White, board.Black} {
		for _, typeID := range drafts[c].ArmyTypes() {
			pc := &board.PieceInstance{ID: nextID, TypeID: typeID, Owner: c}
			nextID++
			b.Add(pc)
			s.pools[c] = append(s.pools[c], pc)
			if catalog.MustGet(typeID).Tier == catalog.TierRoyalty {
				s.royals[c]++
			}
		}
	}
	return s
}

// Pool returns the unplaced instances of one color.
func (s *State) Pool(c board.Color) []*board.PieceInstance {
	return s.pools[c]
}

// Complete reports whether both pools are empty.
func (s *State) Complete() bool {
	return len(s.pools[board.White]) == 0 && len(s.pools[board.Black]) == 0
}

// Place drops the pool instance with the given id onto the board.
// The requested square is resolved through the zone rules and the
// Herald exception; on success the placer alternates while the other
// pool lasts, and completing the last placement freezes the board's
// royalty-history flags.
func (s *State) Place(b *board.Board, c board.Color, pieceID int, req board.Position) (*Placed, error) {
	if s.Complete() {
		return nil, ErrComplete
	}
	if c != s.CurrentPlacer {
		return nil, ErrNotYourTurn
	}
	idx := -1
	for i, pc := range s.pools[c] {
		if pc.ID == pieceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: piece %d", ErrNotInPool, pieceID)
	}
	pc := s.pools[c][idx]

	actual, swap, err := s.resolve(b, c, pc.Type(), req)
	if err != nil {
		return nil, err
	}

	if swap != nil {
		b.Move(b.PieceByID(swap.PieceID), swap.To)
	}
	b.Move(pc, actual)
	s.pools[c] = append(s.pools[c][:idx], s.pools[c][idx+1:]...)

	if len(s.pools[c.Other()]) > 0 {
		s.CurrentPlacer = c.Other()
	}
	if s.Complete() {
		b.HadMultipleRoyals[board.White] = s.royals[board.White] >= 2
		b.HadMultipleRoyals[board.Black] = s.royals[board.Black] >= 2
	}
	return &Placed{Piece: pc, Requested: req, Actual: actual, Swap: swap}, nil
}

// resolve maps a requested square to the actual one, enforcing zones,
// the Herald snap and the pawn displacement around it.
func (s *State) resolve(b *board.Board, c board.Color, t *catalog.PieceType, req board.Position) (board.Position, *PawnSwap, error) {
	if !b.OnBoard(req) {
		return req, nil, fmt.Errorf("%w: %s off board", ErrBadZone, req)
	}
	back := b.Size().BackRank(c)
	pawnRank := b.Size().PawnRank(c)

	if t.ID == catalog.Herald {
		if req.File != 0 && req.File != b.Files-1 {
			return req, nil, fmt.Errorf("%w: herald goes on an edge file", ErrBadZone)
		}
		if req.Rank != back && req.Rank != pawnRank {
			return req, nil, fmt.Errorf("%w: herald goes on the home ranks", ErrBadZone)
		}
		actual := board.Position{File: req.File, Rank: pawnRank}
		occ := b.At(actual)
		if occ == nil {
			return actual, nil, nil
		}
		if occ.Owner == c && occ.Type().Tier == catalog.TierPawn {
			up := board.Position{File: req.File, Rank: back}
			if b.At(up) != nil {
				return req, nil, fmt.Errorf("%w: %s and %s both taken", ErrOccupied, actual, up)
			}
			return actual, &PawnSwap{PieceID: occ.ID, From: actual, To: up}, nil
		}
		return req, nil, fmt.Errorf("%w: %s", ErrOccupied, actual)
	}

	switch t.Tier {
	case catalog.TierPawn:
		if req.Rank == pawnRank {
			occ := b.At(req)
			if occ == nil {
				return req, nil, nil
			}
			// A Herald on the pawn's true square bumps the pawn to the
			// back rank of the same file.
			if occ.Owner == c && occ.TypeID == catalog.Herald {
				up := board.Position{File: req.File, Rank: back}
				if b.At(up) != nil {
					return req, nil, fmt.Errorf("%w: %s", ErrOccupied, up)
				}
				return up, nil, nil
			}
			return req, nil, fmt.Errorf("%w: %s", ErrOccupied, req)
		}
		if req.Rank == back {
			below := b.At(board.Position{File: req.File, Rank: pawnRank})
			if below != nil && below.Owner == c && below.TypeID == catalog.Herald {
				if b.At(req) != nil {
					return req, nil, fmt.Errorf("%w: %s", ErrOccupied, req)
				}
				return req, nil, nil
			}
		}
		return req, nil, fmt.Errorf("%w: pawns go on the pawn rank", ErrBadZone)
	case catalog.TierRoyalty:
		if req.Rank != back || !royaltyFile(req.File) {
			return req, nil, fmt.Errorf("%w: royalty goes on the center back rank", ErrBadZone)
		}
	case catalog.TierPiece:
		if req.Rank != back || royaltyFile(req.File) {
			return req, nil, fmt.Errorf("%w: pieces go on the outer back rank", ErrBadZone)
		}
	default:
		return req, nil, fmt.Errorf("%w: %q is not placeable", ErrBadZone, t.ID)
	}
	if b.At(req) != nil {
		return req, nil, fmt.Errorf("%w: %s", ErrOccupied, req)
	}
	return req, nil, nil
}
