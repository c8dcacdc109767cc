// Package draft validates army selections against the game budget and
// the board's per-tier slot caps. A draft is mutated incrementally
// during selection; Validate is the authoritative check applied on
// submission.
package draft

import (
	"errors"
	"fmt"

	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// Draft violations.
var (
	ErrUnknownType      = errors.New("unknown piece type")
	ErrNotDraftable     = errors.New("type cannot be drafted")
	ErrBadCount         = errors.New("selection count must be positive")
	ErrOverBudget       = errors.New("budget exceeded")
	ErrSlotCap          = errors.New("slot cap exceeded")
	ErrTypeCap          = errors.New("per-type cap exceeded")
	ErrReplacerConflict = errors.New("more than one king replacer")
	ErrNotSelected      = errors.New("type not in draft")
)

// Selection is one drafted line: a catalog type and how many of it.
type Selection struct {
	TypeID string `json:"pieceTypeId"`
	Count  int    `json:"count"`
}

// Slots counts draft slots per tier.
type Slots struct {
	Pawn    int `json:"pawn"`
	Piece   int `json:"piece"`
	Royalty int `json:"royalty"`
}

// Caps returns the per-tier slot caps for a board size: 8/6/2 on the
// 8-file board, 10/8/2 on the wider ones.
func Caps(size board.Size) Slots {
	if size.Files > 8 {
		return Slots{Pawn: 10, Piece: 8, Royalty: 2}
	}
	return Slots{Pawn: 8, Piece: 6, Royalty: 2}
}

// PlayerDraft is one side's running selection with its derived budget
// and slot usage. The royalty slot starts occupied by the mandatory
// King; a drafted king replacer takes over that same slot.
type PlayerDraft struct {
	Selections  []Selection `json:"selections"`
	BudgetSpent int         `json:"budgetSpent"`
	SlotsUsed   Slots       `json:"slotsUsed"`
}

// New returns an empty draft.
func New() *PlayerDraft {
	return &PlayerDraft{SlotsUsed: Slots{Royalty: 1}}
}

// FromSelections builds a draft from raw selection lines, merging
// repeated types.
func FromSelections(sel []Selection) (*PlayerDraft, error) {
	d := New()
	for _, s := range sel {
		if err := d.Add(s.TypeID, s.Count); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Add puts count more of the type into the draft.
func (d *PlayerDraft) Add(typeID string, count int) error {
	if count < 1 {
		return fmt.Errorf("%w: %d of %q", ErrBadCount, count, typeID)
	}
	if _, ok := catalog.Get(typeID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, typeID)
	}
	for i := range d.Selections {
		if d.Selections[i].TypeID == typeID {
			d.Selections[i].Count += count
			d.recompute()
			return nil
		}
	}
	d.Selections = append(d.Selections, Selection{TypeID: typeID, Count: count})
	d.recompute()
	return nil
}

// Remove takes count of the type back out; the line disappears when
// it reaches zero.
func (d *PlayerDraft) Remove(typeID string, count int) error {
	if count < 1 {
		return fmt.Errorf("%w: %d of %q", ErrBadCount, count, typeID)
	}
	for i := range d.Selections {
		if d.Selections[i].TypeID != typeID {
			continue
		}
		if d.Selections[i].Count < count {
			return fmt.Errorf("%w: %d of %q held, removing %d",
				ErrNotSelected, d.Selections[i].Count, typeID, count)
		}
		d.Selections[i].Count -= count
		if d.Selections[i].Count == 0 {
			d.Selections = append(d.Selections[:i], d.Selections[i+1:]...)
		}
		d.recompute()
		return nil
	}
	return fmt.Errorf("%w: %q", ErrNotSelected, typeID)
}

// recompute rebuilds the derived fields from the selection lines. The
// first king replacer fills the King's preoccupied royalty slot
// instead of a new one.
func (d *PlayerDraft) recompute() {
	d.BudgetSpent = 0
	d.SlotsUsed = Slots{Royalty: 1}
	replaced := false
	for _, s := range d.Selections {
		t, ok := catalog.Get(s.TypeID)
		if !ok {
			continue
		}
		d.BudgetSpent += t.Cost * s.Count
		switch t.Tier {
		case catalog.TierPawn:
			d.SlotsUsed.Pawn += s.Count
		case catalog.TierPiece:
			d.SlotsUsed.Piece += s.Count
		case catalog.TierRoyalty:
			n := s.Count
			if t.ReplacesKing && !replaced {
				replaced = true
				n--
			}
			d.SlotsUsed.Royalty += n
		}
	}
}

// HasReplacer reports whether the draft contains a king replacer.
func (d *PlayerDraft) HasReplacer() bool {
	for _, s := range d.Selections {
		if t, ok := catalog.Get(s.TypeID); ok && t.ReplacesKing {
			return true
		}
	}
	return false
}

// ArmyTypes expands the draft into the full list of type ids that
// enter play, the mandatory King first unless a replacer stands in.
func (d *PlayerDraft) ArmyTypes() []string {
	var out []string
	if !d.HasReplacer() {
		out = append(out, catalog.King)
	}
	for _, s := range d.Selections {
		for i := 0; i < s.Count; i++ {
			out = append(out, s.TypeID)
		}
	}
	return out
}

// Validate is the authoritative submission check. It recomputes every
// derived quantity from the selection lines rather than trusting the
// incremental fields.
func Validate(d *PlayerDraft, budget int, size board.Size) error {
	spent := 0
	var slots Slots
	slots.Royalty = 1
	replacers := 0
	seenReplacer := false
	for _, s := range d.Selections {
		if s.Count < 1 {
			return fmt.Errorf("%w: %d of %q", ErrBadCount, s.Count, s.TypeID)
		}
		t, ok := catalog.Get(s.TypeID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownType, s.TypeID)
		}
		if t.Tier == catalog.TierOther || t.IsMandatory {
			return fmt.Errorf("%w: %q", ErrNotDraftable, s.TypeID)
		}
		if t.MaxPerArmy > 0 && s.Count > t.MaxPerArmy {
			return fmt.Errorf("%w: %d of %q, cap %d", ErrTypeCap, s.Count, s.TypeID, t.MaxPerArmy)
		}
		spent += t.Cost * s.Count
		switch t.Tier {
		case catalog.TierPawn:
			slots.Pawn += s.Count
		case catalog.TierPiece:
			slots.Piece += s.Count
		case catalog.TierRoyalty:
			n := s.Count
			if t.ReplacesKing {
				replacers += s.Count
				if !seenReplacer {
					seenReplacer = true
					n--
				}
			}
			slots.Royalty += n
		}
	}
	if replacers > 1 {
		return fmt.Errorf("%w: %d", ErrReplacerConflict, replacers)
	}
	if spent > budget {
		return fmt.Errorf("%w: %d of %d", ErrOverBudget, spent, budget)
	}
	caps := Caps(size)
	switch {
	case slots.Pawn > caps.Pawn:
		return fmt.Errorf("%w: %d pawn slots of %d", ErrSlotCap, slots.Pawn, caps.Pawn)
	case slots.Piece > caps.Piece:
		return fmt.Errorf("%w: %d piece slots of %d", ErrSlotCap, slots.Piece, caps.Piece)
	case slots.Royalty > caps.Royalty:
		return fmt.Errorf("%w: %d royalty slots of %d", ErrSlotCap, slots.Royalty, caps.Royalty)
	}
	return nil
}

// FallbackArmy is the draft applied when the timer expires without a
// submission. It is installed as-is, budget notwithstanding.
func FallbackArmy() *PlayerDraft {
	d := &PlayerDraft{Selections: []Selection{
		{TypeID: catalog.Queen, Count: 1},
		{TypeID: catalog.Rook, Count: 2},
		{TypeID: catalog.Bishop, Count: 2},
		{TypeID: catalog.Knight, Count: 2},
		{TypeID: catalog.Pawn, Count: 8},
	}}
	d.recompute()
	return d
}
