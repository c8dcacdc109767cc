// Package catalog defines the immutable registry of piece types: their
// draft cost, victory points, tier, movement pattern, capture kind and
// behavioral flags. The registry is read-only after process start and
// safe for concurrent use.
package catalog

// Tier groups piece types by the draft slot and placement zone they occupy.
type Tier uint8

const (
	TierPawn Tier = iota
	TierPiece
	TierRoyalty
	TierOther
)

// String returns the lowercase tier name.
func (t Tier) String() string {
	switch t {
	case TierPawn:
		return "pawn"
	case TierPiece:
		return "piece"
	case TierRoyalty:
		return "royalty"
	case TierOther:
		return "other"
	}
	return "unknown"
}

// CaptureType identifies how a piece captures. Standard is displacement
// capture (moving onto the victim); every other kind resolves on a
// square different from the destination; None cannot capture at all.
type CaptureType uint8

const (
	CaptureStandard CaptureType = iota
	CaptureWithdrawal
	CaptureCoordinator
	CaptureBoxer
	CaptureThief
	CaptureLongLeap
	CaptureChameleon
	CaptureCannon
	CaptureNone
)

// String returns the capture type name.
func (c CaptureType) String() string {
	switch c {
	case CaptureStandard:
		return "standard"
	case CaptureWithdrawal:
		return "withdrawal"
	case CaptureCoordinator:
		return "coordinator"
	case CaptureBoxer:
		return "boxer"
	case CaptureThief:
		return "thief"
	case CaptureLongLeap:
		return "long-leap"
	case CaptureChameleon:
		return "chameleon"
	case CaptureCannon:
		return "cannon"
	case CaptureNone:
		return "none"
	}
	return "unknown"
}

// SlideSet selects which of the eight queen directions a piece slides in.
type SlideSet uint8

const (
	SlideNone SlideSet = iota
	SlideOrthogonal
	SlideDiagonal
	SlideAll
)

// Special tags a fixed movement algorithm beyond plain slides and leaps.
type Special uint8

const (
	SpecialPawnForward Special = iota
	SpecialPawnCaptureDiagonal
	SpecialShogiPawn
	SpecialPeasantDiagonal
	SpecialPeasantCaptureForward
	SpecialKingOneSquare
	SpecialSwapAdjacent
	SpecialRegentConditional
	SpecialHeraldOrthogonal
	SpecialBounce
	SpecialLongLeap
	SpecialChameleon
	SpecialGrasshopper
	SpecialCannonMove
	SpecialNightrider
)

// Offset is a leap vector in (file, rank) deltas.
type Offset struct {
	File int
	Rank int
}

// Movement describes a piece's movement as three channels: slides,
// leaps and tagged specials. Channels are unioned at generation time.
type Movement struct {
	Slides        SlideSet
	Leaps         []Offset
	LeapSymmetric bool
	Specials      []Special
}

// HasSpecial reports whether the movement carries the given tag.
func (m Movement) HasSpecial(s Special) bool {
	for _, t := range m.Specials {
		if t == s {
			return true
		}
	}
	return false
}

// PieceType is one immutable catalog entry.
type PieceType struct {
	ID              string
	Tier            Tier
	Cost            int
	VictoryPoints   int
	IsRoyal         bool
	IsMandatory     bool
	ReplacesKing    bool
	CanCastle       bool
	CanBeCaptured   bool
	CanFreeze       bool
	FreezesAnyColor bool
	CanBeJumpedOver bool
	Unfreezable     bool
	MaxPerArmy      int    // 0 means no per-type cap
	PromotesTo      string // non-empty overrides the computed promotion set
	Movement        Movement
	CaptureType     CaptureType
}

// Displacement reports whether the piece captures by moving onto its
// target square.
func (p *PieceType) Displacement() bool {
	return p.CaptureType == CaptureStandard
}

// Pawnlike reports whether the piece advances like a pawn and must
// promote on reaching the far rank.
func (p *PieceType) Pawnlike() bool {
	return p.Movement.HasSpecial(SpecialPawnForward) ||
		p.Movement.HasSpecial(SpecialShogiPawn) ||
		p.Movement.HasSpecial(SpecialPeasantDiagonal)
}

// Get returns the piece type with the given id.
func Get(id string) (*PieceType, bool) {
	pt, ok := registry[id]
	return pt, ok
}

// MustGet returns the piece type with the given id and panics if the id
// is unknown. Use only with ids fixed at compile time.
func MustGet(id string) *PieceType {
	pt, ok := registry[id]
	if !ok {
		panic("catalog: unknown piece type " + id)
	}
	return pt
}

// All returns every piece type in declaration order.
func All() []*PieceType {
	out := make([]*PieceType, len(pieceTypes))
	for i := range pieceTypes {
		out[i] = &pieceTypes[i]
	}
	return out
}

var registry = buildRegistry()

func buildRegistry() map[string]*PieceType {
	m := make(map[string]*PieceType, len(pieceTypes))
	for i := range pieceTypes {
		pt := &pieceTypes[i]
		if _, dup := m[pt.ID]; dup {
			panic("catalog: duplicate piece type " + pt.ID)
		}
		m[pt.ID] = pt
	}
	return m
}

// ExpandLeaps returns the distinct offsets a leap vector covers. A
// symmetric leap expands to all sign and axis reflections of the
// vector; for (1,2) that yields the knight's eight destinations.
func ExpandLeaps(o Offset, symmetric bool) []Offset {
	if !symmetric {
		return []Offset{o}
	}
	seen := make(map[Offset]bool, 8)
	out := make([]Offset, 0, 8)
	for _, base := range [2]Offset{{o.File, o.Rank}, {o.Rank, o.File}} {
		for _, fs := range [2]int{1, -1} {
			for _, rs := range [2]int{1, -1} {
				e := Offset{base.File * fs, base.Rank * rs}
				if !seen[e] {
					seen[e] = true
					out = append(out, e)
				}
			}
		}
	}
	return out
}
