package board

import (
	"fmt"
	"strings"

	"github.com/liamiak1/hyper-fairy-chess/internal/catalog"
)

// Size is a board dimension pair.
type Size struct {
	Files int
	Ranks int
}

// Supported board sizes.
var (
	Size8x8   = Size{8, 8}
	Size10x8  = Size{10, 8}
	Size10x10 = Size{10, 10}
)

// ParseSize parses a size string such as "8x8" or "10x8".
func ParseSize(s string) (Size, error) {
	switch s {
	case "8x8":
		return Size8x8, nil
	case "10x8":
		return Size10x8, nil
	case "10x10":
		return Size10x10, nil
	}
	return Size{}, fmt.Errorf("unsupported board size %q", s)
}

// String returns the size in "FxR" form.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Files, s.Ranks)
}

// BackRank returns the back rank index for the color.
func (s Size) BackRank(c Color) int {
	if c == White {
		return 0
	}
	return s.Ranks - 1
}

// PawnRank returns the pawn rank index for the color.
func (s Size) PawnRank(c Color) int {
	if c == White {
		return 1
	}
	return s.Ranks - 2
}

// Board holds the pieces of one game. The square index is derived
// entirely from the piece list and rebuilt after every mutation, so
// the list is the single source of truth.
type Board struct {
	Files             int              `json:"files"`
	Ranks             int              `json:"ranks"`
	Pieces            []*PieceInstance `json:"pieces"`
	HadMultipleRoyals [2]bool          `json:"hadMultipleRoyals"`

	index map[Position]*PieceInstance
}

// New returns an empty board of the given size.
func New(size Size) *Board {
	b := &Board{Files: size.Files, Ranks: size.Ranks}
	b.Rebuild()
	return b
}

// Size returns the board dimensions.
func (b *Board) Size() Size {
	return Size{Files: b.Files, Ranks: b.Ranks}
}

// OnBoard reports whether the position lies inside the board.
func (b *Board) OnBoard(p Position) bool {
	return p.File >= 0 && p.File < b.Files && p.Rank >= 0 && p.Rank < b.Ranks
}

// Rebuild recomputes the square index from the piece list. Callers
// that decode a board from JSON must call it before use; mutation
// helpers call it themselves.
func (b *Board) Rebuild() {
	b.index = make(map[Position]*PieceInstance, len(b.Pieces))
	for _, pc := range b.Pieces {
		if pc.Position != nil {
			b.index[*pc.Position] = pc
		}
	}
}

// At returns the piece occupying the position, or nil.
func (b *Board) At(p Position) *PieceInstance {
	return b.index[p]
}

// PieceByID returns the piece with the given instance id, or nil.
func (b *Board) PieceByID(id int) *PieceInstance {
	for _, pc := range b.Pieces {
		if pc.ID == id {
			return pc
		}
	}
	return nil
}

// Add appends a piece to the board and reindexes.
func (b *Board) Add(pc *PieceInstance) {
	b.Pieces = append(b.Pieces, pc)
	b.Rebuild()
}

// Move relocates a piece and reindexes. It does not touch HasMoved;
// the executor owns that bit.
func (b *Board) Move(pc *PieceInstance, to Position) {
	pc.Position = &to
	b.Rebuild()
}

// Capture takes a piece off the board and reindexes.
func (b *Board) Capture(pc *PieceInstance) {
	pc.Position = nil
	b.Rebuild()
}

// Clone returns a deep copy of the board with its own piece instances
// and a fresh index.
func (b *Board) Clone() *Board {
	cp := &Board{
		Files:             b.Files,
		Ranks:             b.Ranks,
		Pieces:            make([]*PieceInstance, len(b.Pieces)),
		HadMultipleRoyals: b.HadMultipleRoyals,
	}
	for i, pc := range b.Pieces {
		dup := *pc
		if pc.Position != nil {
			pos := *pc.Position
			dup.Position = &pos
		}
		cp.Pieces[i] = &dup
	}
	cp.Rebuild()
	return cp
}

// PiecesOf returns the color's pieces currently on the board.
func (b *Board) PiecesOf(c Color) []*PieceInstance {
	var out []*PieceInstance
	for _, pc := range b.Pieces {
		if pc.Owner == c && pc.Position != nil {
			out = append(out, pc)
		}
	}
	return out
}

// Royal returns the color's royal piece on the board, or nil. Draft
// rules allow at most one royal per side.
func (b *Board) Royal(c Color) *PieceInstance {
	for _, pc := range b.Pieces {
		if pc.Owner == c && pc.Position != nil && pc.Type().IsRoyal {
			return pc
		}
	}
	return nil
}

// HasOtherRoyalty reports whether the color has a royalty-tier piece
// on the board other than the given one.
func (b *Board) HasOtherRoyalty(c Color, except *PieceInstance) bool {
	for _, pc := range b.Pieces {
		if pc == except || pc.Owner != c || pc.Position == nil {
			continue
		}
		if pc.Type().Tier == catalog.TierRoyalty {
			return true
		}
	}
	return false
}

// VictoryPoints sums the victory points of the color's on-board pieces.
func (b *Board) VictoryPoints(c Color) int {
	total := 0
	for _, pc := range b.Pieces {
		if pc.Owner == c && pc.Position != nil {
			total += pc.Type().VictoryPoints
		}
	}
	return total
}

// Validate checks the index invariant: every on-board piece is indexed
// at exactly its position and no index entry points elsewhere.
func (b *Board) Validate() error {
	count := 0
	for _, pc := range b.Pieces {
		if pc.Position == nil {
			continue
		}
		count++
		if !b.OnBoard(*pc.Position) {
			return fmt.Errorf("piece %d off-board at %s", pc.ID, pc.Position)
		}
		if got := b.index[*pc.Position]; got != pc {
			return fmt.Errorf("index mismatch at %s", pc.Position)
		}
	}
	if count != len(b.index) {
		return fmt.Errorf("index has %d entries, want %d", len(b.index), count)
	}
	return nil
}

var glyphs = map[string]byte{
	catalog.King: 'K', catalog.Queen: 'Q', catalog.PhantomKing: 'V',
	catalog.Regent: 'E', catalog.Rook: 'R', catalog.Bishop: 'B',
	catalog.Knight: 'N', catalog.Nightrider: 'S', catalog.Cannon: 'C',
	catalog.Chamberlain: 'M', catalog.Coordinator: 'O', catalog.Withdrawer: 'W',
	catalog.LongLeaper: 'L', catalog.Chameleon: 'X', catalog.Boxer: 'D',
	catalog.Thief: 'T', catalog.Grasshopper: 'G', catalog.Pontiff: 'Y',
	catalog.Herald: 'H', catalog.Pawn: 'P', catalog.ShogiPawn: 'Z',
	catalog.Peasant: 'U', catalog.Fool: 'F', catalog.Jester: 'J',
}

// String renders the board as ASCII, black's ranks on top. White
// pieces are uppercase, black lowercase. Debug output only.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := b.Ranks - 1; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%2d ", rank+1)
		for file := 0; file < b.Files; file++ {
			pc := b.At(Position{File: file, Rank: rank})
			ch := byte('.')
			if pc != nil {
				ch = glyphs[pc.TypeID]
				if ch == 0 {
					ch = '?'
				}
				if pc.Owner == Black {
					ch += 'a' - 'A'
				}
			}
			sb.WriteByte(' ')
			sb.WriteByte(ch)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for file := 0; file < b.Files; file++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte('a' + file))
	}
	sb.WriteByte('\n')
	return sb.String()
}
