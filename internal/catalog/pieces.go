package catalog

// Stable type ids. Drafts, placements and move records refer to pieces
// by these strings.
const (
	King        = "king"
	Queen       = "queen"
	PhantomKing = "phantom_king"
	Regent      = "regent"
	Rook        = "rook"
	Bishop      = "bishop"
	Knight      = "knight"
	Nightrider  = "nightrider"
	Cannon      = "cannon"
	Chamberlain = "chamberlain"
	Coordinator = "coordinator"
	Withdrawer  = "withdrawer"
	LongLeaper  = "long_leaper"
	Chameleon   = "chameleon"
	Boxer       = "boxer"
	Thief       = "thief"
	Grasshopper = "grasshopper"
	Pontiff     = "pontiff"
	Herald      = "herald"
	Pawn        = "pawn"
	ShogiPawn   = "shogi_pawn"
	Peasant     = "peasant"
	Fool        = "fool"
	Jester      = "jester"
)

var pieceTypes = []PieceType{
	{
		ID:            King,
		Tier:          TierRoyalty,
		Cost:          0,
		VictoryPoints: 0,
		IsRoyal:       true,
		IsMandatory:   true,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialKingOneSquare}},
		CaptureType: CaptureStandard,
	},
	{
		ID:            Queen,
		Tier:          TierRoyalty,
		Cost:          90,
		VictoryPoints: 90,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Slides: SlideAll},
		CaptureType: CaptureStandard,
	},
	{
		ID:            PhantomKing,
		Tier:          TierRoyalty,
		Cost:          30,
		VictoryPoints: 0,
		IsRoyal:       true,
		ReplacesKing:  true,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialKingOneSquare, SpecialSwapAdjacent}},
		CaptureType: CaptureStandard,
	},
	{
		ID:            Regent,
		Tier:          TierRoyalty,
		Cost:          35,
		VictoryPoints: 10,
		IsRoyal:       true,
		ReplacesKing:  true,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialRegentConditional}},
		CaptureType: CaptureStandard,
	},
	{
		ID:            Rook,
		Tier:          TierPiece,
		Cost:          50,
		VictoryPoints: 50,
		CanCastle:     true,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Slides: SlideOrthogonal},
		CaptureType: CaptureStandard,
	},
	{
		ID:            Bishop,
		Tier:          TierPiece,
		Cost:          35,
		VictoryPoints: 35,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Slides: SlideDiagonal},
		CaptureType: CaptureStandard,
	},
	{
		ID:            Knight,
		Tier:          TierPiece,
		Cost:          30,
		VictoryPoints: 30,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Leaps: []Offset{{1, 2}}, LeapSymmetric: true},
		CaptureType: CaptureStandard,
	},
	{
		ID:            Nightrider,
		Tier:          TierPiece,
		Cost:          70,
		VictoryPoints: 70,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialNightrider}},
		CaptureType: CaptureStandard,
	},
	{
		ID:            Cannon,
		Tier:          TierPiece,
		Cost:          40,
		VictoryPoints: 40,
		CanCastle:     true,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialCannonMove}},
		CaptureType: CaptureCannon,
	},
	{
		ID:            Chamberlain,
		Tier:          TierPiece,
		Cost:          45,
		VictoryPoints: 45,
		CanCastle:     true,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialKingOneSquare, SpecialSwapAdjacent}},
		CaptureType: CaptureStandard,
	},
	{
		ID:            Coordinator,
		Tier:          TierPiece,
		Cost:          45,
		VictoryPoints: 45,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Slides: SlideAll},
		CaptureType: CaptureCoordinator,
	},
	{
		ID:            Withdrawer,
		Tier:          TierPiece,
		Cost:          40,
		VictoryPoints: 40,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Slides: SlideAll},
		CaptureType: CaptureWithdrawal,
	},
	{
		ID:            LongLeaper,
		Tier:          TierPiece,
		Cost:          45,
		VictoryPoints: 45,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialLongLeap}},
		CaptureType: CaptureLongLeap,
	},
	{
		ID:            Chameleon,
		Tier:          TierPiece,
		Cost:          80,
		VictoryPoints: 80,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialChameleon}},
		CaptureType: CaptureChameleon,
	},
	{
		ID:            Boxer,
		Tier:          TierPiece,
		Cost:          40,
		VictoryPoints: 40,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Slides: SlideOrthogonal},
		CaptureType: CaptureBoxer,
	},
	{
		ID:            Thief,
		Tier:          TierPiece,
		Cost:          45,
		VictoryPoints: 45,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Slides: SlideAll},
		CaptureType: CaptureThief,
	},
	{
		ID:            Grasshopper,
		Tier:          TierPiece,
		Cost:          20,
		VictoryPoints: 20,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialGrasshopper}},
		CaptureType: CaptureStandard,
	},
	{
		ID:            Pontiff,
		Tier:          TierPiece,
		Cost:          50,
		VictoryPoints: 50,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialBounce}},
		CaptureType: CaptureStandard,
	},
	{
		ID:              Herald,
		Tier:            TierPiece,
		Cost:            40,
		VictoryPoints:   30,
		CanFreeze:       true,
		FreezesAnyColor: true,
		CanBeCaptured:   true, CanBeJumpedOver: true,
		MaxPerArmy:  2,
		Movement:    Movement{Specials: []Special{SpecialHeraldOrthogonal}},
		CaptureType: CaptureNone,
	},
	{
		ID:            Pawn,
		Tier:          TierPawn,
		Cost:          10,
		VictoryPoints: 10,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialPawnForward, SpecialPawnCaptureDiagonal}},
		CaptureType: CaptureStandard,
	},
	{
		ID:            ShogiPawn,
		Tier:          TierPawn,
		Cost:          10,
		VictoryPoints: 10,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialShogiPawn}},
		CaptureType: CaptureStandard,
	},
	{
		ID:            Peasant,
		Tier:          TierPawn,
		Cost:          10,
		VictoryPoints: 10,
		CanBeCaptured: true, CanBeJumpedOver: true,
		Movement:    Movement{Specials: []Special{SpecialPeasantDiagonal, SpecialPeasantCaptureForward}},
		CaptureType: CaptureStandard,
	},
	{
		ID:            Fool,
		Tier:          TierPawn,
		Cost:          25,
		VictoryPoints: 0,
		Unfreezable:   true,
		PromotesTo:    Jester,
		Movement:      Movement{Specials: []Special{SpecialPawnForward}},
		CaptureType:   CaptureNone,
	},
	{
		ID:              Jester,
		Tier:            TierOther,
		Cost:            0,
		VictoryPoints:   -15,
		Unfreezable:     true,
		CanBeJumpedOver: true,
		Movement:        Movement{Specials: []Special{SpecialKingOneSquare}},
		CaptureType:     CaptureNone,
	},
}
