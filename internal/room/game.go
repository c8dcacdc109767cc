package room

import (
	"encoding/json"
	"time"

	"github.com/liamiak1/hyper-fairy-chess/internal/archive"
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/draft"
	"github.com/liamiak1/hyper-fairy-chess/internal/engine"
	"github.com/liamiak1/hyper-fairy-chess/internal/placement"
	"github.com/liamiak1/hyper-fairy-chess/internal/protocol"
)

// startCountdown begins the pre-draft countdown once the second player
// is seated. One tick per second; the last tick opens the draft.
func (r *Room) startCountdown() {
	r.countdownLeft = countdownSeconds
	r.send.Broadcast(protocol.DraftCountdown{
		Envelope:      r.env(protocol.TypeDraftCountdown),
		TimeRemaining: r.countdownLeft,
	})
	r.countdownTimer = r.clock.AfterFunc(time.Second, func() {
		r.Post(Event{kind: evCountdownTick})
	})
}

func (r *Room) tickCountdown() {
	if r.phase != PhaseWaiting || r.countdownLeft == 0 {
		return
	}
	r.countdownLeft--
	if r.countdownLeft == 0 {
		r.countdownTimer = nil
		r.beginDraft()
		return
	}
	r.send.Broadcast(protocol.DraftCountdown{
		Envelope:      r.env(protocol.TypeDraftCountdown),
		TimeRemaining: r.countdownLeft,
	})
	r.countdownTimer = r.clock.AfterFunc(time.Second, func() {
		r.Post(Event{kind: evCountdownTick})
	})
}

func (r *Room) beginDraft() {
	r.setPhase(PhaseDrafting)
	r.game = engine.NewGame(r.size, r.settings.Budget)
	r.game.BeginDraft()

	limit := time.Duration(r.settings.DraftTimeLimit) * time.Second
	r.draftDeadline = r.clock.Now().Add(limit)
	r.draftTimer = r.clock.AfterFunc(limit, func() {
		r.Post(Event{kind: evDraftDeadline})
	})

	log.Infof("room %s: draft open, budget %d, %s to submit", r.Code, r.settings.Budget, limit)
	r.send.Broadcast(protocol.DraftStart{
		Envelope:  r.env(protocol.TypeDraftStart),
		Budget:    r.settings.Budget,
		BoardSize: r.settings.BoardSize,
		TimeLimit: r.settings.DraftTimeLimit,
	})
}

func (r *Room) handleDraftSubmit(p *Player, data json.RawMessage) {
	reject := func(reason, msg string) {
		r.send.Send(p.ID, protocol.DraftRejected{
			Envelope: r.env(protocol.TypeDraftRejected),
			Reason:   reason,
			Message:  msg,
		})
	}

	if r.phase != PhaseDrafting {
		reject(protocol.DraftRejectNotDrafting, "no draft in progress")
		return
	}
	if r.submitted[p.Color] {
		reject(protocol.DraftRejectAlreadySubmitted, "draft already submitted")
		return
	}

	var msg protocol.DraftSubmit
	if err := json.Unmarshal(data, &msg); err != nil {
		reject(protocol.DraftRejectInvalidArmy, "malformed draft")
		return
	}
	d, err := draft.FromSelections(msg.Draft)
	if err != nil {
		reject(protocol.DraftRejectInvalidArmy, err.Error())
		return
	}
	if err := draft.Validate(d, r.settings.Budget, r.size); err != nil {
		reject(protocol.DraftRejectInvalidArmy, err.Error())
		return
	}

	r.drafts[p.Color] = d
	r.submitted[p.Color] = true
	r.game.RemainingBudget.Set(p.Color, r.settings.Budget-d.BudgetSpent)
	log.Infof("room %s: %s submitted a %d-point army", r.Code, p.Name, d.BudgetSpent)

	r.send.Broadcast(protocol.DraftSubmitted{
		Envelope: r.env(protocol.TypeDraftSubmitted),
		PlayerID: p.ID,
	})

	if r.submitted[board.White] && r.submitted[board.Black] {
		r.finishDraft()
	}
}

// expireDraft fills every missing submission with the fallback army
// when the deadline passes.
func (r *Room) expireDraft() {
	if r.phase != PhaseDrafting {
		return
	}
	for _, c := range [2]board.Color{board.White, board.Black} {
		if r.submitted[c] {
			continue
		}
		d := draft.FallbackArmy()
		r.drafts[c] = d
		r.submitted[c] = true
		r.game.RemainingBudget.Set(c, r.settings.Budget-d.BudgetSpent)
		if p := r.byColor(c); p != nil {
			log.Infof("room %s: %s missed the draft deadline, fallback army assigned", r.Code, p.Name)
			r.send.Broadcast(protocol.DraftTimeout{
				Envelope:        r.env(protocol.TypeDraftTimeout),
				DefaultedPlayer: p.ID,
			})
		}
	}
	r.finishDraft()
}

// finishDraft reveals both armies and schedules the placement start
// after a short delay so clients can show the reveal.
func (r *Room) finishDraft() {
	if r.draftTimer != nil {
		r.draftTimer.Stop()
		r.draftTimer = nil
	}
	r.send.Broadcast(protocol.DraftReveal{
		Envelope:   r.env(protocol.TypeDraftReveal),
		WhiteDraft: r.drafts[board.White],
		BlackDraft: r.drafts[board.Black],
	})
	r.revealTimer = r.clock.AfterFunc(revealDelay, func() {
		r.Post(Event{kind: evRevealDone})
	})
}

func (r *Room) beginPlacement() {
	if r.phase != PhaseDrafting {
		return
	}
	r.setPhase(PhasePlacement)
	r.revealTimer = nil
	r.game.BeginPlacement()
	r.placing = placement.NewState(r.game.Board, r.drafts[board.White], r.drafts[board.Black])

	log.Infof("room %s: placement open", r.Code)
	r.send.Broadcast(protocol.PlacementStart{
		Envelope:  r.env(protocol.TypePlacementStart),
		Placement: protocol.NewPlacementView(r.placing),
	})
}

func (r *Room) handlePlacePiece(p *Player, data json.RawMessage) {
	fail := func(msg string) {
		var view *protocol.PlacementView
		if r.placing != nil {
			view = protocol.NewPlacementView(r.placing)
		}
		r.send.Send(p.ID, protocol.PlacementError{
			Envelope:  r.env(protocol.TypePlacementError),
			Message:   msg,
			Placement: view,
		})
	}

	if r.phase != PhasePlacement {
		fail("no placement in progress")
		return
	}
	var msg protocol.PlacePiece
	if err := json.Unmarshal(data, &msg); err != nil {
		fail("malformed placement")
		return
	}

	placed, err := r.placing.Place(r.game.Board, p.Color, msg.PieceID, msg.Position)
	if err != nil {
		fail(err.Error())
		return
	}

	out := protocol.PiecePlaced{
		Envelope:   r.env(protocol.TypePiecePlaced),
		PieceID:    placed.Piece.ID,
		Position:   placed.Requested,
		PawnSwap:   placed.Swap,
		NextPlacer: r.placing.CurrentPlacer,
		Placement:  protocol.NewPlacementView(r.placing),
		GameState:  r.game,
	}
	if placed.Actual != placed.Requested {
		actual := placed.Actual
		out.ActualPosition = &actual
	}
	r.send.Broadcast(out)

	if r.placing.Complete() {
		r.beginPlay()
	}
}

func (r *Room) beginPlay() {
	r.setPhase(PhasePlaying)
	r.game.BeginPlay()
	log.Infof("room %s: game on", r.Code)
	r.send.Broadcast(protocol.GameStart{
		Envelope:  r.env(protocol.TypeGameStart),
		GameState: r.game,
	})
}

func (r *Room) handleMakeMove(p *Player, data json.RawMessage) {
	reject := func(reason string) {
		r.send.Send(p.ID, protocol.MoveRejected{
			Envelope:     r.env(protocol.TypeMoveRejected),
			Reason:       reason,
			CorrectState: r.game,
		})
	}

	if r.phase != PhasePlaying {
		if r.phase == PhaseEnded {
			reject(protocol.RejectGameOver)
		} else {
			reject(protocol.RejectInvalidMove)
		}
		return
	}
	var msg protocol.MakeMove
	if err := json.Unmarshal(data, &msg); err != nil {
		reject(protocol.RejectInvalidMove)
		return
	}

	outcome := r.game.ApplyMove(p.Color, msg.MoveRequest)
	if !outcome.OK() {
		reject(rejectReason(outcome.Err))
		return
	}

	r.drawOffer = ""
	r.send.Broadcast(protocol.MoveMade{
		Envelope:  r.env(protocol.TypeMoveMade),
		Move:      outcome.Record,
		GameState: r.game,
	})

	if r.game.Result != nil {
		r.endGame()
	}
}

func rejectReason(err engine.MoveError) string {
	switch err {
	case engine.MoveErrNotYourTurn:
		return protocol.RejectNotYourTurn
	case engine.MoveErrGameOver, engine.MoveErrWrongPhase:
		return protocol.RejectGameOver
	default:
		return protocol.RejectInvalidMove
	}
}

// handleOfferDraw records a standing offer. A move by either side
// withdraws it.
func (r *Room) handleOfferDraw(p *Player) {
	if r.phase != PhasePlaying || r.drawOffer != "" {
		return
	}
	r.drawOffer = p.ID
	log.Infof("room %s: %s offers a draw", r.Code, p.Name)
	if o := r.opponent(p.ID); o != nil {
		r.send.Send(o.ID, protocol.DrawOffered{
			Envelope: r.env(protocol.TypeDrawOffered),
			PlayerID: p.ID,
		})
	}
}

func (r *Room) handleRespondDraw(p *Player, data json.RawMessage) {
	if r.phase != PhasePlaying || r.drawOffer == "" || r.drawOffer == p.ID {
		return
	}
	var msg protocol.RespondDraw
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if !msg.Accept {
		log.Infof("room %s: %s declines the draw", r.Code, p.Name)
		r.drawOffer = ""
		return
	}
	log.Infof("room %s: draw agreed", r.Code)
	r.game.AgreeDraw()
	r.endGame()
}

func (r *Room) handleResign(p *Player) {
	switch r.phase {
	case PhaseDrafting, PhasePlacement, PhasePlaying:
		log.Infof("room %s: %s resigns", r.Code, p.Name)
		r.game.Resign(p.Color)
		r.endGame()
	}
}

// endGame closes out a finished game: timers die, the result goes to
// both players and the record goes to the archive.
func (r *Room) endGame() {
	r.stopTimers()
	r.drawOffer = ""
	r.setPhase(PhaseEnded)

	r.send.Broadcast(protocol.GameOver{
		Envelope:   r.env(protocol.TypeGameOver),
		Result:     r.game.Result,
		FinalState: r.game,
	})

	if r.archive != nil {
		if err := r.archive.SaveGame(r.buildRecord()); err != nil {
			log.Errorf("room %s: archive failed: %v", r.Code, err)
		}
	}
}

func (r *Room) buildRecord() *archive.GameRecord {
	return &archive.GameRecord{
		Code:       r.Code,
		Settings:   r.settings,
		Players:    r.playersInfo(),
		WhiteDraft: r.drafts[board.White],
		BlackDraft: r.drafts[board.Black],
		Moves:      r.game.MoveHistory,
		Result:     r.game.Result,
		CreatedAt:  r.createdAt,
		EndedAt:    r.clock.Now(),
	}
}
