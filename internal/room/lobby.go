package room

import (
	"github.com/liamiak1/hyper-fairy-chess/internal/board"
	"github.com/liamiak1/hyper-fairy-chess/internal/protocol"
)

func (r *Room) handleJoin(id, name string) {
	if r.phase != PhaseWaiting {
		r.rejectJoin(id, protocol.RoomErrAlreadyStarted, "game already started")
		return
	}
	if len(r.players) >= 2 {
		r.rejectJoin(id, protocol.RoomErrFull, "room is full")
		return
	}

	p := r.seat(id, name)
	log.Infof("room %s: %s joined as %s", r.Code, p.Name, p.Color)

	r.send.Send(p.ID, protocol.RoomJoined{
		Envelope: r.env(protocol.TypeRoomJoined),
		RoomCode: r.Code,
		PlayerID: p.ID,
		Role:     p.Color,
		Settings: r.settings,
		Players:  r.playersInfo(),
		Phase:    string(r.phase),
	})
	if o := r.opponent(p.ID); o != nil {
		r.send.Send(o.ID, protocol.PlayerJoined{
			Envelope: r.env(protocol.TypePlayerJoined),
			Player:   p.info(),
		})
	}

	if len(r.players) == 2 {
		r.startCountdown()
	}
}

func (r *Room) rejectJoin(id, code, msg string) {
	r.send.Send(id, protocol.RoomError{
		Envelope: r.env(protocol.TypeRoomError),
		Code:     code,
		Message:  msg,
	})
	r.send.Release(id)
}

// removePlayer unseats a player while the room is still waiting. Any
// running countdown is void with a seat open again, and an empty room
// ends so the sweeper can collect it.
func (r *Room) removePlayer(p *Player, reason string) {
	for i, q := range r.players {
		if q.ID == p.ID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	if r.countdownTimer != nil {
		r.countdownTimer.Stop()
		r.countdownTimer = nil
		r.countdownLeft = 0
	}
	r.send.Broadcast(protocol.PlayerLeft{
		Envelope: r.env(protocol.TypePlayerLeft),
		PlayerID: p.ID,
		Reason:   reason,
	})
	r.send.Release(p.ID)
	if len(r.players) == 0 {
		log.Infof("room %s: empty, closing", r.Code)
		r.setPhase(PhaseEnded)
	}
}

func (r *Room) handleLeave(p *Player) {
	switch r.phase {
	case PhaseWaiting:
		log.Infof("room %s: %s left", r.Code, p.Name)
		r.removePlayer(p, protocol.LeftReasonLeft)
	case PhaseEnded:
		p.Connected = false
		r.send.Release(p.ID)
	default:
		// Leaving a live game forfeits it.
		log.Infof("room %s: %s left mid-game, forfeiting", r.Code, p.Name)
		p.Connected = false
		r.game.Resign(p.Color)
		r.send.Broadcast(protocol.PlayerLeft{
			Envelope: r.env(protocol.TypePlayerLeft),
			PlayerID: p.ID,
			Reason:   protocol.LeftReasonLeft,
		})
		r.endGame()
		r.send.Release(p.ID)
	}
}

func (r *Room) handleDisconnect(id string) {
	p := r.player(id)
	if p == nil {
		return
	}
	p.Connected = false
	p.LastSeen = r.clock.Now()

	switch r.phase {
	case PhaseWaiting:
		// No game to preserve; free the seat.
		r.removePlayer(p, protocol.LeftReasonDisconnected)
	case PhaseEnded:
		// Nothing to do.
	default:
		log.Infof("room %s: %s disconnected, grace %s", r.Code, p.Name, disconnectGrace)
		r.send.Broadcast(protocol.PlayerDisconnected{
			Envelope:       r.env(protocol.TypePlayerDisconnected),
			PlayerID:       p.ID,
			TimeoutSeconds: int(disconnectGrace.Seconds()),
		})
		r.armGrace(p.ID)
	}
}

func (r *Room) armGrace(id string) {
	if t := r.graceTimers[id]; t != nil {
		t.Stop()
	}
	r.graceTimers[id] = r.clock.AfterFunc(disconnectGrace, func() {
		r.Post(Event{kind: evGraceExpired, player: id})
	})
}

// expireGrace ends the game against a player who never came back.
func (r *Room) expireGrace(id string) {
	delete(r.graceTimers, id)
	p := r.player(id)
	if p == nil || p.Connected {
		return
	}
	switch r.phase {
	case PhaseDrafting, PhasePlacement, PhasePlaying:
		log.Infof("room %s: %s never reconnected, forfeiting", r.Code, p.Name)
		r.game.TimeoutLoss(p.Color)
		r.send.Broadcast(protocol.PlayerLeft{
			Envelope: r.env(protocol.TypePlayerLeft),
			PlayerID: p.ID,
			Reason:   protocol.LeftReasonTimeout,
		})
		r.endGame()
	}
}

func (r *Room) handleReconnect(id string) {
	p := r.player(id)
	if p == nil {
		r.rejectJoin(id, protocol.RoomErrNotFound, "no such player in this room")
		return
	}
	if t := r.graceTimers[id]; t != nil {
		t.Stop()
		delete(r.graceTimers, id)
	}
	p.Connected = true
	p.LastSeen = r.clock.Now()
	log.Infof("room %s: %s reconnected", r.Code, p.Name)

	if o := r.opponent(p.ID); o != nil {
		r.send.Send(o.ID, protocol.PlayerReconnected{
			Envelope: r.env(protocol.TypePlayerReconnected),
			PlayerID: p.ID,
		})
	}
	r.send.Send(p.ID, r.syncState(p))
}

// syncState rebuilds one client. During drafting a player sees only
// their own submission; both drafts open up at the reveal.
func (r *Room) syncState(p *Player) protocol.SyncState {
	msg := protocol.SyncState{
		Envelope: r.env(protocol.TypeSyncState),
		Phase:    string(r.phase),
		Settings: r.settings,
		Players:  r.playersInfo(),
		MyColor:  p.Color,
	}

	switch r.phase {
	case PhaseDrafting:
		var submitted []string
		for _, q := range r.players {
			if r.submitted[q.Color] {
				submitted = append(submitted, q.ID)
			}
		}
		msg.Draft = &protocol.DraftProgress{
			Budget:    r.settings.Budget,
			Deadline:  r.draftDeadline.UnixMilli(),
			Submitted: submitted,
		}
		if r.submitted[p.Color] {
			if p.Color == board.White {
				msg.WhiteDraft = r.drafts[board.White]
			} else {
				msg.BlackDraft = r.drafts[board.Black]
			}
		}
	case PhasePlacement:
		msg.GameState = r.game
		msg.Placement = protocol.NewPlacementView(r.placing)
		msg.WhiteDraft = r.drafts[board.White]
		msg.BlackDraft = r.drafts[board.Black]
	case PhasePlaying, PhaseEnded:
		msg.GameState = r.game
		msg.WhiteDraft = r.drafts[board.White]
		msg.BlackDraft = r.drafts[board.Black]
	}

	return msg
}
