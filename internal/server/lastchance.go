package server

import (
	"log"
	"strings"
	"time"
)

// armLastChance opens the accusation window: an absolute deadline on the
// room plus a timer that fires the authoritative expiry. The caller holds
// the room lock and has just set phase to word-guessed.
func (s *Server) armLastChance(room *Room) {
	window := time.Duration(s.cfg.LastChanceSeconds) * time.Second
	room.LastChanceDeadline = s.now().Add(window)

	for _, player := range room.orderedPlayers() {
		if player.Connected && player.mayAccuse() && !player.Eliminated {
			s.hub.SendIdentity(player.Identity, evLastChanceOpen, timerUpdatePayload{
				SecondsLeft: s.cfg.LastChanceSeconds,
			})
		}
	}
	s.hub.Broadcast(room.Code, evTimerUpdate, timerUpdatePayload{
		SecondsLeft: s.cfg.LastChanceSeconds,
	})

	code := room.Code
	s.timersMu.Lock()
	if existing, ok := s.timers[code]; ok {
		existing.Stop()
	}
	s.timers[code] = time.AfterFunc(window, func() {
		s.lastChanceExpired(code)
	})
	s.timersMu.Unlock()
}

func (s *Server) cancelLastChance(code string) {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	if timer, ok := s.timers[code]; ok {
		timer.Stop()
		delete(s.timers, code)
	}
}

// remainingLastChance computes the window left from the absolute deadline.
// A reconnecting accuser sees the reduced time, never a fresh window.
func (s *Server) remainingLastChance(room *Room) int {
	if room.LastChanceDeadline.IsZero() {
		return 0
	}
	remaining := room.LastChanceDeadline.Sub(s.now())
	if remaining < 0 {
		return 0
	}
	return int(remaining / time.Second)
}

// lastChanceExpired is the timer callback. The phase is re-validated under
// the room lock: a vote may have ended the game while the timer was in
// flight, in which case the expiry is stale and does nothing.
func (s *Server) lastChanceExpired(code string) {
	_ = s.store.WithRoom(code, func(room *Room) error {
		if room.Phase != phaseWordGuessed {
			return nil
		}
		if s.now().Before(room.LastChanceDeadline) {
			return nil
		}
		log.Printf("last-chance window expired room_code=%s", code)
		s.finishGame(room, sideCitizens, reasonTimeExpired, "")
		return nil
	})
}

// handleTimerExpired is the client-reported expiry fallback. It is validated
// against the authoritative deadline and phase, so a forged or early signal
// has no effect, and repeated signals resolve at most one game.
func (s *Server) handleTimerExpired(c *client, req timerExpiredRequest) error {
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	return s.store.WithRoom(code, func(room *Room) error {
		player, ok := room.Players[c.identity]
		if !ok {
			return ErrPlayerNotFound
		}
		if !player.mayAccuse() {
			return ErrUnauthorized
		}
		if room.Phase != phaseWordGuessed {
			return ErrInvalidPhase
		}
		if s.now().Before(room.LastChanceDeadline) {
			// Client clock ran ahead; the server timer will handle it.
			return nil
		}
		s.finishGame(room, sideCitizens, reasonTimeExpired, "")
		return nil
	})
}

// handleLastChance resolves the alpha's accusation: naming the seer wins the
// game for the werewolves, anyone else loses it.
func (s *Server) handleLastChance(c *client, req lastChanceRequest) error {
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	return s.store.WithRoom(code, func(room *Room) error {
		player, ok := room.Players[c.identity]
		if !ok {
			return ErrPlayerNotFound
		}
		if !player.mayAccuse() || player.Eliminated {
			return ErrUnauthorized
		}
		if room.Phase != phaseWordGuessed {
			return ErrInvalidPhase
		}
		target, exists := room.Players[req.target()]
		if !exists {
			return ErrPlayerNotFound
		}
		if target.Identity == player.Identity {
			return ErrUnauthorized
		}
		log.Printf("last-chance accusation room_code=%s accuser=%s target=%s target_role=%s",
			room.Code, player.Identity, target.Identity, target.Role)
		if target.Role == roleSeer {
			s.finishGame(room, sideWerewolves, reasonSeerFound, "")
		} else {
			s.finishGame(room, sideCitizens, reasonWrongAccusation, "")
		}
		return nil
	})
}
