package server

import (
	"log"
	"time"
)

// finishGame is the single chokepoint for terminal outcomes. It builds the
// full-reveal result, broadcasts it once, stores it verbatim on the room and
// on every participant for resume, and folds the room back to waiting. A
// second call for the same game finds the room already waiting and does
// nothing, so a vote racing an accusation ends the game exactly once.
//
// The caller holds the room lock.
func (s *Server) finishGame(room *Room, winner, reason, killedName string) {
	if room.Phase == phaseWaiting {
		return
	}

	result := &GameResult{
		Winner:     winner,
		Reason:     reason,
		SecretWord: room.SecretWord,
		KilledName: killedName,
		EndedAt:    s.now(),
	}
	for _, player := range room.orderedPlayers() {
		result.Roles = append(result.Roles, RoleReveal{
			Identity:   player.Identity,
			Name:       player.Name,
			Role:       player.Role,
			IsShahrdar: player.IsShahrdar,
			Eliminated: player.Eliminated,
		})
		player.LastResult = result
	}
	room.LastResult = result

	room.Phase = phaseWaiting
	room.SecretWord = ""
	room.Votes = make(map[string]string)
	room.LastChanceDeadline = time.Time{}

	log.Printf("game ended room_code=%s winner=%s reason=%q", room.Code, winner, reason)
	s.hub.Broadcast(room.Code, evGameEnded, result)
	s.cancelLastChance(room.Code)

	if err := s.persistMatch(room, result); err != nil {
		log.Printf("persist match failed room_code=%s error=%v", room.Code, err)
	}
}
