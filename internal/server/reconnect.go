package server

// replayState re-derives the phase-consistent view for a participant who
// just reconnected, and sends it only to them; connected peers see nothing
// replayed. It is pure projection over current room state, so running it
// twice for the same reconnection sends the same view twice and changes
// nothing. The caller holds the room lock.
func (s *Server) replayState(room *Room, player *Player) {
	switch {
	case room.Phase == phaseWaiting:
		if player.LastResult != nil {
			s.hub.SendIdentity(player.Identity, evGameEnded, player.LastResult)
		}
	case room.playing():
		s.hub.SendIdentity(player.Identity, evGameStarted, gameStartedPayload{
			Players:    rosterView(room, player),
			WordLength: len([]rune(room.SecretWord)),
			Quota:      s.cfg.QuestionQuota,
		})
		if wordVisible(room, player) {
			s.hub.SendIdentity(player.Identity, evWordRevealed, wordRevealedPayload{
				SecretWord: room.SecretWord,
				Role:       player.Role,
			})
		}
		if player.isWerewolf() {
			s.hub.SendIdentity(player.Identity, evTeammates, teammatesPayload{
				Teammates: teammates(room, player),
			})
		}
		s.hub.SendIdentity(player.Identity, evVoteUpdated, voteUpdatedPayload{
			Votes: voteCounts(room),
		})
		if room.Phase == phaseWordGuessed {
			s.hub.SendIdentity(player.Identity, evTimerUpdate, timerUpdatePayload{
				SecondsLeft: s.remainingLastChance(room),
			})
		}
	}
}
