package server

// pushRoomUpdate sends each connected player their own redacted roster. The
// projection runs per viewer, so a werewolf's update names its packmates
// while a citizen's shows nothing but the shahrdar.
func (s *Server) pushRoomUpdate(room *Room) {
	for _, player := range room.orderedPlayers() {
		if !player.Connected {
			continue
		}
		s.hub.SendIdentity(player.Identity, evRoomUpdated, roomUpdatedPayload{
			Players:         rosterView(room, player),
			CreatorIdentity: room.CreatorIdentity,
			Phase:           room.Phase,
		})
	}
}

// pushGameStart delivers the start-of-game view: the redacted roster and word
// length to everyone, the secret word to entitled players, and the teammate
// list to werewolves.
func (s *Server) pushGameStart(room *Room) {
	wordLength := len([]rune(room.SecretWord))
	for _, player := range room.orderedPlayers() {
		if !player.Connected {
			continue
		}
		s.hub.SendIdentity(player.Identity, evGameStarted, gameStartedPayload{
			Players:    rosterView(room, player),
			WordLength: wordLength,
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
	}
}

func voteCounts(room *Room) map[string]int {
	counts := make(map[string]int)
	for _, target := range room.Votes {
		counts[target]++
	}
	return counts
}
