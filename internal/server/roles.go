package server

import "math/rand"

// werewolfCount is the total faction size for a roster of n, alpha included.
func werewolfCount(n int) int {
	count := n / 3
	if count < 1 {
		count = 1
	}
	return count
}

// assignRoles partitions the roster into one alpha werewolf, werewolfCount-1
// rank-and-file werewolves, one seer and citizens, then marks one uniformly
// random player (any role) as the shahrdar. Previous role, overlay and quota
// state is cleared first so a restart never leaks the prior game.
func assignRoles(room *Room) {
	players := room.orderedPlayers()
	for _, player := range players {
		player.Role = ""
		player.IsShahrdar = false
		player.QuestionsAsked = 0
		player.Eliminated = false
		player.LastResult = nil
	}

	perm := rand.Perm(len(players))
	wolves := werewolfCount(len(players))

	idx := 0
	players[perm[idx]].Role = roleAlphaWerewolf
	idx++
	for i := 1; i < wolves && idx < len(perm); i++ {
		players[perm[idx]].Role = roleWerewolf
		idx++
	}
	players[perm[idx]].Role = roleSeer
	idx++
	for ; idx < len(perm); idx++ {
		players[perm[idx]].Role = roleCitizen
	}

	players[rand.Intn(len(players))].IsShahrdar = true
}
