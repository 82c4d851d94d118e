package server

import (
	"fmt"
	"testing"
	"time"
)

func makeRoster(n int) *Room {
	room := &Room{
		Code:      "TEST",
		Phase:     phaseWaiting,
		Players:   make(map[string]*Player),
		Votes:     make(map[string]string),
		CreatedAt: time.Now().UTC(),
	}
	for i := 0; i < n; i++ {
		identity := fmt.Sprintf("id-%d", i)
		room.Players[identity] = &Player{Identity: identity, Name: fmt.Sprintf("p%d", i), Connected: true}
		room.Order = append(room.Order, identity)
	}
	return room
}

func countRoles(room *Room) (alphas, wolves, seers, citizens, shahrdars int) {
	for _, player := range room.Players {
		switch player.Role {
		case roleAlphaWerewolf:
			alphas++
		case roleWerewolf:
			wolves++
		case roleSeer:
			seers++
		case roleCitizen:
			citizens++
		}
		if player.IsShahrdar {
			shahrdars++
		}
	}
	return
}

func TestAssignRolesPartition(t *testing.T) {
	for n := 3; n <= 12; n++ {
		room := makeRoster(n)
		assignRoles(room)

		alphas, wolves, seers, citizens, shahrdars := countRoles(room)
		if alphas != 1 {
			t.Fatalf("n=%d: expected exactly one alpha, got %d", n, alphas)
		}
		if total := alphas + wolves; total != werewolfCount(n) {
			t.Fatalf("n=%d: expected %d werewolves total, got %d", n, werewolfCount(n), total)
		}
		if seers != 1 {
			t.Fatalf("n=%d: expected exactly one seer, got %d", n, seers)
		}
		if shahrdars != 1 {
			t.Fatalf("n=%d: expected exactly one shahrdar, got %d", n, shahrdars)
		}
		if want := n - werewolfCount(n) - 1; citizens != want {
			t.Fatalf("n=%d: expected %d citizens, got %d", n, want, citizens)
		}
	}
}

func TestAssignRolesClearsPreviousGame(t *testing.T) {
	room := makeRoster(5)
	assignRoles(room)
	for _, player := range room.Players {
		player.QuestionsAsked = 7
		player.Eliminated = true
		player.LastResult = &GameResult{Winner: sideCitizens}
	}

	assignRoles(room)
	for identity, player := range room.Players {
		if player.Role == "" {
			t.Fatalf("player %s left without a role", identity)
		}
		if player.QuestionsAsked != 0 {
			t.Fatalf("player %s kept a stale question counter", identity)
		}
		if player.Eliminated {
			t.Fatalf("player %s kept a stale elimination flag", identity)
		}
		if player.LastResult != nil {
			t.Fatalf("player %s kept a stale result", identity)
		}
	}
	alphas, _, seers, _, shahrdars := countRoles(room)
	if alphas != 1 || seers != 1 || shahrdars != 1 {
		t.Fatalf("reassignment broke the partition: alphas=%d seers=%d shahrdars=%d", alphas, seers, shahrdars)
	}
}

// TestAssignRolesUniform checks the shuffle gives every player a fair shot
// at the alpha role: over many trials the per-player alpha frequency must
// stay within a generous band around the uniform expectation.
func TestAssignRolesUniform(t *testing.T) {
	const n = 5
	const trials = 5000
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		room := makeRoster(n)
		assignRoles(room)
		for identity, player := range room.Players {
			if player.Role == roleAlphaWerewolf {
				counts[identity]++
			}
		}
	}
	expected := float64(trials) / float64(n)
	for identity, count := range counts {
		deviation := float64(count) - expected
		if deviation < 0 {
			deviation = -deviation
		}
		// 4 standard deviations of a binomial(trials, 1/n).
		if deviation > 4*28.3 {
			t.Fatalf("alpha assignment skewed for %s: got %d, expected about %.0f", identity, count, expected)
		}
	}
	if len(counts) != n {
		t.Fatalf("some player never drew alpha across %d trials", trials)
	}
}
