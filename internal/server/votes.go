package server

import (
	"errors"
	"log"
	"strings"
)

// handleVote applies a vote change: each voter holds at most one live vote,
// and a nil target clears it. Repeating the same vote is a no-op for the
// tally, which is recomputed from the vote map on every change.
func (s *Server) handleVote(c *client, req voteRequest) error {
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	return s.store.WithRoom(code, func(room *Room) error {
		if !room.playing() {
			return ErrInvalidPhase
		}
		voter, ok := room.Players[c.identity]
		if !ok {
			return ErrPlayerNotFound
		}
		if voter.Eliminated {
			return ErrUnauthorized
		}

		if req.TargetIdentity == nil {
			delete(room.Votes, voter.Identity)
		} else {
			target, exists := room.Players[*req.TargetIdentity]
			if !exists {
				return ErrPlayerNotFound
			}
			if target.Identity == voter.Identity {
				return errors.New("cannot vote for yourself")
			}
			if target.Eliminated {
				return errors.New("target is already out of the game")
			}
			room.Votes[voter.Identity] = target.Identity
		}

		counts := voteCounts(room)
		s.hub.Broadcast(room.Code, evVoteUpdated, voteUpdatedPayload{Votes: counts})

		majority := room.activeCount()/2 + 1
		for identity, count := range counts {
			if count >= majority {
				s.executePlayer(room, identity)
				break
			}
		}
		return nil
	})
}

// executePlayer resolves a majority execution: the target is revealed,
// removed from contention, and the terminal outcome is evaluated. The caller
// holds the room lock.
func (s *Server) executePlayer(room *Room, identity string) {
	target, ok := room.Players[identity]
	if !ok || target.Eliminated {
		return
	}
	target.Eliminated = true
	delete(room.Votes, identity)
	for voter, voted := range room.Votes {
		if voted == identity {
			delete(room.Votes, voter)
		}
	}
	log.Printf("player executed room_code=%s uuid=%s role=%s", room.Code, identity, target.Role)
	s.hub.Broadcast(room.Code, evPlayerKilled, playerKilledPayload{
		Identity:   target.Identity,
		PlayerName: target.Name,
		IsWerewolf: target.isWerewolf(),
	})

	if !target.isWerewolf() {
		reason := reasonInnocentExecuted
		if target.Role == roleSeer {
			reason = reasonSeerExecuted
		}
		s.finishGame(room, sideWerewolves, reason, target.Name)
		return
	}
	if room.livingWerewolves() == 0 {
		s.finishGame(room, sideCitizens, reasonWerewolvesWipedOut, target.Name)
		return
	}
	// Werewolves remain; the round carries on.
	s.hub.Broadcast(room.Code, evVoteUpdated, voteUpdatedPayload{Votes: voteCounts(room)})
}
