package server

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	phaseWaiting     = "waiting"
	phasePlaying     = "playing"
	phaseWordGuessed = "word-guessed"
)

const (
	roleAlphaWerewolf = "alpha-werewolf"
	roleWerewolf      = "werewolf"
	roleSeer          = "seer"
	roleCitizen       = "citizen"
)

const (
	sideWerewolves = "werewolves"
	sideCitizens   = "citizens"
)

const (
	reasonInnocentExecuted   = "an innocent was executed by the town"
	reasonSeerExecuted       = "the seer was executed by the town"
	reasonWerewolvesWipedOut = "all werewolves were executed"
	reasonSeerFound          = "the alpha werewolf found the seer"
	reasonWrongAccusation    = "the alpha werewolf accused the wrong player"
	reasonTimeExpired        = "the alpha werewolf ran out of time"
)

type Room struct {
	Code               string
	CreatorIdentity    string
	Phase              string
	SecretWord         string
	MatchKey           string
	Players            map[string]*Player
	Order              []string
	Votes              map[string]string
	QuestionCount      int
	LastChanceDeadline time.Time
	LastResult         *GameResult
	CreatedAt          time.Time
}

type Player struct {
	Identity       string
	Name           string
	Conn           *websocket.Conn
	Connected      bool
	Role           string
	IsShahrdar     bool
	QuestionsAsked int
	Eliminated     bool
	LastResult     *GameResult
}

// GameResult is the terminal outcome of one game, stored verbatim for resume.
type GameResult struct {
	Winner     string       `json:"winner"`
	Reason     string       `json:"reason"`
	SecretWord string       `json:"secretWord"`
	Roles      []RoleReveal `json:"roles"`
	KilledName string       `json:"killedName,omitempty"`
	EndedAt    time.Time    `json:"endedAt"`
}

type RoleReveal struct {
	Identity   string `json:"uuid"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsShahrdar bool   `json:"isShahrdar"`
	Eliminated bool   `json:"eliminated"`
}

func (p *Player) isWerewolf() bool {
	return p.Role == roleWerewolf || p.Role == roleAlphaWerewolf
}

// mayAccuse reports whether the player holds the last-chance privilege:
// the alpha itself, or a rank-and-file werewolf carrying the shahrdar duty.
func (p *Player) mayAccuse() bool {
	if p.Role == roleAlphaWerewolf {
		return true
	}
	return p.Role == roleWerewolf && p.IsShahrdar
}

// orderedPlayers returns the roster in join order.
func (r *Room) orderedPlayers() []*Player {
	players := make([]*Player, 0, len(r.Players))
	for _, identity := range r.Order {
		if player, ok := r.Players[identity]; ok {
			players = append(players, player)
		}
	}
	return players
}

// activeCount is the number of players still in contention.
func (r *Room) activeCount() int {
	count := 0
	for _, player := range r.Players {
		if !player.Eliminated {
			count++
		}
	}
	return count
}

func (r *Room) livingWerewolves() int {
	count := 0
	for _, player := range r.Players {
		if player.isWerewolf() && !player.Eliminated {
			count++
		}
	}
	return count
}

func (r *Room) playing() bool {
	return r.Phase == phasePlaying || r.Phase == phaseWordGuessed
}
