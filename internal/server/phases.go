package server

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

func (s *Server) handleStartGame(c *client, req startGameRequest) error {
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	word, err := s.words.RandomWord()
	if err != nil {
		return err
	}
	return s.store.WithRoom(code, func(room *Room) error {
		if c.identity != room.CreatorIdentity {
			return ErrUnauthorized
		}
		if room.Phase != phaseWaiting {
			return ErrInvalidPhase
		}
		if len(room.Players) < s.cfg.MinPlayers {
			return ErrInsufficientRoster
		}

		assignRoles(room)
		room.Phase = phasePlaying
		room.SecretWord = word
		room.MatchKey = uuid.NewString()
		room.Votes = make(map[string]string)
		room.QuestionCount = 0
		room.LastResult = nil

		log.Printf("game started room_code=%s players=%d word_length=%d",
			room.Code, len(room.Players), len([]rune(word)))
		s.pushGameStart(room)
		return nil
	})
}

func (s *Server) handleRestartGame(c *client, req restartGameRequest) error {
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	err := s.store.WithRoom(code, func(room *Room) error {
		if c.identity != room.CreatorIdentity {
			return ErrUnauthorized
		}
		room.Phase = phaseWaiting
		room.SecretWord = ""
		room.MatchKey = ""
		room.Votes = make(map[string]string)
		room.QuestionCount = 0
		room.LastChanceDeadline = time.Time{}
		for _, player := range room.Players {
			player.Role = ""
			player.IsShahrdar = false
			player.QuestionsAsked = 0
			player.Eliminated = false
		}
		log.Printf("game reset room_code=%s", room.Code)
		s.hub.Broadcast(room.Code, evGameReset, gameResetPayload{RoomCode: room.Code})
		s.pushRoomUpdate(room)
		return nil
	})
	if err != nil {
		return err
	}
	s.cancelLastChance(code)
	return nil
}
