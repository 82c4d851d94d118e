package server

import (
	"errors"
	"log"
	"strings"
)

// handleAskQuestion is the canonical submission path: every free-text entry
// is checked against the secret word first, and only non-matching text is
// treated as a question that consumes quota.
func (s *Server) handleAskQuestion(c *client, req askQuestionRequest) error {
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	return s.store.WithRoom(code, func(room *Room) error {
		player, err := s.submitter(room, c)
		if err != nil {
			return err
		}
		if guessMatches(req.Question, room.SecretWord) {
			s.wordFound(room, player, req.Question)
			return nil
		}
		if player.QuestionsAsked >= s.cfg.QuestionQuota {
			return ErrQuotaExceeded
		}
		player.QuestionsAsked++
		index := room.QuestionCount
		room.QuestionCount++
		s.hub.Broadcast(room.Code, evQuestionAsked, questionAskedPayload{
			PlayerName:    player.Name,
			Question:      req.Question,
			QuestionIndex: index,
			QuestionsLeft: s.cfg.QuestionQuota - player.QuestionsAsked,
			IsGuess:       false,
		})
		return nil
	})
}

// handleGuessWord is the dedicated guess channel. It shares the matching and
// arming logic with handleAskQuestion; a miss costs no question quota and is
// announced as a wrong guess instead of a question entry.
func (s *Server) handleGuessWord(c *client, req guessWordRequest) error {
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	return s.store.WithRoom(code, func(room *Room) error {
		player, err := s.submitter(room, c)
		if err != nil {
			return err
		}
		if guessMatches(req.Guess, room.SecretWord) {
			s.wordFound(room, player, req.Guess)
			return nil
		}
		s.hub.Broadcast(room.Code, evWrongGuess, wrongGuessPayload{
			GuesserName: player.Name,
			Guess:       req.Guess,
		})
		return nil
	})
}

// submitter validates that the caller may submit questions or guesses right
// now: game running, player present, in contention, and not the shahrdar,
// whose duty is answering.
func (s *Server) submitter(room *Room, c *client) (*Player, error) {
	if room.Phase != phasePlaying {
		return nil, ErrInvalidPhase
	}
	player, ok := room.Players[c.identity]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if player.Eliminated {
		return nil, ErrUnauthorized
	}
	if player.IsShahrdar {
		return nil, ErrUnauthorized
	}
	return player, nil
}

// wordFound announces a correct guess exactly once, moves the room into the
// word-guessed sub-phase and arms the last-chance window. The caller holds
// the room lock and has already verified phase == playing.
func (s *Server) wordFound(room *Room, player *Player, guess string) {
	room.Phase = phaseWordGuessed
	log.Printf("word guessed room_code=%s uuid=%s", room.Code, player.Identity)

	s.hub.Broadcast(room.Code, evQuestionAsked, questionAskedPayload{
		PlayerName:    player.Name,
		Question:      guess,
		QuestionIndex: room.QuestionCount,
		QuestionsLeft: s.cfg.QuestionQuota - player.QuestionsAsked,
		IsGuess:       true,
	})
	room.QuestionCount++
	s.hub.Broadcast(room.Code, evWordGuessed, wordGuessedPayload{
		GuesserName: player.Name,
		SecretWord:  room.SecretWord,
	})
	s.armLastChance(room)
}

func (s *Server) handleShahrdarReact(c *client, req shahrdarReactRequest) error {
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	return s.store.WithRoom(code, func(room *Room) error {
		if !room.playing() {
			return ErrInvalidPhase
		}
		player, ok := room.Players[c.identity]
		if !ok {
			return ErrPlayerNotFound
		}
		if !player.IsShahrdar {
			return ErrUnauthorized
		}
		if req.QuestionIndex >= room.QuestionCount {
			return errors.New("unknown question index")
		}
		s.hub.Broadcast(room.Code, evShahrdarReacted, shahrdarReactedPayload{
			PlayerName:    player.Name,
			Emoji:         req.Emoji,
			QuestionIndex: req.QuestionIndex,
		})
		return nil
	})
}
