package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Event is the tagged envelope both directions of the websocket speak.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func newEvent(eventType string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Data: data}, nil
}

// Inbound event types.
const (
	evCreateRoom    = "create-room"
	evJoinRoom      = "join-room"
	evResume        = "resume-session"
	evStartGame     = "start-game"
	evAskQuestion   = "ask-question"
	evGuessWord     = "guess-word"
	evShahrdarReact = "shahrdar-react"
	evVoteExecute   = "vote-execute"
	evLastChance    = "alpha-last-chance"
	evKillSeer      = "alpha-kill-seer"
	evTimerExpired  = "alpha-timer-expired"
	evRestartGame   = "restart-game"
	evLeaveRoom     = "leave-room"
)

// Outbound event types.
const (
	evRoomCreated     = "room-created"
	evRoomJoined      = "room-joined"
	evRoomUpdated     = "room-updated"
	evRoomClosed      = "room-closed"
	evGameStarted     = "game-started"
	evWordRevealed    = "secret-word-revealed"
	evTeammates       = "werewolf-teammates"
	evQuestionAsked   = "question-asked"
	evWrongGuess      = "wrong-guess"
	evShahrdarReacted = "shahrdar-reacted"
	evWordGuessed     = "word-guessed"
	evLastChanceOpen  = "alpha-last-chance-opportunity"
	evTimerUpdate     = "alpha-timer-update"
	evVoteUpdated     = "vote-updated"
	evPlayerKilled    = "player-killed"
	evGameEnded       = "game-ended"
	evGameReset       = "game-reset"
	evError           = "error"
)

const (
	maxNameLength     = 20
	maxQuestionLength = 120
	maxEmojiLength    = 8
)

type createRoomRequest struct {
	PlayerName string `json:"playerName"`
	Identity   string `json:"uuid"`
}

type joinRoomRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
	Identity   string `json:"uuid"`
}

type startGameRequest struct {
	RoomCode string `json:"roomCode"`
}

type askQuestionRequest struct {
	RoomCode string `json:"roomCode"`
	Question string `json:"question"`
}

type guessWordRequest struct {
	RoomCode string `json:"roomCode"`
	Guess    string `json:"guess"`
}

type shahrdarReactRequest struct {
	RoomCode      string `json:"roomCode"`
	Emoji         string `json:"emoji"`
	QuestionIndex int    `json:"questionIndex"`
}

type voteRequest struct {
	RoomCode       string  `json:"roomCode"`
	TargetIdentity *string `json:"targetPlayerId"`
}

type lastChanceRequest struct {
	RoomCode       string `json:"roomCode"`
	TargetIdentity string `json:"targetPlayerId"`
	// Legacy clients send the target under seerId on alpha-kill-seer.
	SeerIdentity string `json:"seerId"`
}

func (r *lastChanceRequest) target() string {
	if r.TargetIdentity != "" {
		return r.TargetIdentity
	}
	return r.SeerIdentity
}

type timerExpiredRequest struct {
	RoomCode string `json:"roomCode"`
}

type restartGameRequest struct {
	RoomCode string `json:"roomCode"`
}

func (r createRoomRequest) validate() error {
	return validateName(r.PlayerName)
}

func (r joinRoomRequest) validate() error {
	if err := validateRoomCode(r.RoomCode); err != nil {
		return err
	}
	return validateName(r.PlayerName)
}

func (r askQuestionRequest) validate() error {
	if err := validateRoomCode(r.RoomCode); err != nil {
		return err
	}
	return validateText("question", r.Question)
}

func (r guessWordRequest) validate() error {
	if err := validateRoomCode(r.RoomCode); err != nil {
		return err
	}
	return validateText("guess", r.Guess)
}

func (r shahrdarReactRequest) validate() error {
	if err := validateRoomCode(r.RoomCode); err != nil {
		return err
	}
	if r.QuestionIndex < 0 {
		return errors.New("question index must not be negative")
	}
	if len(r.Emoji) > maxEmojiLength {
		return errors.New("emoji too long")
	}
	return nil
}

func (r startGameRequest) validate() error {
	return validateRoomCode(r.RoomCode)
}

func (r voteRequest) validate() error {
	return validateRoomCode(r.RoomCode)
}

func (r lastChanceRequest) validate() error {
	if err := validateRoomCode(r.RoomCode); err != nil {
		return err
	}
	if r.target() == "" {
		return errors.New("target player is required")
	}
	return nil
}

func (r timerExpiredRequest) validate() error {
	return validateRoomCode(r.RoomCode)
}

func (r restartGameRequest) validate() error {
	return validateRoomCode(r.RoomCode)
}

func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("player name is required")
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return fmt.Errorf("player name must be at most %d characters", maxNameLength)
	}
	return nil
}

func validateRoomCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errors.New("room code is required")
	}
	return nil
}

func validateText(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(text) > maxQuestionLength {
		return fmt.Errorf("%s must be at most %d characters", field, maxQuestionLength)
	}
	return nil
}

// Outbound payloads.

type roomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
	Identity string `json:"uuid"`
}

type roomJoinedPayload struct {
	RoomCode string `json:"roomCode"`
	Identity string `json:"uuid"`
}

type roomUpdatedPayload struct {
	Players         []PlayerView `json:"players"`
	CreatorIdentity string       `json:"creatorId"`
	Phase           string       `json:"phase"`
}

type gameStartedPayload struct {
	Players    []PlayerView `json:"players"`
	WordLength int          `json:"wordLength"`
	Quota      int          `json:"questionQuota"`
}

type wordRevealedPayload struct {
	SecretWord string `json:"secretWord"`
	Role       string `json:"role"`
}

type teammatesPayload struct {
	Teammates []PlayerView `json:"teammates"`
}

type questionAskedPayload struct {
	PlayerName    string `json:"playerName"`
	Question      string `json:"question"`
	QuestionIndex int    `json:"questionIndex"`
	QuestionsLeft int    `json:"questionsLeft"`
	IsGuess       bool   `json:"isGuess"`
}

type wrongGuessPayload struct {
	GuesserName string `json:"guesserName"`
	Guess       string `json:"guess"`
}

type shahrdarReactedPayload struct {
	PlayerName    string `json:"playerName"`
	Emoji         string `json:"emoji,omitempty"`
	QuestionIndex int    `json:"questionIndex"`
}

type wordGuessedPayload struct {
	GuesserName string `json:"guesserName"`
	SecretWord  string `json:"secretWord"`
}

type timerUpdatePayload struct {
	SecondsLeft int `json:"secondsLeft"`
}

type voteUpdatedPayload struct {
	Votes map[string]int `json:"votes"`
}

type playerKilledPayload struct {
	Identity   string `json:"uuid"`
	PlayerName string `json:"playerName"`
	IsWerewolf bool   `json:"isWerewolf"`
}

type gameResetPayload struct {
	RoomCode string `json:"roomCode"`
}

type roomClosedPayload struct {
	RoomCode string `json:"roomCode"`
}

type errorPayload struct {
	Message string `json:"message"`
}
