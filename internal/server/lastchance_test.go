package server

import (
	"testing"
	"time"
)

// guessWord moves the room into the word-guessed sub-phase so last-chance
// handlers have something to act on.
func guessWord(t *testing.T, srv *Server, code string, guesser *client) {
	t.Helper()
	setSecretWord(t, srv, code, "پرتقال")
	if err := srv.handleGuessWord(guesser, guessWordRequest{
		RoomCode: code,
		Guess:    "پرتقال",
	}); err != nil {
		t.Fatalf("guess word: %v", err)
	}
}

func TestLastChanceCorrectAccusationWinsForWerewolves(t *testing.T) {
	srv := newGameServer(t)
	code, clients := setupRoom(t, srv, 5)
	startGame(t, srv, code, clients)
	guessWord(t, srv, code, clients[2])

	if err := srv.handleLastChance(clients[0], lastChanceRequest{
		RoomCode:       code,
		TargetIdentity: "id-1",
	}); err != nil {
		t.Fatalf("accusation: %v", err)
	}

	room := roomState(t, srv, code)
	if room.Phase != phaseWaiting {
		t.Fatalf("phase = %q, want waiting", room.Phase)
	}
	if room.LastResult.Winner != sideWerewolves || room.LastResult.Reason != reasonSeerFound {
		t.Fatalf("result = %s/%s", room.LastResult.Winner, room.LastResult.Reason)
	}
	if !room.LastChanceDeadline.IsZero() {
		t.Fatalf("deadline should be cleared after resolution")
	}
}

func TestLastChanceWrongAccusationWinsForCitizens(t *testing.T) {
	srv := newGameServer(t)
	code, clients := setupRoom(t, srv, 5)
	startGame(t, srv, code, clients)
	guessWord(t, srv, code, clients[2])

	if err := srv.handleLastChance(clients[0], lastChanceRequest{
		RoomCode:       code,
		TargetIdentity: "id-3",
	}); err != nil {
		t.Fatalf("accusation: %v", err)
	}
	room := roomState(t, srv, code)
	if room.LastResult.Winner != sideCitizens || room.LastResult.Reason != reasonWrongAccusation {
		t.Fatalf("result = %s/%s", room.LastResult.Winner, room.LastResult.Reason)
	}
}

func TestLastChanceAuthorization(t *testing.T) {
	srv := newGameServer(t)
	code, clients := setupRoom(t, srv, 5)
	startGame(t, srv, code, clients)

	req := lastChanceRequest{RoomCode: code, TargetIdentity: "id-1"}
	if err := srv.handleLastChance(clients[0], req); err != ErrInvalidPhase {
		t.Fatalf("accusation outside the window: got %v, want ErrInvalidPhase", err)
	}

	guessWord(t, srv, code, clients[2])
	// A plain citizen has no accusation right.
	if err := srv.handleLastChance(clients[3], req); err != ErrUnauthorized {
		t.Fatalf("citizen accusation: got %v, want ErrUnauthorized", err)
	}
	// Naming yourself is not an accusation.
	if err := srv.handleLastChance(clients[0], lastChanceRequest{
		RoomCode:       code,
		TargetIdentity: "id-0",
	}); err != ErrUnauthorized {
		t.Fatalf("self accusation: got %v, want ErrUnauthorized", err)
	}
	// The game is still undecided after the rejected attempts.
	if roomState(t, srv, code).Phase != phaseWordGuessed {
		t.Fatalf("rejected accusations must not resolve the game")
	}
}

func TestLastChanceWindowExpiryResolvesOnce(t *testing.T) {
	srv := newGameServer(t)
	code, clients := setupRoom(t, srv, 5)
	startGame(t, srv, code, clients)

	base := time.Now().UTC()
	fixNow(srv, base)
	guessWord(t, srv, code, clients[2])

	room := roomState(t, srv, code)
	wantDeadline := base.Add(time.Duration(srv.cfg.LastChanceSeconds) * time.Second)
	if !room.LastChanceDeadline.Equal(wantDeadline) {
		t.Fatalf("deadline = %v, want %v", room.LastChanceDeadline, wantDeadline)
	}

	// Before the deadline the expiry callback is a no-op.
	srv.lastChanceExpired(code)
	if roomState(t, srv, code).Phase != phaseWordGuessed {
		t.Fatalf("early expiry resolved the game")
	}

	fixNow(srv, wantDeadline.Add(time.Second))
	srv.lastChanceExpired(code)
	room = roomState(t, srv, code)
	if room.Phase != phaseWaiting {
		t.Fatalf("expiry did not resolve the game")
	}
	if room.LastResult.Winner != sideCitizens || room.LastResult.Reason != reasonTimeExpired {
		t.Fatalf("result = %s/%s", room.LastResult.Winner, room.LastResult.Reason)
	}

	// A second, stale expiry changes nothing.
	endedAt := room.LastResult.EndedAt
	srv.lastChanceExpired(code)
	room = roomState(t, srv, code)
	if !room.LastResult.EndedAt.Equal(endedAt) {
		t.Fatalf("stale expiry produced a second result")
	}
}

func TestClientReportedExpiryIsValidated(t *testing.T) {
	srv := newGameServer(t)
	code, clients := setupRoom(t, srv, 5)
	startGame(t, srv, code, clients)

	base := time.Now().UTC()
	fixNow(srv, base)
	guessWord(t, srv, code, clients[2])

	req := timerExpiredRequest{RoomCode: code}
	// Citizens cannot report the alpha's timer.
	if err := srv.handleTimerExpired(clients[3], req); err != ErrUnauthorized {
		t.Fatalf("citizen expiry report: got %v, want ErrUnauthorized", err)
	}
	// An early report from a fast client clock is absorbed.
	if err := srv.handleTimerExpired(clients[0], req); err != nil {
		t.Fatalf("early report: %v", err)
	}
	if roomState(t, srv, code).Phase != phaseWordGuessed {
		t.Fatalf("early report resolved the game")
	}

	fixNow(srv, base.Add(time.Duration(srv.cfg.LastChanceSeconds+1)*time.Second))
	if err := srv.handleTimerExpired(clients[0], req); err != nil {
		t.Fatalf("due report: %v", err)
	}
	room := roomState(t, srv, code)
	if room.LastResult == nil || room.LastResult.Reason != reasonTimeExpired {
		t.Fatalf("due report did not resolve, result=%+v", room.LastResult)
	}
	// Repeating the report after resolution is an ErrInvalidPhase, not a
	// second game end.
	if err := srv.handleTimerExpired(clients[0], req); err != ErrInvalidPhase {
		t.Fatalf("repeat report: got %v, want ErrInvalidPhase", err)
	}
}
