package server

import (
	"fmt"
	"testing"
	"time"

	"wordwolf/internal/config"
)

func newGameServer(t *testing.T) *Server {
	t.Helper()
	return New(nil, config.Default())
}

// setupRoom creates a room with n players named p0..p(n-1). p0 is the
// creator. It returns the room code and one client per player.
func setupRoom(t *testing.T, srv *Server, n int) (string, []*client) {
	t.Helper()
	clients := make([]*client, n)
	clients[0] = &client{}
	if err := srv.handleCreateRoom(clients[0], createRoomRequest{
		PlayerName: "p0",
		Identity:   "id-0",
	}); err != nil {
		t.Fatalf("create room: %v", err)
	}
	code := clients[0].roomCode
	if code == "" {
		t.Fatalf("expected room code after create")
	}
	for i := 1; i < n; i++ {
		clients[i] = &client{}
		if err := srv.handleJoinRoom(clients[i], joinRoomRequest{
			RoomCode:   code,
			PlayerName: fmt.Sprintf("p%d", i),
			Identity:   fmt.Sprintf("id-%d", i),
		}); err != nil {
			t.Fatalf("join room player %d: %v", i, err)
		}
	}
	return code, clients
}

// startGame starts the game and then pins roles deterministically:
// id-0 alpha, id-1 seer, id-2.. citizens, extra werewolves from the tail,
// shahrdar on the last player. Tests that depend on specific roles reshape
// from here.
func startGame(t *testing.T, srv *Server, code string, clients []*client) {
	t.Helper()
	if err := srv.handleStartGame(clients[0], startGameRequest{RoomCode: code}); err != nil {
		t.Fatalf("start game: %v", err)
	}
	setRoles(t, srv, code, func(room *Room) {
		players := room.orderedPlayers()
		wolves := werewolfCount(len(players))
		for _, player := range players {
			player.Role = roleCitizen
			player.IsShahrdar = false
		}
		players[0].Role = roleAlphaWerewolf
		players[1].Role = roleSeer
		for i := 1; i < wolves; i++ {
			players[len(players)-i].Role = roleWerewolf
		}
		players[len(players)-1].IsShahrdar = true
	})
}

func setRoles(t *testing.T, srv *Server, code string, shape func(room *Room)) {
	t.Helper()
	if err := srv.store.WithRoom(code, func(room *Room) error {
		shape(room)
		return nil
	}); err != nil {
		t.Fatalf("shape room: %v", err)
	}
}

func roomState(t *testing.T, srv *Server, code string) *Room {
	t.Helper()
	snapshot := &Room{}
	if err := srv.store.WithRoom(code, func(room *Room) error {
		*snapshot = *room
		return nil
	}); err != nil {
		t.Fatalf("room state: %v", err)
	}
	return snapshot
}

func setSecretWord(t *testing.T, srv *Server, code, word string) {
	t.Helper()
	setRoles(t, srv, code, func(room *Room) {
		room.SecretWord = word
	})
}

func fixNow(srv *Server, at time.Time) {
	srv.now = func() time.Time { return at }
}
