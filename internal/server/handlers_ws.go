package server

import (
	"log"
	"strings"

	"github.com/google/uuid"
)

func (s *Server) handleCreateRoom(c *client, req createRoomRequest) error {
	identity := req.Identity
	if identity == "" {
		identity = uuid.NewString()
	}
	name := strings.TrimSpace(req.PlayerName)

	room, err := s.store.CreateRoom(identity, name)
	if err != nil {
		return err
	}
	c.identity = identity
	c.roomCode = room.Code
	s.hub.Bind(room.Code, identity, c.conn)

	log.Printf("room created room_code=%s creator=%s", room.Code, name)
	s.hub.Send(c.conn, evRoomCreated, roomCreatedPayload{RoomCode: room.Code, Identity: identity})
	return s.store.WithRoom(room.Code, func(room *Room) error {
		s.pushRoomUpdate(room)
		return nil
	})
}

func (s *Server) handleJoinRoom(c *client, req joinRoomRequest) error {
	identity := req.Identity
	if identity == "" {
		identity = uuid.NewString()
	}
	name := strings.TrimSpace(req.PlayerName)
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))

	current, wasMember := s.store.RoomOf(identity)
	if wasMember && current != code {
		return ErrAlreadyInRoom
	}
	if err := s.store.AddMember(code, identity); err != nil {
		return err
	}

	err := s.store.WithRoom(code, func(room *Room) error {
		if player, ok := room.Players[identity]; ok {
			// Same identity coming back: treat the join as a resume.
			s.rebind(c, room, player, name)
			return nil
		}
		if room.Phase != phaseWaiting {
			return ErrInvalidPhase
		}
		player := &Player{
			Identity:  identity,
			Name:      name,
			Conn:      c.conn,
			Connected: true,
		}
		room.Players[identity] = player
		room.Order = append(room.Order, identity)

		c.identity = identity
		c.roomCode = room.Code
		s.hub.Bind(room.Code, identity, c.conn)
		log.Printf("player joined room_code=%s uuid=%s name=%s", room.Code, identity, name)
		s.hub.Send(c.conn, evRoomJoined, roomJoinedPayload{RoomCode: room.Code, Identity: identity})
		s.pushRoomUpdate(room)
		return nil
	})
	if err != nil && !wasMember {
		s.store.RemoveMember(identity)
	}
	return err
}

func (s *Server) handleResumeSession(c *client, req joinRoomRequest) error {
	if req.Identity == "" {
		return ErrPlayerNotFound
	}
	code := strings.ToUpper(strings.TrimSpace(req.RoomCode))
	return s.store.WithRoom(code, func(room *Room) error {
		player, ok := room.Players[req.Identity]
		if !ok {
			return ErrPlayerNotFound
		}
		s.rebind(c, room, player, strings.TrimSpace(req.PlayerName))
		return nil
	})
}

// rebind re-attaches a stable identity to a fresh connection and replays the
// phase-consistent view. The caller holds the room lock.
func (s *Server) rebind(c *client, room *Room, player *Player, name string) {
	if name != "" {
		player.Name = name
	}
	player.Conn = c.conn
	player.Connected = true
	c.identity = player.Identity
	c.roomCode = room.Code
	s.hub.Bind(room.Code, player.Identity, c.conn)

	log.Printf("session resumed room_code=%s uuid=%s phase=%s", room.Code, player.Identity, room.Phase)
	s.hub.Send(c.conn, evRoomJoined, roomJoinedPayload{RoomCode: room.Code, Identity: player.Identity})
	s.pushRoomUpdate(room)
	s.replayState(room, player)
}

func (s *Server) handleLeaveRoom(c *client) error {
	if c.roomCode == "" || c.identity == "" {
		return nil
	}
	code, identity := c.roomCode, c.identity
	c.roomCode = ""
	c.identity = ""

	var creatorLeft bool
	err := s.store.WithRoom(code, func(room *Room) error {
		player, ok := room.Players[identity]
		if !ok {
			return nil
		}
		if identity == room.CreatorIdentity {
			creatorLeft = true
			return nil
		}
		delete(room.Players, identity)
		for i, id := range room.Order {
			if id == identity {
				room.Order = append(room.Order[:i], room.Order[i+1:]...)
				break
			}
		}
		delete(room.Votes, identity)
		for voter, target := range room.Votes {
			if target == identity {
				delete(room.Votes, voter)
			}
		}
		log.Printf("player left room_code=%s uuid=%s name=%s", code, identity, player.Name)
		s.pushRoomUpdate(room)
		return nil
	})
	if err != nil {
		return err
	}
	if creatorLeft {
		s.closeRoom(code)
		return nil
	}
	s.store.RemoveMember(identity)
	s.hub.Unbind(identity)
	return nil
}

// closeRoom tears a room down completely: timer, connections, store state.
func (s *Server) closeRoom(code string) {
	s.cancelLastChance(code)
	s.hub.Broadcast(code, evRoomClosed, roomClosedPayload{RoomCode: code})
	s.hub.CloseRoom(code)
	s.store.DeleteRoom(code)
	log.Printf("room closed room_code=%s", code)
}

// handleDisconnect nulls the connection handle but keeps the participant so
// the same identity can resume later.
func (s *Server) handleDisconnect(c *client) {
	identity, code, ok := s.hub.Drop(c.conn)
	if c.conn != nil {
		_ = c.conn.Close()
	}
	if !ok {
		return
	}
	_ = s.store.WithRoom(code, func(room *Room) error {
		player, found := room.Players[identity]
		if !found {
			return nil
		}
		player.Conn = nil
		player.Connected = false
		log.Printf("player disconnected room_code=%s uuid=%s name=%s", code, identity, player.Name)
		s.pushRoomUpdate(room)
		return nil
	})
}
