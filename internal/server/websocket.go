package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// wsHub tracks the live connection per identity and the connection group per
// room. Private payloads (secret word, teammates, redacted rosters) go to a
// single identity; public events fan out to the room group.
type wsHub struct {
	mu         sync.Mutex
	rooms      map[string]map[*websocket.Conn]string
	identities map[string]*websocket.Conn
}

func newWSHub() *wsHub {
	return &wsHub{
		rooms:      make(map[string]map[*websocket.Conn]string),
		identities: make(map[string]*websocket.Conn),
	}
}

// Bind associates a connection with an identity inside a room, replacing any
// previous connection for the same identity.
func (h *wsHub) Bind(roomCode, identity string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if previous, ok := h.identities[identity]; ok && previous != nil && previous != conn {
		for _, group := range h.rooms {
			delete(group, previous)
		}
		_ = previous.Close()
	}
	group := h.rooms[roomCode]
	if group == nil {
		group = make(map[*websocket.Conn]string)
		h.rooms[roomCode] = group
	}
	group[conn] = identity
	h.identities[identity] = conn
}

// Drop removes a connection and reports the identity and room it was bound
// to, if any.
func (h *wsHub) Drop(conn *websocket.Conn) (identity, roomCode string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for code, group := range h.rooms {
		if id, found := group[conn]; found {
			delete(group, conn)
			if len(group) == 0 {
				delete(h.rooms, code)
			}
			if h.identities[id] == conn {
				delete(h.identities, id)
			}
			return id, code, true
		}
	}
	return "", "", false
}

// Unbind detaches an identity entirely, closing its connection.
func (h *wsHub) Unbind(identity string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn, ok := h.identities[identity]
	if !ok {
		return
	}
	delete(h.identities, identity)
	for code, group := range h.rooms {
		if _, found := group[conn]; found {
			delete(group, conn)
			if len(group) == 0 {
				delete(h.rooms, code)
			}
		}
	}
	if conn != nil {
		_ = conn.Close()
	}
}

// CloseRoom drops and closes every connection in a room group.
func (h *wsHub) CloseRoom(roomCode string) {
	h.mu.Lock()
	group := h.rooms[roomCode]
	delete(h.rooms, roomCode)
	conns := make([]*websocket.Conn, 0, len(group))
	for conn, identity := range group {
		if h.identities[identity] == conn {
			delete(h.identities, identity)
		}
		if conn != nil {
			conns = append(conns, conn)
		}
	}
	h.mu.Unlock()
	for _, conn := range conns {
		_ = conn.Close()
	}
}

func (h *wsHub) Send(conn *websocket.Conn, eventType string, payload any) {
	if conn == nil {
		return
	}
	event, err := newEvent(eventType, payload)
	if err != nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.TextMessage, data)
}

func (h *wsHub) SendIdentity(identity, eventType string, payload any) {
	h.mu.Lock()
	conn := h.identities[identity]
	h.mu.Unlock()
	h.Send(conn, eventType, payload)
}

func (h *wsHub) Broadcast(roomCode, eventType string, payload any) {
	h.mu.Lock()
	group := h.rooms[roomCode]
	conns := make([]*websocket.Conn, 0, len(group))
	for conn := range group {
		if conn != nil {
			conns = append(conns, conn)
		}
	}
	h.mu.Unlock()

	event, err := newEvent(eventType, payload)
	if err != nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			if identity, code, ok := h.Drop(conn); ok {
				log.Printf("ws write failed, dropping room_code=%s uuid=%s error=%v", code, identity, err)
			}
		}
	}
}

// client is the per-connection session state held by the read loop.
type client struct {
	conn     *websocket.Conn
	identity string
	roomCode string
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected remote=%s", r.RemoteAddr)
	go s.readWS(&client{conn: conn})
}

func (s *Server) readWS(c *client) {
	defer s.handleDisconnect(c)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("ws disconnected uuid=%s error=%v", c.identity, err)
			return
		}
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			s.sendError(c, "malformed message")
			continue
		}
		s.dispatch(c, event)
	}
}

func (s *Server) dispatch(c *client, event Event) {
	var err error
	switch event.Type {
	case evCreateRoom:
		var req createRoomRequest
		if err = decodeEvent(event, &req); err == nil {
			err = s.handleCreateRoom(c, req)
		}
	case evJoinRoom:
		var req joinRoomRequest
		if err = decodeEvent(event, &req); err == nil {
			err = s.handleJoinRoom(c, req)
		}
	case evResume:
		var req joinRoomRequest
		if err = decodeEvent(event, &req); err == nil {
			err = s.handleResumeSession(c, req)
		}
	case evStartGame:
		var req startGameRequest
		if err = decodeEvent(event, &req); err == nil {
			err = s.handleStartGame(c, req)
		}
	case evAskQuestion:
		var req askQuestionRequest
		if err = decodeEvent(event, &req); err == nil {
			err = s.handleAskQuestion(c, req)
		}
	case evGuessWord:
		var req guessWordRequest
		if err = decodeEvent(event, &req); err == nil {
			err = s.handleGuessWord(c, req)
		}
	case evShahrdarReact:
		var req shahrdarReactRequest
		if err = decodeEvent(event, &req); err == nil {
			err = s.handleShahrdarReact(c, req)
		}
	case evVoteExecute:
		var req voteRequest
		if err = decodeEvent(event, &req); err == nil {
			err = s.handleVote(c, req)
		}
	case evLastChance, evKillSeer:
		var req lastChanceRequest
		if err = decodeEvent(event, &req); err == nil {
			err = s.handleLastChance(c, req)
		}
	case evTimerExpired:
		var req timerExpiredRequest
		if err = decodeEvent(event, &req); err == nil {
			err = s.handleTimerExpired(c, req)
		}
	case evRestartGame:
		var req restartGameRequest
		if err = decodeEvent(event, &req); err == nil {
			err = s.handleRestartGame(c, req)
		}
	case evLeaveRoom:
		err = s.handleLeaveRoom(c)
	default:
		s.sendError(c, "unknown message type")
		return
	}
	if err != nil {
		s.sendError(c, err.Error())
	}
}

func decodeEvent(event Event, dest interface{ validate() error }) error {
	if len(event.Data) == 0 {
		return dest.validate()
	}
	if err := json.Unmarshal(event.Data, dest); err != nil {
		return err
	}
	return dest.validate()
}

func (s *Server) sendError(c *client, message string) {
	s.hub.Send(c.conn, evError, errorPayload{Message: message})
}
