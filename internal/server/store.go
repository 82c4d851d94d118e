package server

import (
	"sync"
	"time"
)

// Store owns every room. The rooms map is guarded by mu; each room carries
// its own lock so handlers for different rooms run concurrently while all
// events for one room are serialized.
type Store struct {
	mu     sync.RWMutex
	rooms  map[string]*roomEntry
	member map[string]string
}

type roomEntry struct {
	mu   sync.Mutex
	room *Room
}

func NewStore() *Store {
	return &Store{
		rooms:  make(map[string]*roomEntry),
		member: make(map[string]string),
	}
}

func (s *Store) CreateRoom(creatorIdentity, creatorName string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.member[creatorIdentity]; taken {
		return nil, ErrAlreadyInRoom
	}
	code := newRoomCode()
	for {
		if _, exists := s.rooms[code]; !exists {
			break
		}
		code = newRoomCode()
	}
	room := &Room{
		Code:            code,
		CreatorIdentity: creatorIdentity,
		Phase:           phaseWaiting,
		Players:         make(map[string]*Player),
		Votes:           make(map[string]string),
		CreatedAt:       time.Now().UTC(),
	}
	room.Players[creatorIdentity] = &Player{
		Identity:  creatorIdentity,
		Name:      creatorName,
		Connected: true,
	}
	room.Order = append(room.Order, creatorIdentity)
	s.rooms[code] = &roomEntry{room: room}
	s.member[creatorIdentity] = code
	return room, nil
}

// WithRoom runs fn with the room's lock held. Every handler that reads or
// mutates room state goes through here, which is what serializes a room.
// fn must not call back into map-level Store methods; membership changes
// happen before or after the room section.
func (s *Store) WithRoom(code string, fn func(*Room) error) error {
	s.mu.RLock()
	entry, ok := s.rooms[code]
	s.mu.RUnlock()
	if !ok {
		return ErrRoomNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.room == nil {
		return ErrRoomNotFound
	}
	return fn(entry.room)
}

// AddMember records a player joining a room. It fails when the identity is
// already bound to a different room.
func (s *Store) AddMember(code, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.member[identity]; ok && current != code {
		return ErrAlreadyInRoom
	}
	s.member[identity] = code
	return nil
}

func (s *Store) RemoveMember(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.member, identity)
}

// RoomOf reports which room an identity belongs to.
func (s *Store) RoomOf(identity string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	code, ok := s.member[identity]
	return code, ok
}

// DeleteRoom removes the room and every membership it owns, atomically with
// respect to the room's own lock.
func (s *Store) DeleteRoom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.rooms[code]
	if !ok {
		return
	}
	delete(s.rooms, code)

	entry.mu.Lock()
	if entry.room != nil {
		for identity := range entry.room.Players {
			if s.member[identity] == code {
				delete(s.member, identity)
			}
		}
		entry.room = nil
	}
	entry.mu.Unlock()
}

// StaleRooms returns codes of rooms created strictly before the cutoff.
func (s *Store) StaleRooms(cutoff time.Time) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var codes []string
	for code, entry := range s.rooms {
		entry.mu.Lock()
		if entry.room != nil && entry.room.CreatedAt.Before(cutoff) {
			codes = append(codes, code)
		}
		entry.mu.Unlock()
	}
	return codes
}

func (s *Store) RoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
