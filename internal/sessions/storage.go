package sessions

import (
	"strings"
	"sync"
)

// Store tracks which room each display name belongs to, so a reconnecting
// channel can reclaim its player record. A player holds at most one active
// session: Set replaces any prior binding for the same name. Sessions never
// expire; they are removed only on explicit leave.
type Store struct {
	mu     sync.Mutex
	byName map[string]string // lowercased name -> room code
}

func NewStore() *Store {
	return &Store{
		byName: make(map[string]string),
	}
}

// Set records a session for (name, roomCode), replacing any session the
// name held in another room.
func (s *Store) Set(name, roomCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byName[key(name)] = roomCode
}

// Lookup reports whether a session exists for this name in this room.
func (s *Store) Lookup(name, roomCode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byName[key(name)] == roomCode
}

func (s *Store) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byName, key(name))
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byName)
}

func key(name string) string {
	return strings.ToLower(name)
}
