package rooms

import (
	"fmt"
	"sync"
	"time"

	"imposterparty/internal/random"
)

// Rooms with no activity for this long are dropped by the background sweep.
const staleTTL = 24 * time.Hour

type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
	src   random.Source
}

func NewStore(src random.Source) *Store {
	s := &Store{
		rooms: make(map[string]*Room),
		src:   src,
	}
	go s.sweepStale()
	return s
}

// Create generates a fresh room with a code that does not collide with any
// live room. Codes are regenerated on collision, up to 10 attempts.
func (s *Store) Create() (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < 10; i++ {
		code := GenerateCode(s.src)
		if _, exists := s.rooms[code]; exists {
			continue
		}

		now := time.Now()
		room := &Room{
			Code:       code,
			CreatedAt:  now,
			LastActive: now,
		}
		s.rooms[code] = room
		return room, nil
	}
	return nil, fmt.Errorf("failed to generate unique room code after 10 attempts")
}

func (s *Store) Get(code string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[code]
}

// Touch records activity on a room so the stale sweep leaves it alone.
// LastActive is only accessed under the store lock.
func (s *Store) Touch(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, exists := s.rooms[code]; exists {
		room.LastActive = time.Now()
	}
}

// Delete removes a room; deleting an unknown code is a no-op.
func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

func (s *Store) List() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		list = append(list, r)
	}
	return list
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

func (s *Store) sweepStale() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		for code, room := range s.rooms {
			if now.Sub(room.LastActive) > staleTTL {
				delete(s.rooms, code)
			}
		}
		s.mu.Unlock()
	}
}
