package rooms

import (
	"strings"
	"time"
)

// Player is one participant in a room. Identity is the channel identity of
// the player's current connection and is rebound on reconnect; Name is the
// stable key across reconnects.
type Player struct {
	Identity string
	Name     string
}

// Room holds the state of one game session. Fields are not internally
// synchronized: all access goes through the game coordinator, which
// serializes every operation including fired removal timers.
type Room struct {
	Code        string
	HostID      string
	Players     []*Player // insertion order = join order
	Spectators  []*Player
	GameStarted bool
	CurrentWord string
	ImposterID  string
	CreatedAt   time.Time
	LastActive  time.Time // guarded by the Store lock, see Store.Touch
}

// FindPlayer returns the player with the given channel identity, or nil.
func (r *Room) FindPlayer(identity string) *Player {
	for _, p := range r.Players {
		if p.Identity == identity {
			return p
		}
	}
	return nil
}

// FindByName returns the player or spectator with the given display name
// (case-insensitive), and whether the match was a spectator.
func (r *Room) FindByName(name string) (*Player, bool) {
	for _, p := range r.Players {
		if strings.EqualFold(p.Name, name) {
			return p, false
		}
	}
	for _, p := range r.Spectators {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

// NameTaken reports whether the display name collides case-insensitively
// with any player or spectator.
func (r *Room) NameTaken(name string) bool {
	p, _ := r.FindByName(name)
	return p != nil
}

// RemoveIdentity removes the member with the given channel identity and
// returns the removed record and whether it was a spectator.
func (r *Room) RemoveIdentity(identity string) (*Player, bool) {
	for i, p := range r.Players {
		if p.Identity == identity {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return p, false
		}
	}
	for i, p := range r.Spectators {
		if p.Identity == identity {
			r.Spectators = append(r.Spectators[:i], r.Spectators[i+1:]...)
			return p, true
		}
	}
	return nil, false
}

// HasValidHost reports whether HostID references a current player.
func (r *Room) HasValidHost() bool {
	return r.HostID != "" && r.FindPlayer(r.HostID) != nil
}
