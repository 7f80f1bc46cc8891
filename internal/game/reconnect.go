package game

import (
	"log"
	"time"

	"imposterparty/internal/protocol"
)

// CheckSession reattaches a new channel identity to an existing player
// record, so a transient disconnect does not cost the player their seat.
// Silently does nothing when no matching session or player exists.
func (c *Coordinator) CheckSession(identity, name, roomCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.sessions.Lookup(name, roomCode) {
		return
	}
	room := c.rooms.Get(roomCode)
	if room == nil {
		return
	}
	member, isSpectator := room.FindByName(name)
	if member == nil {
		return
	}
	c.rooms.Touch(roomCode)

	old := member.Identity
	member.Identity = identity

	// The player keeps their prior role: host and imposter pointers that
	// referenced the stale identity follow the rebind.
	if room.HostID == old {
		room.HostID = identity
	}
	if room.ImposterID == old {
		room.ImposterID = identity
	}
	if !room.HasValidHost() {
		c.assignNewHost(room)
	}

	// A rejoiner mid-round needs the current result again. The imposter
	// still only sees the flag, never the word.
	if room.GameStarted && !isSpectator {
		c.sendRoundResult(member, room, protocol.TypeGameStarted)
	}

	c.sender.SendTo(identity, protocol.RejoinedRoom{
		Type:     protocol.TypeRejoinedRoom,
		RoomCode: room.Code,
		IsHost:   room.HostID == identity,
	})
	c.broadcastMembership(room)

	log.Printf("[Game] %s rejoined room %s\n", member.Name, room.Code)
	if c.Metrics != nil {
		c.Metrics.Reconnects.Inc()
	}
}

// Disconnect handles a closed channel. Spectators hold no round state and
// are removed immediately; players get a grace period in which a reconnect
// quietly cancels the removal.
func (c *Coordinator) Disconnect(identity string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, room := range c.rooms.List() {
		if room.FindPlayer(identity) != nil {
			roomCode := room.Code
			time.AfterFunc(c.grace, func() {
				c.removeIfStillGone(roomCode, identity)
			})
			log.Printf("[Game] Player disconnected from room %s, removal in %s\n", roomCode, c.grace)
			return
		}

		for _, s := range room.Spectators {
			if s.Identity == identity {
				room.RemoveIdentity(identity)
				c.broadcastMembership(room)
				log.Printf("[Game] Spectator %s removed from room %s\n", s.Name, room.Code)
				return
			}
		}
	}
}

// removeIfStillGone fires when the grace period elapses. It re-validates
// against current state instead of trusting the snapshot taken at
// disconnect time: if a reconnect rebound the player record to a new
// identity in the meantime, the captured identity matches nothing and the
// removal is a no-op. Identity-keyed matching is what makes this race-safe.
func (c *Coordinator) removeIfStillGone(roomCode, identity string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.rooms.Get(roomCode)
	if room == nil {
		return
	}
	if room.FindPlayer(identity) == nil {
		return
	}

	removed, _ := room.RemoveIdentity(identity)
	c.finishDeparture(room, identity)

	log.Printf("[Game] %s removed from room %s after grace period\n", removed.Name, roomCode)
	if c.Metrics != nil {
		c.Metrics.GraceRemovals.Inc()
	}
}
