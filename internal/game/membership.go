package game

import (
	"log"
	"strings"
	"time"

	"imposterparty/internal/events"
	"imposterparty/internal/protocol"
	"imposterparty/internal/rooms"
)

// CreateRoom builds a new room with the creator as sole player and host.
func (c *Coordinator) CreateRoom(identity, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.rooms.Create()
	if err != nil {
		log.Printf("[Game] CreateRoom: %v\n", err)
		c.sendError(identity, "Could not create room")
		return
	}

	room.Players = append(room.Players, &rooms.Player{Identity: identity, Name: name})
	room.HostID = identity
	c.sessions.Set(name, room.Code)

	c.sender.SendTo(identity, protocol.RoomAck{Type: protocol.TypeRoomCreated, RoomCode: room.Code})
	c.broadcastMembership(room)

	log.Printf("[Game] Room %s created by %s\n", room.Code, name)
	c.syncRoomGauge()
	if c.Events != nil {
		c.Events.PublishRoomCreated(events.RoomCreatedEvent{RoomCode: room.Code, HostName: name, At: time.Now()})
	}
}

// JoinRoom adds a member to an existing room: as a player while the room is
// in the lobby, as a spectator once a game is in progress.
func (c *Coordinator) JoinRoom(identity, roomCode, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.rooms.Get(roomCode)
	if room == nil {
		c.sendError(identity, "Room not found")
		return
	}
	if room.NameTaken(name) {
		c.sendError(identity, "Name already taken in this room")
		return
	}
	c.rooms.Touch(roomCode)

	member := &rooms.Player{Identity: identity, Name: name}
	if room.GameStarted {
		// Mid-round joiners wait out the round; they become players at the
		// next round boundary.
		room.Spectators = append(room.Spectators, member)
		c.sender.SendTo(identity, protocol.RoomAck{Type: protocol.TypeJoinedAsSpectator, RoomCode: room.Code})
	} else {
		room.Players = append(room.Players, member)
		c.sender.SendTo(identity, protocol.RoomAck{Type: protocol.TypeJoinedRoom, RoomCode: room.Code})
	}

	// A player holds one active session; joining here replaces any session
	// the name held in another room.
	c.sessions.Set(name, room.Code)

	c.broadcastMembership(room)
	log.Printf("[Game] %s joined room %s (spectator=%v)\n", name, room.Code, room.GameStarted)
}

// LeaveGame removes the member with this channel identity from the room.
func (c *Coordinator) LeaveGame(identity, roomCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.rooms.Get(roomCode)
	if room == nil {
		return
	}

	removed, _ := room.RemoveIdentity(identity)
	if removed == nil {
		return
	}
	c.sessions.Remove(removed.Name)
	c.rooms.Touch(roomCode)

	c.finishDeparture(room, identity)
	log.Printf("[Game] %s left room %s\n", removed.Name, room.Code)
}

// finishDeparture handles the common tail of every removal: host failover,
// empty-room teardown, and the membership refresh. Callers hold the
// coordinator lock and have already removed the member.
func (c *Coordinator) finishDeparture(room *rooms.Room, departedIdentity string) {
	if len(room.Players) == 0 {
		room.HostID = ""
		c.rooms.Delete(room.Code)
		c.syncRoomGauge()
		log.Printf("[Game] Room %s is empty, deleted\n", room.Code)
		return
	}

	if room.HostID == departedIdentity {
		c.assignNewHost(room)
	}
	c.broadcastMembership(room)
}
