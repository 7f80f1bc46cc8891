package game

import (
	"sync"
	"time"

	"imposterparty/internal/events"
	"imposterparty/internal/metrics"
	"imposterparty/internal/protocol"
	"imposterparty/internal/random"
	"imposterparty/internal/rooms"
	"imposterparty/internal/sessions"
	"imposterparty/internal/words"
)

// Sender delivers a message to a single channel identity. Satisfied by
// wshub.Hub; tests substitute a recorder.
type Sender interface {
	SendTo(id string, v any)
}

// Coordinator owns room membership, host authority, reconnection, and
// per-round secret assignment. A single mutex serializes every operation,
// including fired grace-period timers: no two handlers ever interleave
// their reads and writes of the same room.
type Coordinator struct {
	mu       sync.Mutex
	rooms    *rooms.Store
	sessions *sessions.Store
	words    *words.List
	rand     random.Source
	sender   Sender
	grace    time.Duration

	// Optional instrumentation; either may be nil.
	Metrics *metrics.Metrics
	Events  *events.Bus
}

// DefaultGracePeriod is how long a disconnected player's seat is held open
// for a silent reconnect.
const DefaultGracePeriod = 5 * time.Second

func NewCoordinator(store *rooms.Store, sess *sessions.Store, wl *words.List, src random.Source, sender Sender, grace time.Duration) *Coordinator {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	return &Coordinator{
		rooms:    store,
		sessions: sess,
		words:    wl,
		rand:     src,
		sender:   sender,
		grace:    grace,
	}
}

// broadcastMembership sends the updatePlayers refresh to every player and
// spectator in the room.
func (c *Coordinator) broadcastMembership(room *rooms.Room) {
	msg := protocol.UpdatePlayers{
		Type:       protocol.TypeUpdatePlayers,
		Players:    playerInfos(room.Players),
		HostID:     room.HostID,
		Spectators: playerInfos(room.Spectators),
	}
	for _, p := range room.Players {
		c.sender.SendTo(p.Identity, msg)
	}
	for _, p := range room.Spectators {
		c.sender.SendTo(p.Identity, msg)
	}
}

// assignNewHost picks a uniformly random remaining player as host and
// announces it. Random rather than by seniority: a simplicity and fairness
// tradeoff. Clears the host when no players remain.
func (c *Coordinator) assignNewHost(room *rooms.Room) {
	if len(room.Players) == 0 {
		room.HostID = ""
		return
	}

	room.HostID = random.Pick(c.rand, room.Players).Identity

	msg := protocol.HostChanged{Type: protocol.TypeHostChanged, NewHostID: room.HostID}
	for _, p := range room.Players {
		c.sender.SendTo(p.Identity, msg)
	}
	for _, p := range room.Spectators {
		c.sender.SendTo(p.Identity, msg)
	}
}

func (c *Coordinator) sendError(identity, message string) {
	c.sender.SendTo(identity, protocol.ErrorMessage{Type: protocol.TypeError, Message: message})
}

func (c *Coordinator) syncRoomGauge() {
	if c.Metrics != nil {
		c.Metrics.ActiveRooms.Set(float64(c.rooms.Count()))
	}
}

func playerInfos(list []*rooms.Player) []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(list))
	for _, p := range list {
		infos = append(infos, protocol.PlayerInfo{ID: p.Identity, Name: p.Name})
	}
	return infos
}
