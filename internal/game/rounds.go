package game

import (
	"log"
	"time"

	"imposterparty/internal/events"
	"imposterparty/internal/protocol"
	"imposterparty/internal/random"
	"imposterparty/internal/rooms"
)

// StartGame begins the first round: host-only.
func (c *Coordinator) StartGame(identity, roomCode string) {
	c.startRound(identity, roomCode, protocol.TypeGameStarted, true)
}

// NextTurn deals a fresh word and imposter for a subsequent round. It also
// refreshes membership first, since spectators absorbed at the round
// boundary may have grown the player set.
func (c *Coordinator) NextTurn(identity, roomCode string) {
	c.startRound(identity, roomCode, protocol.TypeNewTurn, false)
}

func (c *Coordinator) startRound(identity, roomCode, msgType string, begin bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.rooms.Get(roomCode)
	if room == nil {
		return
	}
	if room.HostID != identity {
		// Host-only operations are silently ignored on the wire; the
		// caller gets no error event.
		log.Printf("[Game] Ignoring %s from non-host in room %s\n", msgType, roomCode)
		return
	}
	c.rooms.Touch(roomCode)

	if begin {
		room.GameStarted = true
	}

	// Spectators become players at the round boundary, before the secret
	// is assigned, so they are eligible for this round's deal.
	room.Players = append(room.Players, room.Spectators...)
	room.Spectators = nil

	room.CurrentWord = c.words.Random(c.rand)
	room.ImposterID = random.Pick(c.rand, room.Players).Identity

	if !begin {
		c.broadcastMembership(room)
	}
	for _, p := range room.Players {
		c.sendRoundResult(p, room, msgType)
	}

	log.Printf("[Game] Round dealt in room %s (%d players)\n", roomCode, len(room.Players))
	if c.Metrics != nil {
		c.Metrics.RoundsStarted.Inc()
	}
	if c.Events != nil {
		c.Events.PublishRoundStarted(events.RoundStartedEvent{
			RoomCode:    roomCode,
			Word:        room.CurrentWord,
			PlayerCount: len(room.Players),
			At:          time.Now(),
		})
	}
}

// sendRoundResult delivers the player-scoped view of the round: the shared
// word for everyone except the imposter, whose message carries a null word.
func (c *Coordinator) sendRoundResult(p *rooms.Player, room *rooms.Room, msgType string) {
	msg := protocol.RoundResult{Type: msgType, IsImposter: p.Identity == room.ImposterID}
	if !msg.IsImposter {
		word := room.CurrentWord
		msg.Word = &word
	}
	c.sender.SendTo(p.Identity, msg)
}
