package events

import "time"

// RoomCreatedEvent records that a room came into existence.
type RoomCreatedEvent struct {
	RoomCode string
	HostName string
	At       time.Time
}

// RoundStartedEvent records one dealt round.
type RoundStartedEvent struct {
	RoomCode    string
	Word        string
	PlayerCount int
	At          time.Time
}

type Bus struct {
	RoomsCreated  chan RoomCreatedEvent
	RoundsStarted chan RoundStartedEvent
}

func NewBus() *Bus {
	return &Bus{
		RoomsCreated:  make(chan RoomCreatedEvent, 64),
		RoundsStarted: make(chan RoundStartedEvent, 64),
	}
}

// PublishRoomCreated is non-blocking: history is best effort and must never
// stall a game operation.
func (b *Bus) PublishRoomCreated(ev RoomCreatedEvent) {
	select {
	case b.RoomsCreated <- ev:
	default:
	}
}

// PublishRoundStarted is non-blocking, see PublishRoomCreated.
func (b *Bus) PublishRoundStarted(ev RoundStartedEvent) {
	select {
	case b.RoundsStarted <- ev:
	default:
	}
}
