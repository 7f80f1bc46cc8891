package events

import (
	"testing"
	"time"
)

func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("NewBus() returned nil")
	}
	if bus.RoomsCreated == nil || bus.RoundsStarted == nil {
		t.Fatal("bus channels should not be nil")
	}
}

func TestBus_PublishReceive(t *testing.T) {
	bus := NewBus()
	bus.PublishRoundStarted(RoundStartedEvent{RoomCode: "AB12CD", Word: "zoo", PlayerCount: 4})

	select {
	case ev := <-bus.RoundsStarted:
		if ev.RoomCode != "AB12CD" || ev.Word != "zoo" || ev.PlayerCount != 4 {
			t.Errorf("received %+v", ev)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_PublishNeverBlocks(t *testing.T) {
	bus := NewBus()

	done := make(chan bool)
	go func() {
		// Overfill the buffer; publishes past capacity must drop, not block.
		for i := 0; i < 200; i++ {
			bus.PublishRoomCreated(RoomCreatedEvent{RoomCode: "AB12CD"})
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("publish blocked on a full bus")
	}
}
