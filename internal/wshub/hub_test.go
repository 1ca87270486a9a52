package wshub

import (
	"encoding/json"
	"testing"
	"time"

	"monkeyclicker/internal/leaderboard"
)

func TestRegisterAndBroadcast(t *testing.T) {
	h := NewHub()

	c1 := &Client{ID: "c1", Send: make(chan []byte, 16)}
	c2 := &Client{ID: "c2", Send: make(chan []byte, 16)}

	h.Register(c1)
	h.Register(c2)

	msg := StateMessage{
		Type:        "state",
		UserClicks:  3,
		TotalClicks: 12,
		RecentPlayers: []leaderboard.Entry{
			{Identity: "a@example.com", Clicks: 3},
		},
	}
	h.Broadcast(msg)

	for _, c := range []*Client{c1, c2} {
		select {
		case data := <-c.Send:
			var got StateMessage
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Type != "state" || got.TotalClicks != 12 {
				t.Fatalf("unexpected message: %+v", got)
			}
			if len(got.RecentPlayers) != 1 || got.RecentPlayers[0].Identity != "a@example.com" {
				t.Fatalf("unexpected recent players: %+v", got.RecentPlayers)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("%s did not receive message", c.ID)
		}
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	h := NewHub()

	c := &Client{ID: "c1", Send: make(chan []byte, 16)}
	h.Register(c)

	h.Unregister("c1")

	if _, ok := <-c.Send; ok {
		t.Fatal("Send should be closed after Unregister")
	}
	if h.Count() != 0 {
		t.Errorf("Count = %d, want 0", h.Count())
	}
}

func TestUnregisterNonexistent(t *testing.T) {
	h := NewHub()
	// Should not panic
	h.Unregister("nonexistent")
}

func TestBroadcastDropsWhenFull(t *testing.T) {
	h := NewHub()

	// Channel with capacity 1
	c := &Client{ID: "c1", Send: make(chan []byte, 1)}
	h.Register(c)

	// Fill the channel
	c.Send <- []byte("filler")

	// This should not block — message dropped
	h.Broadcast(StateMessage{Type: "state", TotalClicks: 1})

	data := <-c.Send
	if string(data) != "filler" {
		t.Fatalf("expected filler, got: %s", data)
	}

	select {
	case <-c.Send:
		t.Fatal("should be empty after draining filler")
	default:
		// expected
	}
}
