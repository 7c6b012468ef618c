package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Aby-117/quiz-deploy/internal/game"
)

func TestHub_BroadcastToRoom(t *testing.T) {
	hub := NewHub(nil)

	a := NewClient(hub, nil, "a", "Alice")
	b := NewClient(hub, nil, "b", "Bob")
	other := NewClient(hub, nil, "c", "Cleo")

	hub.addToRoom("room-1", a)
	hub.addToRoom("room-1", b)
	hub.addToRoom("room-2", other)

	hub.BroadcastToRoom("room-1", game.Event{Type: game.EventQuizStarted})

	for _, c := range []*Client{a, b} {
		select {
		case data := <-c.Send:
			var ev game.Event
			if err := json.Unmarshal(data, &ev); err != nil {
				t.Fatalf("unmarshal broadcast: %v", err)
			}
			if ev.Type != game.EventQuizStarted {
				t.Errorf("client %s got event %s, want quiz_started", c.PlayerID, ev.Type)
			}
		default:
			t.Errorf("client %s received nothing", c.PlayerID)
		}
	}

	select {
	case <-other.Send:
		t.Error("client in another room received the broadcast")
	default:
	}
}

func TestHub_SendToPlayer(t *testing.T) {
	hub := NewHub(nil)

	a := NewClient(hub, nil, "a", "Alice")
	b := NewClient(hub, nil, "b", "Bob")
	hub.addToRoom("room-1", a)
	hub.addToRoom("room-1", b)

	hub.SendToPlayer("room-1", "b", game.Event{Type: game.EventAnswerAccepted})

	select {
	case <-a.Send:
		t.Error("wrong player received targeted event")
	default:
	}
	select {
	case <-b.Send:
	default:
		t.Error("target player received nothing")
	}
}

// A client with a full send buffer must not block the broadcast.
func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)

	slow := NewClient(hub, nil, "slow", "Slow")
	slow.Send = make(chan []byte) // unbuffered and never drained
	ok := NewClient(hub, nil, "ok", "Ok")

	hub.addToRoom("room-1", slow)
	hub.addToRoom("room-1", ok)

	done := make(chan struct{})
	go func() {
		hub.BroadcastToRoom("room-1", game.Event{Type: game.EventQuizStarted})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast did not complete")
	}

	select {
	case <-ok.Send:
	default:
		t.Error("healthy client received nothing")
	}
}

func TestHub_RemoveFromRoom(t *testing.T) {
	hub := NewHub(nil)

	a := NewClient(hub, nil, "a", "Alice")
	hub.addToRoom("room-1", a)
	hub.removeFromRoom("room-1", a)

	hub.BroadcastToRoom("room-1", game.Event{Type: game.EventQuizStarted})

	select {
	case <-a.Send:
		t.Error("removed client received broadcast")
	default:
	}
}
