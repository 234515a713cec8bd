package websocket

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
)

// drainWelcome consumes the frame OpenSession queues on connect.
func drainWelcome(t *testing.T, client *Client) {
	t.Helper()
	select {
	case <-client.send:
	default:
		t.Fatal("no welcome frame queued on connect")
	}
}

func TestOpenSessionRegistersAndWelcomes(t *testing.T) {
	hub := NewHub(zap.NewNop())

	client := hub.OpenSession(nil, "10.0.0.1")
	if client.SessionID() == "" {
		t.Fatal("session id is empty")
	}
	if client.RemoteAddr() != "10.0.0.1" {
		t.Errorf("remote addr = %q, want %q", client.RemoteAddr(), "10.0.0.1")
	}
	if hub.SessionCount() != 1 {
		t.Errorf("session count = %d, want 1", hub.SessionCount())
	}
	drainWelcome(t, client)
}

func TestSessionIDsAreUnique(t *testing.T) {
	hub := NewHub(zap.NewNop())
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		client := hub.OpenSession(nil, "addr")
		if seen[client.SessionID()] {
			t.Fatalf("duplicate session id %q", client.SessionID())
		}
		seen[client.SessionID()] = true
	}
}

func TestCloseSessionIsIdempotent(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := hub.OpenSession(nil, "addr")

	hub.CloseSession(client.SessionID())
	if hub.SessionCount() != 0 {
		t.Errorf("session count = %d, want 0", hub.SessionCount())
	}

	// A second close and a close of an unknown id are both no-ops.
	hub.CloseSession(client.SessionID())
	hub.CloseSession("never-existed")
}

func TestEnqueueAfterCloseIsDropped(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := hub.OpenSession(nil, "addr")
	hub.CloseSession(client.SessionID())

	if client.Enqueue([]byte("late reply")) {
		t.Error("Enqueue accepted a frame after disconnect")
	}
}

func TestRecentHistoryWindow(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := hub.OpenSession(nil, "addr")

	for i := 0; i < 6; i++ {
		hub.AppendTurn(client.SessionID(), fmt.Sprintf("u%d", i), fmt.Sprintf("a%d", i))
	}

	history := hub.RecentHistory(client.SessionID(), HistoryWindow)
	if len(history) != HistoryWindow {
		t.Fatalf("history length = %d, want %d", len(history), HistoryWindow)
	}
	// Six turns through a window of five keeps turns 1..5.
	if history[0].User != "u1" || history[4].User != "u5" {
		t.Errorf("window = [%s .. %s], want [u1 .. u5]", history[0].User, history[4].User)
	}
}

func TestRecentHistoryShorterThanWindow(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := hub.OpenSession(nil, "addr")

	hub.AppendTurn(client.SessionID(), "only", "turn")
	history := hub.RecentHistory(client.SessionID(), HistoryWindow)
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].User != "only" || history[0].Assistant != "turn" {
		t.Errorf("turn = %+v", history[0])
	}
}

func TestRecentHistoryReturnsACopy(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := hub.OpenSession(nil, "addr")
	hub.AppendTurn(client.SessionID(), "u", "a")

	history := hub.RecentHistory(client.SessionID(), HistoryWindow)
	history[0].User = "mutated"

	if again := hub.RecentHistory(client.SessionID(), HistoryWindow); again[0].User != "u" {
		t.Error("caller mutation leaked into stored history")
	}
}

func TestHistoryDiscardedOnClose(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := hub.OpenSession(nil, "addr")
	hub.AppendTurn(client.SessionID(), "u", "a")
	hub.CloseSession(client.SessionID())

	if got := hub.RecentHistory(client.SessionID(), HistoryWindow); got != nil {
		t.Errorf("history after close = %v, want nil", got)
	}

	// Appends against a dead session are silently dropped.
	hub.AppendTurn(client.SessionID(), "late", "turn")
	if got := hub.RecentHistory(client.SessionID(), HistoryWindow); got != nil {
		t.Errorf("append resurrected a closed session: %v", got)
	}
}
