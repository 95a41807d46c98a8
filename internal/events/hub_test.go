package events

import (
	"testing"
	"time"

	"github.com/mcoot/rpsduel-go/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "json payload",
			eventName: "match-started",
			data:      `{"host":"alice","opponent":"bob"}`,
			expected:  "event: match-started\ndata: {\"host\":\"alice\",\"opponent\":\"bob\"}\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	defer hub.Close()

	client := NewClient(hub, "alice")
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	// Broadcast a match event
	hub.BroadcastEvent(EventMatchStarted, MatchStarted{Host: "alice", Opponent: "bob"})

	select {
	case msg := <-client.send:
		expected := "event: match-started\ndata: {\"host\":\"alice\",\"opponent\":\"bob\"}\n\n"
		if string(msg) != expected {
			t.Errorf("client received %q, want %q", string(msg), expected)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	defer hub.Close()

	client := NewClient(hub, "alice")
	hub.Register(client)

	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", hub.ClientCount())
	}
}

func TestHub_UnregisterAfterClose(t *testing.T) {
	hub := NewHub(testutil.NopLogger())

	client := NewClient(hub, "alice")
	hub.Register(client)

	time.Sleep(10 * time.Millisecond)

	hub.Close()
	time.Sleep(10 * time.Millisecond)

	// The run loop has exited; a late Unregister (e.g. from a handler's
	// deferred cleanup) must still return rather than block forever
	returned := make(chan struct{})
	go func() {
		hub.Unregister(client)
		hub.Register(NewClient(hub, "bob"))
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(100 * time.Millisecond):
		t.Error("Unregister blocked after Close")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	defer hub.Close()

	client1 := NewClient(hub, "alice")
	client2 := NewClient(hub, "bob")
	client3 := NewClient(hub, "carol")

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 3 {
		t.Errorf("ClientCount() = %d, want 3", hub.ClientCount())
	}

	hub.BroadcastEvent(EventMatchResolved, MatchResolved{Host: "alice", Opponent: "bob", Result: "Host Wins"})

	expected := "event: match-resolved\ndata: {\"host\":\"alice\",\"opponent\":\"bob\",\"result\":\"Host Wins\"}\n\n"
	for i, client := range []*Client{client1, client2, client3} {
		select {
		case msg := <-client.send:
			if string(msg) != expected {
				t.Errorf("client %d received %q, want %q", i+1, string(msg), expected)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}
