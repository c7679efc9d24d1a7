package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialHub connects a test client and registers it on the given channel.
func dialHub(t *testing.T, hub *Hub, channel string) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.Register(channel, ws)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	waitForSubscribers(t, hub, 1)
	return client
}

func waitForSubscribers(t *testing.T, hub *Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ConnectionCount() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d subscribers, have %d", want, hub.ConnectionCount())
}

func TestUserChannel(t *testing.T) {
	if got := UserChannel(42); got != "notifications:42" {
		t.Errorf("expected notifications:42, got %q", got)
	}
}

func TestHubPublish(t *testing.T) {
	t.Run("delivers_to_subscriber", func(t *testing.T) {
		hub := NewHub()
		client := dialHub(t, hub, UserChannel(1))

		err := hub.Publish(UserChannel(1), "budget-alert", map[string]string{"title": "Budget \"Food\" reached 70%"})
		if err != nil {
			t.Fatalf("publish failed: %v", err)
		}

		client.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, message, err := client.ReadMessage()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}

		var envelope Envelope
		if err := json.Unmarshal(message, &envelope); err != nil {
			t.Fatalf("invalid envelope: %v", err)
		}
		if envelope.Channel != UserChannel(1) {
			t.Errorf("expected channel %q, got %q", UserChannel(1), envelope.Channel)
		}
		if envelope.Event != "budget-alert" {
			t.Errorf("expected budget-alert event, got %q", envelope.Event)
		}
	})

	t.Run("channel_isolation", func(t *testing.T) {
		hub := NewHub()
		client := dialHub(t, hub, UserChannel(1))

		if err := hub.Publish(UserChannel(2), "budget-alert", nil); err != nil {
			t.Fatalf("publish failed: %v", err)
		}

		client.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		if _, _, err := client.ReadMessage(); err == nil {
			t.Error("expected no message on another user's channel")
		}
	})

	t.Run("publish_without_subscribers", func(t *testing.T) {
		hub := NewHub()
		if err := hub.Publish(UserChannel(7), "budget-alert", nil); err != nil {
			t.Errorf("publish to empty channel should succeed, got %v", err)
		}
	})

	t.Run("unmarshalable_payload", func(t *testing.T) {
		hub := NewHub()
		if err := hub.Publish(UserChannel(7), "budget-alert", make(chan int)); err == nil {
			t.Error("expected marshal error")
		}
	})
}

func TestHubPublishDuringDisconnect(t *testing.T) {
	hub := NewHub()
	client := dialHub(t, hub, UserChannel(1))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			if err := hub.Publish(UserChannel(1), "budget-alert", map[string]int{"n": i}); err != nil {
				t.Errorf("publish failed: %v", err)
				return
			}
		}
	}()

	// Closing mid-stream must only drop the subscriber, never panic the
	// publisher goroutine on its send channel.
	client.Close()
	<-done

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ConnectionCount() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("expected subscriber to be removed, have %d", hub.ConnectionCount())
}

func TestHubUnregisterOnClose(t *testing.T) {
	hub := NewHub()
	client := dialHub(t, hub, UserChannel(1))

	client.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ConnectionCount() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("expected subscriber to be removed after close, have %d", hub.ConnectionCount())
}
