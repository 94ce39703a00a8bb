package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// startHubServer upgrades every request and registers it with hub.
func startHubServer(t *testing.T, hub *Hub) (*httptest.Server, <-chan *Client) {
	t.Helper()
	registered := make(chan *Client, 4)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		registered <- hub.Register(conn)
	}))
	t.Cleanup(srv.Close)
	return srv, registered
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubMarkSubmittedReachesEveryOverview(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	srv, registered := startHubServer(t, hub)

	a := dial(t, srv)
	b := dial(t, srv)
	<-registered
	<-registered
	if hub.Len() != 2 {
		t.Fatalf("hub.Len() = %d, want 2", hub.Len())
	}

	hub.MarkSubmitted("Two Sum")

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var ev MarkSubmittedEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("read: %v", err)
		}
		if ev.Event != EventMarkSubmitted || ev.Title != "Two Sum" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	srv, registered := startHubServer(t, hub)

	dial(t, srv)
	c := <-registered
	hub.Unregister(c)
	hub.Unregister(c)
	if hub.Len() != 0 {
		t.Fatalf("hub.Len() = %d, want 0", hub.Len())
	}

	// Broadcasting to an empty hub is a no-op.
	hub.MarkSubmitted("nothing listens")
}

func TestDecodeOverviewEvent(t *testing.T) {
	ev, err := DecodeOverviewEvent(`{"origin":"a1","event":"mark_submitted","title":"LRU Cache"}`)
	if err != nil {
		t.Fatalf("DecodeOverviewEvent: %v", err)
	}
	if ev.Title != "LRU Cache" || ev.Event != EventMarkSubmitted || ev.Origin != "a1" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if _, err := DecodeOverviewEvent("not json"); err == nil {
		t.Fatal("expected decode error")
	}
}
