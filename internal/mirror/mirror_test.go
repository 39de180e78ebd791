package mirror

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dartserver/internal/x01"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := New(log)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server, code string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/watch/" + code
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPublishFanOut(t *testing.T) {
	s, ts := testServer(t)
	first := dial(t, ts, "1234")
	second := dial(t, ts, "1234")
	other := dial(t, ts, "5678")

	for s.Spectators("1234") != 2 || s.Spectators("5678") != 1 {
		time.Sleep(time.Millisecond)
	}

	snap := x01.Snapshot{Phase: x01.PhasePlaying, VisitNumber: 7}
	s.Publish("1234", snap)

	for _, conn := range []*websocket.Conn{first, second} {
		var msg stateMsg
		conn.SetReadDeadline(time.Now().Add(time.Second))
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("spectator read: %v", err)
		}
		if msg.Type != "state" || msg.Code != "1234" || msg.State.VisitNumber != 7 {
			t.Errorf("got message %+v", msg)
		}
	}

	// The other room stays quiet.
	other.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Error("unrelated room received a message")
	}
}

func TestDisconnectLeavesRoom(t *testing.T) {
	s, ts := testServer(t)
	conn := dial(t, ts, "4321")
	for s.Spectators("4321") != 1 {
		time.Sleep(time.Millisecond)
	}
	conn.Close()
	deadline := time.Now().Add(time.Second)
	for s.Spectators("4321") != 0 {
		if time.Now().After(deadline) {
			t.Fatal("room not cleaned up after disconnect")
		}
		time.Sleep(time.Millisecond)
	}
}
