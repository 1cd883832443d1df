package realtime

import (
	"errors"
	"mgMessenger/internal/errs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// serveClient starts a server that wraps every accepted socket in a Client
// and hands it to the test.
func serveClient(t *testing.T, cfg ClientConfig) (*websocket.Conn, *Client) {
	t.Helper()

	clients := make(chan *Client, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		clients <- NewClient(ws, cfg)
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	peer, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { peer.Close() })

	select {
	case client := <-clients:
		t.Cleanup(client.Close)
		return peer, client
	case <-time.After(2 * time.Second):
		t.Fatal("server never accepted the connection")
		return nil, nil
	}
}

func readText(t *testing.T, peer *websocket.Conn) string {
	t.Helper()
	peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	messageType, msg, err := peer.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if messageType != websocket.TextMessage {
		t.Fatalf("message type: got %d, want text", messageType)
	}
	return string(msg)
}

func TestClient_SendPreservesOrder(t *testing.T) {
	peer, client := serveClient(t, DefaultClientConfig())

	for _, msg := range []string{"one", "two", "three"} {
		if err := client.Send([]byte(msg)); err != nil {
			t.Fatalf("Send(%s): %v", msg, err)
		}
	}
	for _, want := range []string{"one", "two", "three"} {
		if got := readText(t, peer); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestClient_SendAfterClose(t *testing.T) {
	peer, client := serveClient(t, DefaultClientConfig())

	client.Close()
	client.Close()

	if err := client.Send([]byte("late")); !errors.Is(err, errs.ErrConnectionClosed) {
		t.Errorf("Send after Close: got %v, want ErrConnectionClosed", err)
	}

	select {
	case <-client.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Done not closed after Close")
	}

	peer.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := peer.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("peer read: got %v, want normal closure", err)
	}
}

func TestClient_ReadLoopHandsTextFrames(t *testing.T) {
	peer, client := serveClient(t, DefaultClientConfig())

	received := make(chan string, 2)
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- client.ReadLoop(func(msg []byte) {
			received <- string(msg)
		})
	}()

	if err := peer.WriteMessage(websocket.BinaryMessage, []byte{1, 2}); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	if err := peer.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("write text: %v", err)
	}

	select {
	case got := <-received:
		if got != "hello" {
			t.Errorf("got %q, want hello", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("text frame not delivered")
	}

	peer.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	select {
	case err := <-loopErr:
		if !IsExpectedCloseError(err) {
			t.Errorf("ReadLoop error: got %v, want an expected close", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ReadLoop did not return after peer closed")
	}
	if len(received) != 0 {
		t.Errorf("binary frame was handed to the callback")
	}
}

func TestClient_FullBufferClosesClient(t *testing.T) {
	// no write pump: nothing drains the queue
	client := &Client{
		id:   "stalled",
		send: make(chan []byte, 1),
		done: make(chan struct{}),
	}

	if err := client.Send([]byte("first")); err != nil {
		t.Fatalf("first Send: %v", err)
	}
	if err := client.Send([]byte("second")); !errors.Is(err, errs.ErrSendBufferFull) {
		t.Fatalf("second Send: got %v, want ErrSendBufferFull", err)
	}
	if err := client.Send([]byte("third")); !errors.Is(err, errs.ErrConnectionClosed) {
		t.Errorf("Send after overflow: got %v, want ErrConnectionClosed", err)
	}
}

func TestNewClient_FillsDefaults(t *testing.T) {
	_, client := serveClient(t, ClientConfig{PongWait: 10 * time.Second, PingPeriod: 20 * time.Second})

	def := DefaultClientConfig()
	if client.cfg.WriteWait != def.WriteWait {
		t.Errorf("WriteWait: got %v", client.cfg.WriteWait)
	}
	if client.cfg.PingPeriod != 9*time.Second {
		t.Errorf("PingPeriod: got %v, want 9s", client.cfg.PingPeriod)
	}
	if client.cfg.SendBufferSize != def.SendBufferSize || client.cfg.MaxMessageSize != def.MaxMessageSize {
		t.Errorf("buffer sizes: got %+v", client.cfg)
	}
	if client.ID() == "" {
		t.Error("empty client id")
	}
}

func TestIsExpectedCloseError(t *testing.T) {
	if !IsExpectedCloseError(&websocket.CloseError{Code: websocket.CloseGoingAway}) {
		t.Error("going away should be expected")
	}
	if IsExpectedCloseError(&websocket.CloseError{Code: websocket.CloseInternalServerErr}) {
		t.Error("internal error should not be expected")
	}
	if IsExpectedCloseError(errors.New("read tcp: i/o timeout")) {
		t.Error("timeout should not be expected")
	}
}
