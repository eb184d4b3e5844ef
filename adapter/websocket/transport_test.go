package adapterws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.CloseNow()
		for {
			typ, data, err := conn.Read(r.Context())
			if err != nil {
				return
			}
			if err := conn.Write(r.Context(), typ, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDialRoundTrip(t *testing.T) {
	srv := echoServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	link, err := Dial(ctx, url, "alice")
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer link.Transport.Close(1000, "")

	if link.Owner {
		t.Error("dialing peer should not be the owner")
	}
	if link.LocalName != "alice" {
		t.Errorf("LocalName = %s, want alice", link.LocalName)
	}

	frame := []byte(`{"type":"name","data":{"name":"alice"}}`)
	if err := link.Transport.Write(ctx, frame); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := link.Transport.Read(ctx)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != string(frame) {
		t.Errorf("Read = %s, want %s", got, frame)
	}
}

func TestDialUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := Dial(ctx, "ws://127.0.0.1:1/ws", "alice"); err == nil {
		t.Error("dialing an unreachable host should fail")
	}
}

func TestHostCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	if _, err := Host(ctx, "127.0.0.1:0", "alice"); err == nil {
		t.Error("a cancelled host should return an error")
	}
}
