package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gaurav-Gosain/tuiwin/internal/geometry"
	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

func init() {
	SetLogLevel(log.FatalLevel)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Geometry.InitialPosition = geometry.Point{X: 100, Y: 100}
	return cfg
}

func dial(t *testing.T, ctx context.Context, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.CloseNow() })
	return conn
}

func roundTrip(t *testing.T, ctx context.Context, conn *websocket.Conn, msg ClientMessage) Snapshot {
	t.Helper()
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		t.Fatalf("write %s: %v", msg.Type, err)
	}
	var snap Snapshot
	if err := wsjson.Read(ctx, conn, &snap); err != nil {
		t.Fatalf("read after %s: %v", msg.Type, err)
	}
	return snap
}

func TestIndexAndHealth(t *testing.T) {
	srv := httptest.NewServer(NewServer(testConfig()).Handler())
	defer srv.Close()

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/", http.StatusOK, "<div id=\"panel\">"},
		{"/health", http.StatusOK, "OK"},
		{"/missing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestWebSocketDrag(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := httptest.NewServer(NewServer(testConfig()).Handler())
	defer srv.Close()
	conn := dial(t, ctx, srv)

	var initial Snapshot
	if err := wsjson.Read(ctx, conn, &initial); err != nil {
		t.Fatal(err)
	}
	if initial.X != 100 || initial.Width != 600 || initial.Mode != "idle" {
		t.Fatalf("initial snapshot %+v", initial)
	}

	roundTrip(t, ctx, conn, ClientMessage{Type: MsgViewport, Width: 1280, Height: 720})

	snap := roundTrip(t, ctx, conn, ClientMessage{Type: MsgMouseDown, Region: RegionTitleBar, X: 110, Y: 105})
	if snap.Mode != "dragging" {
		t.Errorf("mode after mousedown = %q", snap.Mode)
	}

	snap = roundTrip(t, ctx, conn, ClientMessage{Type: MsgMouseMove, X: 160, Y: 145})
	if snap.X != 150 || snap.Y != 140 {
		t.Errorf("position after move = %d,%d, want 150,140", snap.X, snap.Y)
	}

	snap = roundTrip(t, ctx, conn, ClientMessage{Type: MsgMouseUp, X: 160, Y: 145})
	if snap.Mode != "idle" {
		t.Errorf("mode after mouseup = %q", snap.Mode)
	}
}

func TestWebSocketTouchResize(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := httptest.NewServer(NewServer(testConfig()).Handler())
	defer srv.Close()
	conn := dial(t, ctx, srv)

	var initial Snapshot
	if err := wsjson.Read(ctx, conn, &initial); err != nil {
		t.Fatal(err)
	}
	roundTrip(t, ctx, conn, ClientMessage{Type: MsgViewport, Width: 1280, Height: 720})

	snap := roundTrip(t, ctx, conn, ClientMessage{
		Type:    MsgTouchStart,
		Region:  RegionHandle,
		Dir:     geometry.DirSE,
		Touches: []geometry.Touch{{ID: 7, X: 700, Y: 500}},
	})
	if snap.Mode != "resizing" || snap.Direction != "se" {
		t.Fatalf("after touchstart %+v", snap)
	}

	snap = roundTrip(t, ctx, conn, ClientMessage{
		Type:    MsgTouchMove,
		Touches: []geometry.Touch{{ID: 7, X: 5000, Y: 5000}},
	})
	if snap.Width != 1280 || snap.Height != 720 {
		t.Errorf("size = %dx%d, want the viewport 1280x720", snap.Width, snap.Height)
	}

	snap = roundTrip(t, ctx, conn, ClientMessage{Type: MsgTouchEnd})
	if snap.Mode != "idle" || snap.Direction != "" {
		t.Errorf("after touchend %+v", snap)
	}
}

func TestWebSocketInvalidMessage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := httptest.NewServer(NewServer(testConfig()).Handler())
	defer srv.Close()
	conn := dial(t, ctx, srv)

	var initial Snapshot
	if err := wsjson.Read(ctx, conn, &initial); err != nil {
		t.Fatal(err)
	}

	snap := roundTrip(t, ctx, conn, ClientMessage{Type: "wiggle"})
	if !strings.Contains(snap.Error, "wiggle") {
		t.Errorf("error = %q", snap.Error)
	}
	if snap.Width != initial.Width {
		t.Errorf("geometry changed on an invalid message")
	}
}

func TestWebSocketUndecodableMessage(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	srv := httptest.NewServer(NewServer(testConfig()).Handler())
	defer srv.Close()
	conn := dial(t, ctx, srv)

	var initial Snapshot
	if err := wsjson.Read(ctx, conn, &initial); err != nil {
		t.Fatal(err)
	}

	frames := []struct {
		name    string
		payload string
		want    string
	}{
		{"unknown direction", `{"type":"mousedown","region":"handle","dir":"up","x":700,"y":300}`, "up"},
		{"malformed json", `{"type":`, "decode message"},
	}
	for _, f := range frames {
		t.Run(f.name, func(t *testing.T) {
			if err := conn.Write(ctx, websocket.MessageText, []byte(f.payload)); err != nil {
				t.Fatalf("write: %v", err)
			}
			var snap Snapshot
			if err := wsjson.Read(ctx, conn, &snap); err != nil {
				t.Fatalf("connection dropped: %v", err)
			}
			if !strings.Contains(snap.Error, f.want) {
				t.Errorf("error = %q, want it to mention %q", snap.Error, f.want)
			}
			if snap.Mode != "idle" || snap.Width != initial.Width {
				t.Errorf("state changed: %+v", snap)
			}
		})
	}

	// The same connection keeps serving valid messages.
	snap := roundTrip(t, ctx, conn, ClientMessage{Type: MsgMouseDown, Region: RegionTitleBar, X: 150, Y: 110})
	if snap.Error != "" || snap.Mode != "dragging" {
		t.Errorf("after errors: %+v", snap)
	}
}

func TestConnectionLimit(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := testConfig()
	cfg.MaxConnections = 1
	srv := httptest.NewServer(NewServer(cfg).Handler())
	defer srv.Close()

	conn := dial(t, ctx, srv)
	var initial Snapshot
	if err := wsjson.Read(ctx, conn, &initial); err != nil {
		t.Fatal(err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.Dial(ctx, url, nil)
	if err == nil {
		t.Fatal("second connection should be refused")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %v", resp)
	}
}

func TestSessionApply(t *testing.T) {
	s := NewSession(testConfig().Geometry)
	defer s.Close()

	tests := []struct {
		name    string
		msg     ClientMessage
		wantErr bool
	}{
		{"viewport", ClientMessage{Type: MsgViewport, Width: 800, Height: 600}, false},
		{"unknown type", ClientMessage{Type: "hover"}, true},
		{"unknown region", ClientMessage{Type: MsgMouseDown, Region: "content"}, true},
		{"handle without direction", ClientMessage{Type: MsgMouseDown, Region: RegionHandle}, true},
		{"move while idle", ClientMessage{Type: MsgMouseMove, X: 5, Y: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Apply(tt.msg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownMessage) {
				t.Errorf("expected ErrUnknownMessage, got %v", err)
			}
		})
	}

	if got := s.Snapshot(); got.Mode != "idle" || got.X != 100 {
		t.Errorf("snapshot %+v", got)
	}
}

func TestSessionCloseReleasesListeners(t *testing.T) {
	s := NewSession(testConfig().Geometry)

	if err := s.Apply(ClientMessage{Type: MsgMouseDown, Region: RegionTitleBar, X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if s.Listeners() == 0 {
		t.Fatal("drag should attach listeners")
	}

	s.Close()
	s.Close()
	if s.Listeners() != 0 {
		t.Errorf("%d listeners left after Close", s.Listeners())
	}
	if err := s.Apply(ClientMessage{Type: MsgViewport}); err == nil {
		t.Error("Apply after Close should fail")
	}
}

func TestServerShutdown(t *testing.T) {
	cfg := testConfig()
	cfg.Address = "127.0.0.1:0"
	s := NewServer(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
