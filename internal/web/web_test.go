package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tomz197/pinball/internal/loop/server"
	"github.com/tomz197/pinball/internal/pinball"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// startTables runs a table server for the duration of the test.
func startTables(t *testing.T) *server.Server {
	t.Helper()
	srv, err := server.NewServer(pinball.DefaultConfig())
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go srv.Run(ctx)
	t.Cleanup(cancel)
	return srv
}

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *server.Server) {
	t.Helper()
	tables := startTables(t)
	ts := httptest.NewServer(NewHandler(tables, opts).Router())
	t.Cleanup(ts.Close)
	return ts, tables
}

func TestHealthCheck(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "pinball" {
		t.Errorf("health = %v", body)
	}
}

func TestGetLayout(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/api/v1/layout")
	if err != nil {
		t.Fatalf("GET layout: %v", err)
	}
	defer resp.Body.Close()

	var layout pinball.Layout
	if err := json.NewDecoder(resp.Body).Decode(&layout); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := pinball.DefaultConfig()
	if layout.Width != want.Width || layout.Height != want.Height {
		t.Errorf("size = %vx%v, want %vx%v", layout.Width, layout.Height, want.Width, want.Height)
	}
	if len(layout.Walls) != 9 {
		t.Errorf("walls = %d, want 9", len(layout.Walls))
	}
}

func TestIndexPage(t *testing.T) {
	ts, _ := newTestServer(t, Options{SSHHost: "pinball.example.com"})

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	page := string(data)

	if !strings.Contains(page, "<canvas") {
		t.Error("page has no canvas")
	}
	if !strings.Contains(page, "ssh pinball.example.com") {
		t.Error("page does not name the SSH host")
	}
	if strings.Contains(page, "{{.SSHHost}}") {
		t.Error("SSH host placeholder left in page")
	}
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/table/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readType reads messages until one of type typ arrives.
func readType(t *testing.T, conn *websocket.Conn, typ string) []byte {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q: %v", typ, err)
		}
		var head typeMessage
		if err := json.Unmarshal(data, &head); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if head.Type == typ {
			return data
		}
	}
}

func TestWebSocketLayoutThenFrames(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	conn := dial(t, ts)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read first message: %v", err)
	}
	var layout layoutMessage
	if err := json.Unmarshal(data, &layout); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if layout.Type != "layout" || len(layout.Layout.Walls) == 0 {
		t.Fatalf("first message = %s", data)
	}

	// The first frames may predate the server picking up the registration.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		var frame frameMessage
		if err := json.Unmarshal(readType(t, conn, "frame"), &frame); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		if len(frame.Bumpers) == 0 {
			t.Fatalf("frame without bumpers: %+v", frame)
		}
		if frame.Players == 1 {
			return
		}
	}
	t.Fatal("no frame counted this player")
}

func TestWebSocketVisibilityPauses(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	conn := dial(t, ts)
	readType(t, conn, "frame")

	if err := conn.WriteJSON(map[string]any{"type": "visibility", "active": false}); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		var frame frameMessage
		if err := json.Unmarshal(readType(t, conn, "frame"), &frame); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		if !frame.Active {
			return
		}
	}
	t.Fatal("table never paused")
}

func TestWebSocketCloseUnregisters(t *testing.T) {
	ts, tables := newTestServer(t, Options{})
	conn := dial(t, ts)
	readType(t, conn, "frame")

	waitPlayers(t, tables, 1)
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitPlayers(t, tables, 0)
}

func waitPlayers(t *testing.T, tables *server.Server, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for tables.Players() != want {
		if time.Now().After(deadline) {
			t.Fatalf("players = %d, want %d", tables.Players(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestOriginAllowed(t *testing.T) {
	h := NewHandler(startTables(t), Options{AllowedOrigins: []string{"https://pinball.example.com"}})

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://pinball.example.com", true},
		{"https://evil.example.com", false},
		{"", true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/table/ws", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := h.originAllowed(r); got != tt.want {
			t.Errorf("originAllowed(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    clientMessage
		wantErr error
		anyErr  bool
	}{
		{
			name: "input",
			in:   `{"type":"input","left":true,"nudge":true}`,
			want: clientMessage{Type: msgInput, Left: true, Nudge: true},
		},
		{name: "launch", in: `{"type":"launch"}`, want: clientMessage{Type: msgLaunch}},
		{name: "unknown", in: `{"type":"tilt"}`, wantErr: ErrUnknownMessage},
		{name: "visibility without active", in: `{"type":"visibility"}`, anyErr: true},
		{name: "not json", in: `nope`, anyErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeMessage([]byte(tt.in))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil {
					t.Error("expected an error")
				}
			default:
				if err != nil {
					t.Fatalf("decodeMessage: %v", err)
				}
				if got.Type != tt.want.Type || got.raw() != tt.want.raw() {
					t.Errorf("got %+v, want %+v", got, tt.want)
				}
			}
		})
	}
}

func TestResetDefaultsToFull(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`{"type":"reset"}`, true},
		{`{"type":"reset","full":true}`, true},
		{`{"type":"reset","full":false}`, false},
	}
	for _, tt := range tests {
		msg, err := decodeMessage([]byte(tt.in))
		if err != nil {
			t.Fatalf("decodeMessage(%s): %v", tt.in, err)
		}
		if got := msg.fullReset(); got != tt.want {
			t.Errorf("fullReset(%s) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewEvents(t *testing.T) {
	res := pinball.TickResult{Events: []pinball.Event{
		{Type: pinball.EventBumperHit, Index: 0, Skill: "Docker", IconKey: "docker"},
		{Type: pinball.EventFlipperHit, Index: 1, Side: pinball.SideRight},
	}}
	data, err := json.Marshal(newEvents(res))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"events","events":[` +
		`{"type":"bumper_hit","index":0,"skill":"Docker","icon":"docker"},` +
		`{"type":"flipper_hit","index":1,"side":"right"}]}`
	if string(data) != want {
		t.Errorf("events = %s\nwant %s", data, want)
	}
}
