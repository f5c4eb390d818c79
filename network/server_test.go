package network

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"lightcycle/game"
	"lightcycle/protocol"
	"lightcycle/room"
)

func newTestServer(t *testing.T) (*httptest.Server, *room.Manager) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rooms := room.NewManager(room.Options{Logger: logger})
	srv := NewServer(rooms, game.DefaultRules(), game.Viewport{Width: 800, Height: 600}, logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		rooms.Shutdown()
	})
	return ts, rooms
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func sendMsg(t *testing.T, ws *websocket.Conn, format protocol.Format, typ string, payload any) {
	t.Helper()
	b, err := protocol.EncodeAs(format, typ, payload)
	if err != nil {
		t.Fatalf("encode %s: %v", typ, err)
	}
	msgType := websocket.TextMessage
	if format.Binary() {
		msgType = websocket.BinaryMessage
	}
	if err := ws.WriteMessage(msgType, b); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readEnv(t *testing.T, ws *websocket.Conn, format protocol.Format) protocol.Envelope {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, b, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	env, err := protocol.DecodeEnvelopeAs(format, b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func readUntil(t *testing.T, ws *websocket.Conn, format protocol.Format, typ string) protocol.Envelope {
	t.Helper()
	for i := 0; i < 200; i++ {
		env := readEnv(t, ws, format)
		if env.T == typ {
			return env
		}
	}
	t.Fatalf("no %q message received", typ)
	return protocol.Envelope{}
}

func TestHelloCreatesSessionAndStreamsFrames(t *testing.T) {
	for _, format := range []protocol.Format{protocol.FormatJSON, protocol.FormatMsgpack} {
		ts, rooms := newTestServer(t)
		ws := dial(t, ts, "?codec="+format.String())

		sendMsg(t, ws, format, protocol.MsgHello, protocol.Hello{V: protocol.Version, Players: 2, Width: 640, Height: 480})
		env := readEnv(t, ws, format)
		if env.T != protocol.MsgWelcome {
			t.Fatalf("%s: first message = %q, want welcome", format, env.T)
		}
		w, err := protocol.DecodePayload[protocol.Welcome](env)
		if err != nil {
			t.Fatalf("%s: decode welcome: %v", format, err)
		}
		if !w.Host || w.Session == "" {
			t.Fatalf("%s: welcome = %+v", format, w)
		}
		if rooms.Get(w.Session) == nil {
			t.Fatalf("%s: session %q not registered", format, w.Session)
		}

		fr, err := protocol.DecodePayload[protocol.Frame](readUntil(t, ws, format, protocol.MsgFrame))
		if err != nil {
			t.Fatalf("%s: decode frame: %v", format, err)
		}
		polylines := 0
		for _, op := range fr.Ops {
			if op.Op == protocol.OpPolyline {
				polylines++
			}
		}
		if polylines != 2 {
			t.Fatalf("%s: polylines = %d, want 2", format, polylines)
		}
	}
}

func TestKeyTurnsThePlayer(t *testing.T) {
	ts, _ := newTestServer(t)
	ws := dial(t, ts, "")
	sendMsg(t, ws, protocol.FormatJSON, protocol.MsgHello, protocol.Hello{V: protocol.Version})
	readUntil(t, ws, protocol.FormatJSON, protocol.MsgWelcome)
	readUntil(t, ws, protocol.FormatJSON, protocol.MsgFrame)

	sendMsg(t, ws, protocol.FormatJSON, protocol.MsgKey, protocol.Key{Key: "ArrowUp"})
	for i := 0; i < 200; i++ {
		fr, err := protocol.DecodePayload[protocol.Frame](readUntil(t, ws, protocol.FormatJSON, protocol.MsgFrame))
		if err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		for _, op := range fr.Ops {
			if op.Op == protocol.OpPolyline && len(op.Points) == 3 {
				return
			}
		}
	}
	t.Fatalf("turn never showed up in a frame")
}

func TestSpectatorJoinsByCode(t *testing.T) {
	ts, _ := newTestServer(t)
	hostWS := dial(t, ts, "")
	sendMsg(t, hostWS, protocol.FormatJSON, protocol.MsgHello, protocol.Hello{V: protocol.Version})
	w, err := protocol.DecodePayload[protocol.Welcome](readUntil(t, hostWS, protocol.FormatJSON, protocol.MsgWelcome))
	if err != nil {
		t.Fatalf("decode welcome: %v", err)
	}

	specWS := dial(t, ts, "")
	sendMsg(t, specWS, protocol.FormatJSON, protocol.MsgHello, protocol.Hello{V: protocol.Version, Code: w.Session})
	sw, err := protocol.DecodePayload[protocol.Welcome](readUntil(t, specWS, protocol.FormatJSON, protocol.MsgWelcome))
	if err != nil {
		t.Fatalf("decode spectator welcome: %v", err)
	}
	if sw.Host || sw.Session != w.Session || sw.MatchID != w.MatchID {
		t.Fatalf("spectator welcome = %+v, host welcome = %+v", sw, w)
	}
}

func TestRejectsBadHello(t *testing.T) {
	ts, _ := newTestServer(t)

	ws := dial(t, ts, "")
	sendMsg(t, ws, protocol.FormatJSON, protocol.MsgHello, protocol.Hello{V: 99})
	if env := readEnv(t, ws, protocol.FormatJSON); env.T != protocol.MsgError {
		t.Fatalf("bad version: got %q, want error", env.T)
	}

	ws = dial(t, ts, "")
	sendMsg(t, ws, protocol.FormatJSON, protocol.MsgHello, protocol.Hello{V: protocol.Version, Code: "NOPE42"})
	env := readEnv(t, ws, protocol.FormatJSON)
	e, err := protocol.DecodePayload[protocol.Error](env)
	if err != nil || env.T != protocol.MsgError || !strings.Contains(e.Error, "NOPE42") {
		t.Fatalf("unknown session: %q %+v %v", env.T, e, err)
	}
}

func TestUnknownCodecIsBadRequest(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/ws?codec=xml")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSessionsListAndCleanup(t *testing.T) {
	ts, rooms := newTestServer(t)
	ws := dial(t, ts, "")
	sendMsg(t, ws, protocol.FormatJSON, protocol.MsgHello, protocol.Hello{V: protocol.Version, Players: 2})
	w, err := protocol.DecodePayload[protocol.Welcome](readUntil(t, ws, protocol.FormatJSON, protocol.MsgWelcome))
	if err != nil {
		t.Fatalf("decode welcome: %v", err)
	}

	resp, err := http.Get(ts.URL + "/sessions")
	if err != nil {
		t.Fatalf("get sessions: %v", err)
	}
	var list []room.RoomInfo
	err = json.NewDecoder(resp.Body).Decode(&list)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode sessions: %v", err)
	}
	if len(list) != 1 || list[0].Code != w.Session || list[0].Players != 2 {
		t.Fatalf("sessions = %+v", list)
	}

	ws.Close()
	deadline := time.After(2 * time.Second)
	for rooms.Get(w.Session) != nil {
		select {
		case <-deadline:
			t.Fatalf("session %q survived its host disconnecting", w.Session)
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestServesPage(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "app.js") {
		t.Fatalf("index: status %d", resp.StatusCode)
	}
}
