package network

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"lightcycle/game"
	"lightcycle/protocol"
	"lightcycle/room"
)

//go:embed web
var webFS embed.FS

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const joinTimeout = 5 * time.Second

type Server struct {
	rooms    *room.Manager
	rules    game.Rules
	viewport game.Viewport
	log      *slog.Logger
}

func NewServer(rooms *room.Manager, rules game.Rules, vp game.Viewport, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{rooms: rooms, rules: rules, viewport: vp, log: logger}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/sessions", s.handleSessions)

	static, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(fmt.Errorf("embedded web assets: %w", err))
	}
	mux.Handle("/", http.FileServer(http.FS(static)))
	return mux
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.rooms.ListRooms()); err != nil {
		s.log.Error("encode sessions", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	format, err := protocol.ParseFormat(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Upgrade HTTP -> WebSocket
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", "error", err)
		return
	}
	log := s.log.With("remote", ws.RemoteAddr().String(), "codec", format.String())

	ws.SetReadLimit(protocol.MaxMessageLen)
	_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	hello, err := readHello(ws, format)
	if err != nil {
		log.Warn("bad hello", "error", err)
		rejectAndClose(ws, format, err.Error())
		return
	}

	rm, err := s.roomFor(hello)
	if err != nil {
		log.Warn("join refused", "code", hello.Code, "error", err)
		rejectAndClose(ws, format, err.Error())
		return
	}

	conn := newWSConn(ws, format.Binary(), log)
	go conn.writeLoop()
	defer conn.Close()

	reply := make(chan room.JoinResult, 1)
	if !rm.Send(room.Join{Viewer: room.NewRemoteViewer(conn, format), Reply: reply}) {
		log.Warn("room closed before join", "code", rm.Code)
		return
	}
	var res room.JoinResult
	select {
	case res = <-reply:
	case <-time.After(joinTimeout):
		log.Error("join timed out", "code", rm.Code)
		return
	}
	log = log.With("code", res.Code, "viewer", res.ViewerID)
	log.Info("client joined", "host", res.Host)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("read failed", "error", err)
			}
			break
		}
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))

		cmd, err := decodeCommand(format, msg, res.ViewerID)
		if err != nil {
			log.Warn("invalid message", "error", err)
			if b, err := protocol.EncodeAs(format, protocol.MsgError, protocol.NewError(err.Error())); err == nil {
				_ = conn.Send(b)
			}
			continue
		}
		if !rm.Send(cmd) {
			break
		}
	}
	rm.Send(room.Leave{ViewerID: res.ViewerID})
	log.Info("client left")
}

func (s *Server) roomFor(hello protocol.Hello) (*room.Room, error) {
	if hello.Code != "" {
		rm := s.rooms.Get(hello.Code)
		if rm == nil {
			return nil, fmt.Errorf("unknown session %q", hello.Code)
		}
		return rm, nil
	}
	rules := s.rules
	if hello.Players > 0 {
		rules.Players = hello.Players
	}
	vp := s.viewport
	if hello.Width > 0 && hello.Height > 0 {
		vp = game.Viewport{Width: hello.Width, Height: hello.Height}
	}
	return s.rooms.CreateRoom(rules, vp), nil
}

var errBadVersion = errors.New("unsupported protocol version")

func readHello(ws *websocket.Conn, format protocol.Format) (protocol.Hello, error) {
	_, msg, err := ws.ReadMessage()
	if err != nil {
		return protocol.Hello{}, err
	}
	env, err := protocol.DecodeEnvelopeAs(format, msg)
	if err != nil {
		return protocol.Hello{}, err
	}
	if env.T != protocol.MsgHello {
		return protocol.Hello{}, fmt.Errorf("expected %q, got %q", protocol.MsgHello, env.T)
	}
	hello, err := protocol.DecodePayload[protocol.Hello](env)
	if err != nil {
		return protocol.Hello{}, err
	}
	if hello.V != protocol.Version {
		return protocol.Hello{}, fmt.Errorf("%w: %d", errBadVersion, hello.V)
	}
	if hello.Players < 0 || hello.Players > game.MaxPlayers {
		return protocol.Hello{}, fmt.Errorf("players must be 1 or %d, got %d", game.MaxPlayers, hello.Players)
	}
	return hello, nil
}

func decodeCommand(format protocol.Format, msg []byte, viewerID string) (any, error) {
	env, err := protocol.DecodeEnvelopeAs(format, msg)
	if err != nil {
		return nil, err
	}
	switch env.T {
	case protocol.MsgKey:
		k, err := protocol.DecodePayload[protocol.Key](env)
		if err != nil {
			return nil, err
		}
		return room.Key{ViewerID: viewerID, Key: k.Key}, nil
	case protocol.MsgRestart:
		return room.Restart{ViewerID: viewerID}, nil
	case protocol.MsgResize:
		rs, err := protocol.DecodePayload[protocol.Resize](env)
		if err != nil {
			return nil, err
		}
		return room.Resize{ViewerID: viewerID, Viewport: game.Viewport{Width: rs.Width, Height: rs.Height}}, nil
	}
	return nil, fmt.Errorf("unknown message type %q", env.T)
}

func rejectAndClose(ws *websocket.Conn, format protocol.Format, reason string) {
	msgType := websocket.TextMessage
	if format.Binary() {
		msgType = websocket.BinaryMessage
	}
	if b, err := protocol.EncodeAs(format, protocol.MsgError, protocol.NewError(reason)); err == nil {
		_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		_ = ws.WriteMessage(msgType, b)
	}
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
		time.Now().Add(writeTimeout))
	_ = ws.Close()
}
