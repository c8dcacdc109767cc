// Package server is the websocket transport: it upgrades connections,
// decodes message envelopes and routes everything else into rooms.
// Game logic lives in the rooms; the server only knows how to get
// messages in and out.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/op/go-logging"

	"github.com/liamiak1/hyper-fairy-chess/internal/archive"
	"github.com/liamiak1/hyper-fairy-chess/internal/protocol"
	"github.com/liamiak1/hyper-fairy-chess/internal/room"
)

var log = logging.MustGetLogger("server")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Deps wires the server's services.
type Deps struct {
	Directory *room.Directory
	Clock     room.Clock
	Archive   *archive.Archive // optional, backs /stats
}

// Server accepts websocket connections and routes their messages into
// rooms.
type Server struct {
	directory *room.Directory
	clock     room.Clock
	archive   *archive.Archive
}

// New builds a server around a room directory.
func New(deps Deps) *Server {
	return &Server{
		directory: deps.Directory,
		clock:     deps.Clock,
		archive:   deps.Archive,
	}
}

// Handler mounts the websocket endpoint and the operational routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", s.serveHealth)
	mux.HandleFunc("/stats", s.serveStats)
	return mux
}

func (s *Server) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

func (s *Server) serveStats(w http.ResponseWriter, _ *http.Request) {
	out := struct {
		Rooms    int                  `json:"rooms"`
		Archived *archive.ServerStats `json:"archived,omitempty"`
	}{Rooms: s.directory.Len()}

	if s.archive != nil {
		stats, err := s.archive.Stats()
		if err != nil {
			log.Errorf("stats read failed: %v", err)
			http.Error(w, "stats unavailable", http.StatusInternalServerError)
			return
		}
		out.Archived = stats
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warningf("upgrade failed: %v", err)
		return
	}
	c := newClient(conn)
	go c.writePump()
	s.readPump(c)
}

// readPump reads until the connection dies, then tells the room. A
// stale connection replaced by a reconnect does not count as a
// disconnect.
func (s *Server) readPump(c *client) {
	defer func() {
		close(c.done)
		c.conn.Close()
		if rm, rs, playerID := c.binding(); rm != nil {
			if rs.current(playerID) == c {
				rs.detach(playerID, c)
				rm.Post(room.DisconnectEvent(playerID))
			}
		}
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		s.dispatch(c, data)
	}
}

func (s *Server) dispatch(c *client, data []byte) {
	env, err := protocol.DecodeEnvelope(data)
	if err != nil {
		log.Warningf("malformed message from %s: %v", c.conn.RemoteAddr(), err)
		return
	}

	// Bound connections talk to their room, nothing else.
	if rm, _, playerID := c.binding(); rm != nil {
		rm.Post(room.MessageEvent(playerID, env.Type, data))
		return
	}

	switch env.Type {
	case protocol.TypeCreateRoom:
		s.handleCreate(c, data)
	case protocol.TypeJoinRoom:
		s.handleJoin(c, data)
	case protocol.TypeReconnect:
		s.handleReconnect(c, data)
	case protocol.TypePing:
		c.trySend(protocol.Pong{
			Envelope:   protocol.NewEnvelope(protocol.TypePong, s.clock.Now()),
			ServerTime: s.clock.Now().UnixMilli(),
		})
	default:
		s.sendError(c, protocol.RoomErrNotFound, "join a room first")
	}
}

func (s *Server) sendError(c *client, code, msg string) {
	c.trySend(protocol.RoomError{
		Envelope: protocol.NewEnvelope(protocol.TypeRoomError, s.clock.Now()),
		Code:     code,
		Message:  msg,
	})
}

func (s *Server) handleCreate(c *client, data []byte) {
	var msg protocol.CreateRoom
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(c, protocol.RoomErrInvalidCode, "malformed CREATE_ROOM")
		return
	}

	rs := newRoomSender()
	rm, p, err := s.directory.Create(msg.PlayerName, msg.Settings, rs)
	if err != nil {
		s.sendError(c, protocol.RoomErrInvalidCode, err.Error())
		return
	}

	rs.attach(p.ID, c)
	c.bind(rm, rs, p.ID)
	c.trySend(protocol.RoomCreated{
		Envelope: protocol.NewEnvelope(protocol.TypeRoomCreated, s.clock.Now()),
		RoomCode: rm.Code,
		PlayerID: p.ID,
		Role:     p.Color,
		Settings: rm.Settings(),
	})
}

func (s *Server) handleJoin(c *client, data []byte) {
	var msg protocol.JoinRoom
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(c, protocol.RoomErrInvalidCode, "malformed JOIN_ROOM")
		return
	}

	rm, err := s.directory.Lookup(msg.RoomCode)
	if err != nil {
		s.sendError(c, lookupErrCode(err), err.Error())
		return
	}
	rs, ok := rm.Sender().(*roomSender)
	if !ok {
		s.sendError(c, protocol.RoomErrNotFound, "room unavailable")
		return
	}

	// Bind before posting so the room's reply has somewhere to go.
	playerID := uuid.NewString()
	rs.attach(playerID, c)
	c.bind(rm, rs, playerID)
	rm.Post(room.JoinEvent(playerID, msg.PlayerName))
}

func (s *Server) handleReconnect(c *client, data []byte) {
	var msg protocol.Reconnect
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(c, protocol.RoomErrInvalidCode, "malformed RECONNECT")
		return
	}

	rm, err := s.directory.Lookup(msg.RoomCode)
	if err != nil {
		s.sendError(c, lookupErrCode(err), err.Error())
		return
	}
	rs, ok := rm.Sender().(*roomSender)
	if !ok {
		s.sendError(c, protocol.RoomErrNotFound, "room unavailable")
		return
	}

	rs.attach(msg.PlayerID, c)
	c.bind(rm, rs, msg.PlayerID)
	rm.Post(room.ReconnectEvent(msg.PlayerID))
}

func lookupErrCode(err error) string {
	if errors.Is(err, room.ErrInvalidCode) {
		return protocol.RoomErrInvalidCode
	}
	return protocol.RoomErrNotFound
}
