package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/liamiak1/hyper-fairy-chess/internal/room"
)

const (
	sendBuffer = 32

	// Liveness below the protocol: the write pump pings, the peer's
	// pong extends the read deadline.
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// client is one websocket connection. It starts unbound; creating,
// joining or reconnecting to a room binds it to a player there.
type client struct {
	conn *websocket.Conn
	send chan any
	done chan struct{}

	mu     sync.Mutex
	room   *room.Room
	sender *roomSender
	player string
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan any, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *client) bind(r *room.Room, rs *roomSender, playerID string) {
	c.mu.Lock()
	c.room = r
	c.sender = rs
	c.player = playerID
	c.mu.Unlock()
}

func (c *client) unbind() {
	c.mu.Lock()
	c.room = nil
	c.sender = nil
	c.player = ""
	c.mu.Unlock()
}

func (c *client) binding() (*room.Room, *roomSender, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room, c.sender, c.player
}

// trySend queues a message for the write pump, dropping it if the
// client cannot keep up. The room never blocks on a slow socket.
func (c *client) trySend(msg any) {
	select {
	case c.send <- msg:
	default:
		log.Warningf("dropping message to slow client %s", c.conn.RemoteAddr())
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// roomSender fans room output out to the connections of its members.
// One exists per room; the room goroutine calls it, and the transport
// attaches and detaches connections as they come and go.
type roomSender struct {
	mu      sync.RWMutex
	members map[string]*client
}

func newRoomSender() *roomSender {
	return &roomSender{members: make(map[string]*client)}
}

func (rs *roomSender) attach(playerID string, c *client) {
	rs.mu.Lock()
	rs.members[playerID] = c
	rs.mu.Unlock()
}

// current returns the connection presently attached for a player.
func (rs *roomSender) current(playerID string) *client {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.members[playerID]
}

// detach removes the player's connection, but only if it is still the
// given one. A reconnected player's fresh connection stays.
func (rs *roomSender) detach(playerID string, c *client) {
	rs.mu.Lock()
	if rs.members[playerID] == c {
		delete(rs.members, playerID)
	}
	rs.mu.Unlock()
}

func (rs *roomSender) Send(playerID string, msg any) {
	rs.mu.RLock()
	c := rs.members[playerID]
	rs.mu.RUnlock()
	if c != nil {
		c.trySend(msg)
	}
}

func (rs *roomSender) Broadcast(msg any) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	for _, c := range rs.members {
		c.trySend(msg)
	}
}

// Release drops a member and returns their connection to the lobby,
// free to create or join another room.
func (rs *roomSender) Release(playerID string) {
	rs.mu.Lock()
	c := rs.members[playerID]
	delete(rs.members, playerID)
	rs.mu.Unlock()
	if c != nil {
		c.unbind()
	}
}
