package chat

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	logx "github.com/supplyline-web/server/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The gateway fronts browser clients on other origins in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket connection for the duration of a chat view visit.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Message
	sender string
}

// ServeWS upgrades the request and runs the connection's pumps. The sender
// name comes from the caller's session. The connection lives exactly as
// long as the view: leaving the page closes the socket, which unregisters
// the client.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request, sender string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.Error().Err(err).Msg("websocket upgrade failed")
		return err
	}

	c := &Client{hub: hub, conn: conn, send: make(chan Message, 16), sender: sender}
	hub.register <- c

	go c.writePump()
	go c.readPump()
	return nil
}

// readPump reads outgoing messages from the browser and hands them to the
// hub. It owns the unregister on any exit path.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logx.Warn().Err(err).Str("sender", c.sender).Msg("chat connection dropped")
			}
			return
		}
		if msg.Text == "" {
			continue
		}
		// The session, not the client payload, says who is speaking.
		msg.Sender = c.sender
		c.hub.Publish(msg)
	}
}

// writePump pushes hub messages to the browser and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub dropped us.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
