package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/Aby-117/quiz-deploy/internal/game"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // 64 KB
)

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	PlayerID string
	Name     string
	RoomID   string // set once the join message succeeds
}

func NewClient(hub *Hub, conn *websocket.Conn, playerID, name string) *Client {
	return &Client{
		Hub:      hub,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		PlayerID: playerID,
		Name:     name,
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Failed to unmarshal message from %s: %v", c.PlayerID, err)
			c.SendError(game.KindValidation, "invalid message format")
			continue
		}

		c.Hub.HandleMessage <- &ClientMessage{
			Client:  c,
			Message: msg,
			Raw:     message,
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEvent queues an engine event for delivery. Never blocks: a client
// that cannot keep up is dropped, not waited on.
func (c *Client) SendEvent(ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Failed to marshal event %s: %v", ev.Type, err)
		return
	}
	c.send(data)
}

func (c *Client) SendMessage(msgType MessageType, payload any) {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		log.Printf("Failed to marshal message %s: %v", msgType, err)
		return
	}
	c.send(data)
}

func (c *Client) send(data []byte) {
	select {
	case c.Send <- data:
	default:
		log.Printf("Send buffer full for player %s, dropping message", c.PlayerID)
	}
}

func (c *Client) SendError(kind game.Kind, message string) {
	c.SendEvent(game.Event{
		Type:    game.EventError,
		Payload: game.ErrorPayload{Kind: kind, Message: message},
	})
}
