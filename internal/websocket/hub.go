package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/Aby-117/quiz-deploy/internal/game"
)

type ClientMessage struct {
	Client  *Client
	Message Message
	Raw     []byte
}

// Hub owns the connection registry and routes messages between clients
// and the room engine. It implements game.Broadcaster.
type Hub struct {
	engine *game.Engine

	Register      chan *Client
	Unregister    chan *Client
	HandleMessage chan *ClientMessage

	mu      sync.RWMutex
	clients map[string]map[*Client]bool // room id -> clients
}

func NewHub(engine *game.Engine) *Hub {
	return &Hub{
		engine:        engine,
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		HandleMessage: make(chan *ClientMessage),
		clients:       make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			log.Printf("Client connected: player=%s name=%q", client.PlayerID, client.Name)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case clientMsg := <-h.HandleMessage:
			h.handleClientMessage(clientMsg)
		}
	}
}

// BroadcastToRoom delivers an event to every client in a room.
// Per-recipient failures are handled inside SendEvent; one slow client
// never aborts delivery to the rest.
func (h *Hub) BroadcastToRoom(roomID string, event game.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[roomID] {
		client.SendEvent(event)
	}
}

func (h *Hub) SendToPlayer(roomID, playerID string, event game.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[roomID] {
		if client.PlayerID == playerID {
			client.SendEvent(event)
		}
	}
}

func (h *Hub) handleClientMessage(clientMsg *ClientMessage) {
	client := clientMsg.Client
	msg := clientMsg.Message

	switch msg.Type {
	case MessageTypeJoin:
		h.handleJoin(client, msg.Payload)

	case MessageTypeStart:
		h.handleStart(client)

	case MessageTypeAnswer:
		h.handleAnswer(client, msg.Payload)

	case MessageTypeLeave:
		h.handleLeave(client)

	case MessageTypePing:
		client.SendMessage(MessageTypePong, nil)

	default:
		client.SendError(game.KindValidation, fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}

func (h *Hub) handleJoin(client *Client, payload any) {
	if client.RoomID != "" {
		client.SendError(game.KindValidation, "already in a room")
		return
	}

	var join JoinPayload
	if err := decodePayload(payload, &join); err != nil {
		client.SendError(game.KindValidation, "invalid join payload")
		return
	}

	ref := join.RoomID
	if ref == "" {
		ref = join.RoomCode
	}
	if ref == "" {
		client.SendError(game.KindValidation, "missing room id or code")
		return
	}
	if join.Name != "" {
		client.Name = join.Name
	}

	room, err := h.engine.GetRoom(ref)
	if err != nil {
		h.sendEngineError(client, err)
		return
	}

	// Register before joining so the joiner sees their own player_joined.
	h.addToRoom(room.ID, client)

	snapshot, err := room.Join(client.PlayerID, client.Name)
	if err != nil {
		h.removeFromRoom(room.ID, client)
		h.sendEngineError(client, err)
		return
	}

	client.RoomID = room.ID
	client.SendEvent(game.Event{Type: game.EventConnected, Payload: snapshot})

	log.Printf("Player %s (%q) joined room %s", client.PlayerID, client.Name, room.Code)
}

func (h *Hub) handleStart(client *Client) {
	room, ok := h.roomFor(client)
	if !ok {
		return
	}

	if err := room.Start(client.PlayerID); err != nil {
		h.sendEngineError(client, err)
	}
}

func (h *Hub) handleAnswer(client *Client, payload any) {
	room, ok := h.roomFor(client)
	if !ok {
		return
	}

	var answer AnswerPayload
	if err := decodePayload(payload, &answer); err != nil {
		client.SendError(game.KindValidation, "invalid answer payload")
		return
	}

	if err := room.SubmitAnswer(client.PlayerID, answer.QuestionIndex, answer.OptionIndex); err != nil {
		h.sendEngineError(client, err)
	}
}

func (h *Hub) handleLeave(client *Client) {
	room, ok := h.roomFor(client)
	if !ok {
		return
	}

	h.removeFromRoom(room.ID, client)
	client.RoomID = ""

	if err := room.Leave(client.PlayerID, false); err != nil {
		h.sendEngineError(client, err)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	roomID := client.RoomID
	if roomID != "" {
		h.removeFromRoom(roomID, client)

		if room, err := h.engine.GetRoom(roomID); err == nil {
			// Drop, not leave: the identity survives the grace period.
			room.Leave(client.PlayerID, true)
		}
	}

	close(client.Send)
	log.Printf("Client disconnected: player=%s", client.PlayerID)
}

func (h *Hub) roomFor(client *Client) (*game.Room, bool) {
	if client.RoomID == "" {
		client.SendError(game.KindValidation, "join a room first")
		return nil, false
	}

	room, err := h.engine.GetRoom(client.RoomID)
	if err != nil {
		h.sendEngineError(client, err)
		return nil, false
	}
	return room, true
}

func (h *Hub) addToRoom(roomID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[roomID] == nil {
		h.clients[roomID] = make(map[*Client]bool)
	}
	h.clients[roomID][client] = true
}

func (h *Hub) removeFromRoom(roomID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[roomID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, roomID)
		}
	}
}

func (h *Hub) sendEngineError(client *Client, err error) {
	log.Printf("Engine error for player %s: %v", client.PlayerID, err)
	client.SendError(game.KindOf(err), err.Error())
}

func decodePayload(payload any, dst any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
