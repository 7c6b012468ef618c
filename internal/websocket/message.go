package websocket

type MessageType string

const (
	// Client -> Server
	MessageTypeJoin   MessageType = "join"
	MessageTypeStart  MessageType = "start_quiz"
	MessageTypeAnswer MessageType = "submit_answer"
	MessageTypeLeave  MessageType = "leave"
	MessageTypePing   MessageType = "ping"

	// Server -> Client (payloads are the engine's event payloads)
	MessageTypePong MessageType = "pong"
)

type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload,omitempty"`
}

type JoinPayload struct {
	RoomID   string `json:"room_id,omitempty"`
	RoomCode string `json:"room_code,omitempty"`
	Name     string `json:"name,omitempty"`
}

type AnswerPayload struct {
	QuestionIndex int `json:"question_index"`
	OptionIndex   int `json:"option_index"`
}
