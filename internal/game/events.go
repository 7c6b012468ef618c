package game

import "github.com/Aby-117/quiz-deploy/internal/models"

type EventType string

const (
	EventConnected        EventType = "connected"
	EventPlayerJoined     EventType = "player_joined"
	EventPlayerLeft       EventType = "player_left"
	EventQuizStarted      EventType = "quiz_started"
	EventQuestionStarted  EventType = "question_started"
	EventAnswerAccepted   EventType = "answer_accepted"
	EventQuestionRevealed EventType = "question_revealed"
	EventQuizFinished     EventType = "quiz_finished"
	EventError            EventType = "error"
)

type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// Broadcaster delivers events to connected clients. Delivery is
// fire-and-forget: implementations must never block the caller.
type Broadcaster interface {
	BroadcastToRoom(roomID string, event Event)
	SendToPlayer(roomID, playerID string, event Event)
}

// QuestionView is the shape of a question sent to players while it is
// active. Correct flags never leave the server before the reveal.
type QuestionView struct {
	Text         string   `json:"text"`
	ImageURL     string   `json:"image_url,omitempty"`
	Options      []string `json:"options"`
	TimeLimitSec int      `json:"time_limit_sec"`
}

type PlayerInfo struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Connected bool   `json:"connected"`
	IsHost    bool   `json:"is_host"`
}

type PlayerJoinedPayload struct {
	Player      PlayerInfo `json:"player"`
	PlayerCount int        `json:"player_count"`
	Rejoined    bool       `json:"rejoined,omitempty"`
}

type PlayerLeftPayload struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	PlayerCount  int    `json:"player_count"`
	Disconnected bool   `json:"disconnected,omitempty"`
}

type QuestionStartedPayload struct {
	Question       QuestionView `json:"question"`
	QuestionIndex  int          `json:"question_index"`
	TotalQuestions int          `json:"total_questions"`
	TimeLimitMs    int64        `json:"time_limit_ms"`
	ServerTime     int64        `json:"server_time"`
}

type AnswerAcceptedPayload struct {
	QuestionIndex int   `json:"question_index"`
	LatencyMs     int64 `json:"latency_ms"`
}

// PlayerQuestionResult is one player's outcome for a single question,
// included in the reveal broadcast.
type PlayerQuestionResult struct {
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
	OptionIndex int    `json:"option_index"` // -1 when the player did not answer
	Correct     bool   `json:"correct"`
	Points      int    `json:"points"`
	LatencyMs   int64  `json:"latency_ms"`
}

type QuestionRevealedPayload struct {
	QuestionIndex int                       `json:"question_index"`
	CorrectOption int                       `json:"correct_option"`
	Results       []PlayerQuestionResult    `json:"results"`
	Leaderboard   []models.LeaderboardEntry `json:"leaderboard"`
}

type QuizFinishedPayload struct {
	Leaderboard []models.LeaderboardEntry `json:"leaderboard"`
}

type ErrorPayload struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// RoomSnapshot is sent to a player on successful join so late joiners
// and reconnecting players can render the current room state.
type RoomSnapshot struct {
	RoomID         string        `json:"room_id"`
	RoomCode       string        `json:"room_code"`
	QuizTitle      string        `json:"quiz_title"`
	State          State         `json:"state"`
	QuestionIndex  int           `json:"question_index"`
	TotalQuestions int           `json:"total_questions"`
	Players        []PlayerInfo  `json:"players"`
	IsHost         bool          `json:"is_host"`
	Question       *QuestionView `json:"question,omitempty"`
	RemainingMs    int64         `json:"remaining_ms,omitempty"`
}
