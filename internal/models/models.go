package models

import "time"

type Quiz struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url,omitempty"`
	IsPublic    bool       `json:"is_public"`
	Questions   []Question `json:"questions"`
	// QuestionCount is populated on list queries that skip question bodies.
	QuestionCount int       `json:"question_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	ImageURL     string   `json:"image_url,omitempty"`
	Options      []Option `json:"options"`
	TimeLimitSec int      `json:"time_limit_sec"`
	OrderIndex   int      `json:"order_index"`
}

type Option struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// CorrectOption returns the index of the option marked correct, or -1.
func (q *Question) CorrectOption() int {
	for i, opt := range q.Options {
		if opt.Correct {
			return i
		}
	}
	return -1
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	TotalTimeMs int64  `json:"total_time_ms"`
}

// GameResult is the final outcome of one room, persisted and published
// when the room reaches its terminal state.
type GameResult struct {
	RoomID     string         `json:"room_id"`
	RoomCode   string         `json:"room_code"`
	QuizID     string         `json:"quiz_id"`
	QuizTitle  string         `json:"quiz_title"`
	HostID     string         `json:"host_id"`
	FinishedAt time.Time      `json:"finished_at"`
	Entries    []PlayerResult `json:"entries"`
}

type PlayerResult struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	CorrectCount int    `json:"correct_count"`
	Rank         int    `json:"rank"`
	TotalTimeMs  int64  `json:"total_time_ms"`
}
