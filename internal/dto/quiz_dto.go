package dto

type OptionInput struct {
	Text    string `json:"text" binding:"required"`
	Correct bool   `json:"correct"`
}

type QuestionInput struct {
	Text         string        `json:"text" binding:"required"`
	Image        string        `json:"image"` // data URL or plain URL
	Options      []OptionInput `json:"options" binding:"required,min=2"`
	TimeLimitSec int           `json:"time_limit_sec"`
}

type CreateQuizRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Image       string          `json:"image"` // data URL or plain URL
	IsPublic    bool            `json:"isPublic"`
	Questions   []QuestionInput `json:"questions" binding:"required,min=1"`
}

type CreateQuizResponse struct {
	QuizID  string `json:"quiz_id"`
	Message string `json:"message"`
}

type QuizHeaderDTO struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url,omitempty"`
	IsPublic      bool   `json:"is_public"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     string `json:"created_at"`
}

type ListQuizzesResponse struct {
	Quizzes []QuizHeaderDTO `json:"quizzes"`
}

type CreateRoomRequest struct {
	QuizID string `json:"quiz_id" binding:"required"`
}

type CreateRoomResponse struct {
	RoomID   string `json:"room_id"`
	RoomCode string `json:"room_code"`
}

type RoomInfoResponse struct {
	RoomID      string `json:"room_id"`
	RoomCode    string `json:"room_code"`
	State       string `json:"state"`
	PlayerCount int    `json:"player_count"`
}

type GuestTokenRequest struct {
	Name string `json:"name" binding:"required"`
}

type GuestTokenResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
