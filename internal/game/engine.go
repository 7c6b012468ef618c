package game

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Aby-117/quiz-deploy/internal/models"

	"github.com/google/uuid"
)

// QuizStore loads immutable quiz definitions from the authoring store.
type QuizStore interface {
	GetQuiz(ctx context.Context, id string) (*models.Quiz, error)
}

// ResultSink receives the final result of a finished room. Calls are
// made off the room's lock and must not block indefinitely.
type ResultSink interface {
	RoomFinished(result *models.GameResult)
}

// Engine is the process-wide room registry. It starts empty; rooms are
// removed on teardown. Rooms serialize their own state, the engine only
// guards the registry maps.
type Engine struct {
	cfg     Config
	quizzes QuizStore
	sink    ResultSink

	mu          sync.RWMutex
	broadcaster Broadcaster
	rooms       map[string]*Room
	codes       map[string]string
}

func NewEngine(cfg Config, quizzes QuizStore, sink ResultSink) *Engine {
	return &Engine{
		cfg:     cfg,
		quizzes: quizzes,
		sink:    sink,
		rooms:   make(map[string]*Room),
		codes:   make(map[string]string),
	}
}

// SetBroadcaster wires the connection layer in after construction; the
// hub needs the engine and the engine needs the hub.
func (e *Engine) SetBroadcaster(b Broadcaster) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.broadcaster = b
}

// CreateRoom allocates a Lobby room from a quiz definition and returns it.
func (e *Engine) CreateRoom(ctx context.Context, quizID, hostID string) (*Room, error) {
	quiz, err := e.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	if err := ValidateQuiz(quiz); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	code, err := e.uniqueCodeLocked()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate room code: %w", err)
	}

	onFinished := func(result *models.GameResult) {
		if e.sink != nil {
			e.sink.RoomFinished(result)
		}
	}

	room := newRoom(uuid.New().String(), code, hostID, quiz, e.cfg, e.broadcaster, onFinished, e.removeRoom)
	e.rooms[room.ID] = room
	e.codes[room.Code] = room.ID

	log.Printf("Room %s (%s) created for quiz %q by %s", room.Code, room.ID, quiz.Title, hostID)
	return room, nil
}

// GetRoom resolves a room by id or by human-enterable code.
func (e *Engine) GetRoom(idOrCode string) (*Room, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if room, ok := e.rooms[idOrCode]; ok {
		return room, nil
	}
	if id, ok := e.codes[strings.ToUpper(idOrCode)]; ok {
		return e.rooms[id], nil
	}
	return nil, ErrRoomNotFound
}

func (e *Engine) RoomCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.rooms)
}

func (e *Engine) removeRoom(roomID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if room, ok := e.rooms[roomID]; ok {
		delete(e.codes, room.Code)
		delete(e.rooms, roomID)
	}
}

func (e *Engine) uniqueCodeLocked() (string, error) {
	const maxAttempts = 10
	for i := 0; i < maxAttempts; i++ {
		code, err := GenerateCode()
		if err != nil {
			return "", err
		}
		if _, taken := e.codes[code]; !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("exhausted code generation attempts")
}

// ValidateQuiz enforces the invariants a room depends on: at least one
// question, 2+ options each, exactly one marked correct, positive limit.
func ValidateQuiz(quiz *models.Quiz) error {
	if len(quiz.Questions) == 0 {
		return NewValidationError("quiz has no questions")
	}

	for i, q := range quiz.Questions {
		if len(q.Options) < 2 {
			return NewValidationError("question %d has fewer than 2 options", i+1)
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.Correct {
				correct++
			}
		}
		if correct != 1 {
			return NewValidationError("question %d must have exactly one correct option, has %d", i+1, correct)
		}
		if q.TimeLimitSec <= 0 {
			return NewValidationError("question %d has no time limit", i+1)
		}
	}

	return nil
}
