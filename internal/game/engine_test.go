package game

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Aby-117/quiz-deploy/internal/models"
)

type fakeQuizStore struct {
	quizzes map[string]*models.Quiz
}

func (s *fakeQuizStore) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	if quiz, ok := s.quizzes[id]; ok {
		return quiz, nil
	}
	return nil, ErrQuizNotFound
}

func newTestEngine(quizzes ...*models.Quiz) *Engine {
	store := &fakeQuizStore{quizzes: make(map[string]*models.Quiz)}
	for _, q := range quizzes {
		store.quizzes[q.ID] = q
	}
	return NewEngine(testConfig(), store, nil)
}

func TestEngine_CreateRoom(t *testing.T) {
	engine := newTestEngine(testQuiz(2))

	room, err := engine.CreateRoom(context.Background(), "quiz-1", "host")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}

	if room.State() != StateLobby {
		t.Errorf("new room state = %s, want lobby", room.State())
	}
	if len(room.Code) != 6 {
		t.Errorf("room code %q, want 6 characters", room.Code)
	}
	if engine.RoomCount() != 1 {
		t.Errorf("RoomCount() = %d, want 1", engine.RoomCount())
	}
}

func TestEngine_CreateRoomUnknownQuiz(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.CreateRoom(context.Background(), "nope", "host")
	if !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("got %v, want ErrQuizNotFound", err)
	}
}

func TestEngine_GetRoomByIDAndCode(t *testing.T) {
	engine := newTestEngine(testQuiz(1))
	room, err := engine.CreateRoom(context.Background(), "quiz-1", "host")
	if err != nil {
		t.Fatal(err)
	}

	byID, err := engine.GetRoom(room.ID)
	if err != nil || byID != room {
		t.Errorf("GetRoom by id failed: %v", err)
	}

	byCode, err := engine.GetRoom(strings.ToLower(room.Code))
	if err != nil || byCode != room {
		t.Errorf("GetRoom by lowercased code failed: %v", err)
	}

	if _, err := engine.GetRoom("missing"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("unknown room: got %v, want ErrRoomNotFound", err)
	}
}

func TestEngine_RoomRemovedAfterTeardown(t *testing.T) {
	engine := newTestEngine(testQuiz(1))
	room, err := engine.CreateRoom(context.Background(), "quiz-1", "host")
	if err != nil {
		t.Fatal(err)
	}

	room.Join("p1", "Player")
	room.Leave("p1", false)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if engine.RoomCount() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("room still registered after teardown grace period")
}

func TestValidateQuiz(t *testing.T) {
	base := func() *models.Quiz { return testQuiz(1) }

	tests := []struct {
		name    string
		mutate  func(q *models.Quiz)
		wantErr bool
	}{
		{"valid", func(q *models.Quiz) {}, false},
		{"no questions", func(q *models.Quiz) { q.Questions = nil }, true},
		{"single option", func(q *models.Quiz) {
			q.Questions[0].Options = q.Questions[0].Options[1:]
		}, true},
		{"no correct option", func(q *models.Quiz) {
			q.Questions[0].Options[1].Correct = false
		}, true},
		{"two correct options", func(q *models.Quiz) {
			q.Questions[0].Options[0].Correct = true
		}, true},
		{"zero time limit", func(q *models.Quiz) {
			q.Questions[0].TimeLimitSec = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := base()
			tt.mutate(quiz)
			err := ValidateQuiz(quiz)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateQuiz() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && KindOf(err) != KindValidation {
				t.Errorf("error kind = %s, want validation", KindOf(err))
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(ErrForbidden) != KindForbidden {
		t.Errorf("KindOf(ErrForbidden) = %s", KindOf(ErrForbidden))
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Errorf("KindOf(plain error) = %s", KindOf(errors.New("plain")))
	}
}
