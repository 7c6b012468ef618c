package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Aby-117/quiz-deploy/internal/models"
)

// recorder captures broadcast events in order for assertions.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) BroadcastToRoom(roomID string, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) SendToPlayer(roomID, playerID string, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]EventType, len(r.events))
	for i, ev := range r.events {
		types[i] = ev.Type
	}
	return types
}

func (r *recorder) last(eventType EventType) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == eventType {
			return r.events[i], true
		}
	}
	return Event{}, false
}

func testQuiz(questions int) *models.Quiz {
	quiz := &models.Quiz{
		ID:    "quiz-1",
		Title: "Test Quiz",
	}
	for i := 0; i < questions; i++ {
		quiz.Questions = append(quiz.Questions, models.Question{
			ID:   "q" + string(rune('1'+i)),
			Text: "question",
			Options: []models.Option{
				{Text: "wrong"},
				{Text: "right", Correct: true},
			},
			TimeLimitSec: 30,
		})
	}
	return quiz
}

func testConfig() Config {
	return Config{
		BasePoints:    1000,
		RevealDelay:   20 * time.Millisecond,
		TeardownGrace: 50 * time.Millisecond,
	}
}

func newTestRoom(t *testing.T, quiz *models.Quiz, cfg Config, rec *recorder, onEmpty func(string)) *Room {
	t.Helper()
	return newRoom("room-1", "ABCDEF", "host", quiz, cfg, rec, nil, onEmpty)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestRoom_StartNotHost(t *testing.T) {
	rec := &recorder{}
	room := newTestRoom(t, testQuiz(1), testConfig(), rec, nil)

	if _, err := room.Join("host", "Host"); err != nil {
		t.Fatal(err)
	}
	if _, err := room.Join("p1", "Player"); err != nil {
		t.Fatal(err)
	}

	err := room.Start("p1")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Start by non-host: got %v, want ErrForbidden", err)
	}
	if room.State() != StateLobby {
		t.Errorf("room left Lobby after rejected start: state = %s", room.State())
	}
}

func TestRoom_JoinFinishedRoomFails(t *testing.T) {
	rec := &recorder{}
	room := newTestRoom(t, testQuiz(1), testConfig(), rec, nil)

	room.Join("host", "Host")
	room.Start("host")
	room.SubmitAnswer("host", 0, 1)

	waitFor(t, time.Second, func() bool { return room.State() == StateFinished })

	if _, err := room.Join("late", "Latecomer"); !errors.Is(err, ErrRoomClosed) {
		t.Errorf("join after finish: got %v, want ErrRoomClosed", err)
	}
}

func TestRoom_DuplicateSubmission(t *testing.T) {
	rec := &recorder{}
	room := newTestRoom(t, testQuiz(1), testConfig(), rec, nil)

	room.Join("host", "Host")
	room.Join("p1", "Player")
	room.Start("host")

	if err := room.SubmitAnswer("p1", 0, 0); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if err := room.SubmitAnswer("p1", 0, 1); !errors.Is(err, ErrDuplicateSubmission) {
		t.Errorf("second submission: got %v, want ErrDuplicateSubmission", err)
	}
}

func TestRoom_StaleSubmission(t *testing.T) {
	rec := &recorder{}
	room := newTestRoom(t, testQuiz(2), testConfig(), rec, nil)

	room.Join("host", "Host")
	room.Join("p1", "Player")
	room.Start("host")

	if err := room.SubmitAnswer("p1", 1, 0); !errors.Is(err, ErrStaleSubmission) {
		t.Errorf("submission for wrong index: got %v, want ErrStaleSubmission", err)
	}

	// Advance to reveal, then submit for the revealed question.
	room.SubmitAnswer("host", 0, 1)
	room.SubmitAnswer("p1", 0, 1)
	waitFor(t, time.Second, func() bool { return room.State() == StateQuestionReveal })

	if err := room.SubmitAnswer("p1", 0, 0); !errors.Is(err, ErrStaleSubmission) {
		t.Errorf("submission during reveal: got %v, want ErrStaleSubmission", err)
	}
}

func TestRoom_SubmitBeforeStart(t *testing.T) {
	rec := &recorder{}
	room := newTestRoom(t, testQuiz(1), testConfig(), rec, nil)
	room.Join("p1", "Player")

	if err := room.SubmitAnswer("p1", 0, 0); !errors.Is(err, ErrStaleSubmission) {
		t.Errorf("submission in lobby: got %v, want ErrStaleSubmission", err)
	}
}

func TestRoom_StateSequence(t *testing.T) {
	rec := &recorder{}
	room := newTestRoom(t, testQuiz(2), testConfig(), rec, nil)

	room.Join("host", "Host")
	room.Start("host")

	room.SubmitAnswer("host", 0, 1)
	waitFor(t, time.Second, func() bool { return room.State() == StateQuestionActive && room.Snapshot("host").QuestionIndex == 1 })

	room.SubmitAnswer("host", 1, 0)
	waitFor(t, time.Second, func() bool { return room.State() == StateFinished })

	var got []EventType
	for _, typ := range rec.types() {
		switch typ {
		case EventQuizStarted, EventQuestionStarted, EventQuestionRevealed, EventQuizFinished:
			got = append(got, typ)
		}
	}

	want := []EventType{
		EventQuizStarted,
		EventQuestionStarted, EventQuestionRevealed,
		EventQuestionStarted, EventQuestionRevealed,
		EventQuizFinished,
	}
	if len(got) != len(want) {
		t.Fatalf("event sequence = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event sequence = %v, want %v", got, want)
		}
	}
}

func TestRoom_Scenario_TwoPlayersOneQuestion(t *testing.T) {
	rec := &recorder{}
	room := newTestRoom(t, testQuiz(1), testConfig(), rec, nil)

	room.Join("a", "Alice")
	room.Join("b", "Bob")
	room.HostID = "a"

	if err := room.Start("a"); err != nil {
		t.Fatal(err)
	}

	if err := room.SubmitAnswer("a", 0, 1); err != nil { // correct
		t.Fatal(err)
	}
	if err := room.SubmitAnswer("b", 0, 0); err != nil { // incorrect
		t.Fatal(err)
	}

	waitFor(t, time.Second, func() bool { return room.State() == StateFinished })

	ev, ok := rec.last(EventQuizFinished)
	if !ok {
		t.Fatal("no quiz_finished event broadcast")
	}
	payload := ev.Payload.(QuizFinishedPayload)
	if len(payload.Leaderboard) != 2 {
		t.Fatalf("leaderboard has %d entries, want 2", len(payload.Leaderboard))
	}

	first, second := payload.Leaderboard[0], payload.Leaderboard[1]
	if first.PlayerID != "a" || second.PlayerID != "b" {
		t.Errorf("leaderboard order = [%s, %s], want [a, b]", first.PlayerID, second.PlayerID)
	}
	if first.Score <= 0 {
		t.Errorf("correct answer scored %d, want > 0", first.Score)
	}
	if second.Score != 0 {
		t.Errorf("incorrect answer scored %d, want 0", second.Score)
	}
}

func TestRoom_RevealIncludesCorrectOptionAndResults(t *testing.T) {
	rec := &recorder{}
	room := newTestRoom(t, testQuiz(1), testConfig(), rec, nil)

	room.Join("host", "Host")
	room.Start("host")
	room.SubmitAnswer("host", 0, 1)

	waitFor(t, time.Second, func() bool {
		_, ok := rec.last(EventQuestionRevealed)
		return ok
	})

	ev, _ := rec.last(EventQuestionRevealed)
	payload := ev.Payload.(QuestionRevealedPayload)
	if payload.CorrectOption != 1 {
		t.Errorf("CorrectOption = %d, want 1", payload.CorrectOption)
	}
	if len(payload.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(payload.Results))
	}
	if !payload.Results[0].Correct || payload.Results[0].OptionIndex != 1 {
		t.Errorf("result = %+v, want correct answer on option 1", payload.Results[0])
	}
}

func TestRoom_QuestionViewHidesCorrectFlag(t *testing.T) {
	rec := &recorder{}
	room := newTestRoom(t, testQuiz(1), testConfig(), rec, nil)

	room.Join("host", "Host")
	room.Start("host")

	ev, ok := rec.last(EventQuestionStarted)
	if !ok {
		t.Fatal("no question_started event broadcast")
	}
	payload := ev.Payload.(QuestionStartedPayload)
	if len(payload.Question.Options) != 2 {
		t.Fatalf("got %d options, want 2", len(payload.Question.Options))
	}
	// Options are plain strings: nothing to leak.
	if payload.Question.Options[1] != "right" {
		t.Errorf("option text = %q, want %q", payload.Question.Options[1], "right")
	}
	if payload.TimeLimitMs != 30_000 {
		t.Errorf("TimeLimitMs = %d, want 30000", payload.TimeLimitMs)
	}
}

func TestRoom_RejoinKeepsScore(t *testing.T) {
	rec := &recorder{}
	room := newTestRoom(t, testQuiz(2), testConfig(), rec, nil)

	room.Join("host", "Host")
	room.Join("p1", "Player")
	room.Start("host")

	room.SubmitAnswer("p1", 0, 1)

	if err := room.Leave("p1", true); err != nil {
		t.Fatal(err)
	}

	snap, err := room.Join("p1", "Player")
	if err != nil {
		t.Fatalf("rejoin failed: %v", err)
	}

	var me *PlayerInfo
	for i := range snap.Players {
		if snap.Players[i].PlayerID == "p1" {
			me = &snap.Players[i]
		}
	}
	if me == nil {
		t.Fatal("rejoined player missing from snapshot")
	}
	if me.Score <= 0 {
		t.Errorf("score lost on rejoin: %d", me.Score)
	}
	if !me.Connected {
		t.Error("rejoined player not marked connected")
	}
}

func TestRoom_TeardownAfterGrace(t *testing.T) {
	rec := &recorder{}
	torndown := make(chan string, 1)
	room := newTestRoom(t, testQuiz(1), testConfig(), rec, func(id string) { torndown <- id })

	room.Join("p1", "Player")
	room.Leave("p1", false)

	select {
	case id := <-torndown:
		if id != "room-1" {
			t.Errorf("teardown for room %s, want room-1", id)
		}
	case <-time.After(time.Second):
		t.Fatal("room not torn down after grace period")
	}
}

func TestRoom_RejoinCancelsTeardown(t *testing.T) {
	rec := &recorder{}
	torndown := make(chan string, 1)
	room := newTestRoom(t, testQuiz(1), testConfig(), rec, func(id string) { torndown <- id })

	room.Join("p1", "Player")
	room.Leave("p1", true)
	room.Join("p1", "Player")

	select {
	case <-torndown:
		t.Fatal("room torn down despite rejoin within grace period")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestRoom_DepartingPlayerDoesNotStallQuestion(t *testing.T) {
	rec := &recorder{}
	room := newTestRoom(t, testQuiz(1), testConfig(), rec, nil)

	room.Join("host", "Host")
	room.Join("p1", "Player")
	room.Start("host")

	room.SubmitAnswer("host", 0, 1)
	if room.State() != StateQuestionActive {
		t.Fatalf("state = %s before p1 left, want question_active", room.State())
	}

	room.Leave("p1", false)

	waitFor(t, time.Second, func() bool {
		s := room.State()
		return s == StateQuestionReveal || s == StateFinished
	})
}
