package game

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Aby-117/quiz-deploy/internal/models"
)

type State string

const (
	StateLobby          State = "lobby"
	StateQuestionActive State = "question_active"
	StateQuestionReveal State = "question_reveal"
	StateFinished       State = "finished"
)

type Answer struct {
	OptionIndex int
	Latency     time.Duration
	Correct     bool
	Points      int
	ReceivedAt  time.Time
}

type Player struct {
	ID           string
	Name         string
	Score        int
	TotalLatency time.Duration
	Connected    bool
	JoinedAt     time.Time
	Answers      map[int]*Answer
}

type Config struct {
	BasePoints    int
	RevealDelay   time.Duration
	TeardownGrace time.Duration
}

// Room is the authoritative state machine for one live quiz session.
// All mutation, including timer callbacks, is serialized on mu.
type Room struct {
	ID        string
	Code      string
	HostID    string
	Quiz      *models.Quiz
	CreatedAt time.Time

	cfg         Config
	broadcaster Broadcaster
	onFinished  func(result *models.GameResult)
	onEmpty     func(roomID string)

	mu            sync.Mutex
	state         State
	current       int
	questionStart time.Time
	players       map[string]*Player
	questionTimer *time.Timer
	revealTimer   *time.Timer
	teardownTimer *time.Timer
}

func newRoom(id, code, hostID string, quiz *models.Quiz, cfg Config, b Broadcaster, onFinished func(*models.GameResult), onEmpty func(string)) *Room {
	if b == nil {
		b = nopBroadcaster{}
	}
	return &Room{
		ID:          id,
		Code:        code,
		HostID:      hostID,
		Quiz:        quiz,
		CreatedAt:   time.Now(),
		cfg:         cfg,
		broadcaster: b,
		onFinished:  onFinished,
		onEmpty:     onEmpty,
		state:       StateLobby,
		current:     -1,
		players:     make(map[string]*Player),
	}
}

func (r *Room) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Join adds a player, or resumes the identity of a player that dropped
// within the teardown grace period. Any join disarms pending teardown.
func (r *Room) Join(playerID, name string) (*RoomSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateFinished {
		return nil, ErrRoomClosed
	}

	r.stopTeardownLocked()

	rejoined := false
	p, ok := r.players[playerID]
	if ok {
		p.Connected = true
		if name != "" {
			p.Name = name
		}
		rejoined = true
	} else {
		p = &Player{
			ID:        playerID,
			Name:      name,
			Connected: true,
			JoinedAt:  time.Now(),
			Answers:   make(map[int]*Answer),
		}
		r.players[playerID] = p
	}

	r.broadcaster.BroadcastToRoom(r.ID, Event{
		Type: EventPlayerJoined,
		Payload: PlayerJoinedPayload{
			Player:      r.playerInfoLocked(p),
			PlayerCount: len(r.players),
			Rejoined:    rejoined,
		},
	})

	return r.snapshotLocked(playerID), nil
}

// Start transitions Lobby -> QuestionActive for question 0. Host only.
func (r *Room) Start(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.HostID {
		return ErrForbidden
	}
	if r.state == StateFinished {
		return ErrRoomClosed
	}
	if r.state != StateLobby {
		return NewValidationError("room already started")
	}

	r.broadcaster.BroadcastToRoom(r.ID, Event{Type: EventQuizStarted})
	r.startQuestionLocked(0)
	return nil
}

// SubmitAnswer records a write-once answer for the current question.
func (r *Room) SubmitAnswer(playerID string, questionIndex, optionIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateFinished {
		return ErrRoomClosed
	}
	if r.state != StateQuestionActive || questionIndex != r.current {
		return ErrStaleSubmission
	}

	p, ok := r.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	if _, answered := p.Answers[questionIndex]; answered {
		return ErrDuplicateSubmission
	}

	question := r.Quiz.Questions[r.current]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return NewValidationError("option index %d out of range", optionIndex)
	}

	latency := time.Since(r.questionStart)
	correct := optionIndex == question.CorrectOption()

	points := 0
	if correct {
		limit := time.Duration(question.TimeLimitSec) * time.Second
		points = scorePoints(r.cfg.BasePoints, latency, limit)
	}

	p.Answers[questionIndex] = &Answer{
		OptionIndex: optionIndex,
		Latency:     latency,
		Correct:     correct,
		Points:      points,
		ReceivedAt:  time.Now(),
	}
	p.Score += points
	p.TotalLatency += latency

	r.broadcaster.SendToPlayer(r.ID, playerID, Event{
		Type: EventAnswerAccepted,
		Payload: AnswerAcceptedPayload{
			QuestionIndex: questionIndex,
			LatencyMs:     latency.Milliseconds(),
		},
	})

	if r.allConnectedAnsweredLocked() {
		r.stopQuestionTimerLocked()
		r.revealLocked()
	}

	return nil
}

// Leave removes a player. A connection drop marks the player
// disconnected instead, so the identity survives for rejoin.
func (r *Room) Leave(playerID string, disconnected bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		if disconnected {
			return nil
		}
		return ErrPlayerNotFound
	}

	if disconnected {
		p.Connected = false
	} else {
		delete(r.players, playerID)
	}

	r.broadcaster.BroadcastToRoom(r.ID, Event{
		Type: EventPlayerLeft,
		Payload: PlayerLeftPayload{
			PlayerID:     playerID,
			Name:         p.Name,
			PlayerCount:  len(r.players),
			Disconnected: disconnected,
		},
	})

	// A departing player must not stall the question for everyone else.
	if r.state == StateQuestionActive && r.connectedCountLocked() > 0 && r.allConnectedAnsweredLocked() {
		r.stopQuestionTimerLocked()
		r.revealLocked()
	}

	if r.connectedCountLocked() == 0 {
		r.armTeardownLocked()
	}

	return nil
}

// Snapshot returns the current room state as seen by one player.
func (r *Room) Snapshot(playerID string) *RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked(playerID)
}

func (r *Room) startQuestionLocked(index int) {
	r.state = StateQuestionActive
	r.current = index
	r.questionStart = time.Now()

	question := r.Quiz.Questions[index]
	limit := time.Duration(question.TimeLimitSec) * time.Second

	r.broadcaster.BroadcastToRoom(r.ID, Event{
		Type: EventQuestionStarted,
		Payload: QuestionStartedPayload{
			Question:       questionView(&question),
			QuestionIndex:  index,
			TotalQuestions: len(r.Quiz.Questions),
			TimeLimitMs:    limit.Milliseconds(),
			ServerTime:     time.Now().UnixMilli(),
		},
	})

	r.stopQuestionTimerLocked()
	r.questionTimer = time.AfterFunc(limit, func() {
		r.handleQuestionTimeout(index)
	})
}

func (r *Room) handleQuestionTimeout(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stale timer: the question already advanced via early submission.
	if r.state != StateQuestionActive || r.current != index {
		return
	}
	r.revealLocked()
}

// revealLocked transitions QuestionActive -> QuestionReveal, broadcasts
// per-player results plus the leaderboard, and schedules the next step.
func (r *Room) revealLocked() {
	r.state = StateQuestionReveal
	index := r.current
	question := r.Quiz.Questions[index]

	results := make([]PlayerQuestionResult, 0, len(r.players))
	for _, p := range r.players {
		result := PlayerQuestionResult{
			PlayerID:    p.ID,
			Name:        p.Name,
			OptionIndex: -1,
		}
		if a, ok := p.Answers[index]; ok {
			result.OptionIndex = a.OptionIndex
			result.Correct = a.Correct
			result.Points = a.Points
			result.LatencyMs = a.Latency.Milliseconds()
		}
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	r.broadcaster.BroadcastToRoom(r.ID, Event{
		Type: EventQuestionRevealed,
		Payload: QuestionRevealedPayload{
			QuestionIndex: index,
			CorrectOption: question.CorrectOption(),
			Results:       results,
			Leaderboard:   r.leaderboardLocked(),
		},
	})

	r.revealTimer = time.AfterFunc(r.cfg.RevealDelay, func() {
		r.advanceAfterReveal(index)
	})
}

func (r *Room) advanceAfterReveal(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateQuestionReveal || r.current != index {
		return
	}

	if index+1 < len(r.Quiz.Questions) {
		r.startQuestionLocked(index + 1)
		return
	}
	r.finishLocked()
}

func (r *Room) finishLocked() {
	r.state = StateFinished
	r.stopQuestionTimerLocked()

	leaderboard := r.leaderboardLocked()
	r.broadcaster.BroadcastToRoom(r.ID, Event{
		Type:    EventQuizFinished,
		Payload: QuizFinishedPayload{Leaderboard: leaderboard},
	})

	if r.onFinished != nil {
		result := r.buildResultLocked(leaderboard)
		go r.onFinished(result)
	}

	log.Printf("Room %s (%s) finished: %d players", r.Code, r.ID, len(r.players))

	// Let clients fetch the final state before the room goes away.
	r.armTeardownLocked()
}

func (r *Room) buildResultLocked(leaderboard []models.LeaderboardEntry) *models.GameResult {
	entries := make([]models.PlayerResult, len(leaderboard))
	for i, e := range leaderboard {
		correct := 0
		if p, ok := r.players[e.PlayerID]; ok {
			for _, a := range p.Answers {
				if a.Correct {
					correct++
				}
			}
		}
		entries[i] = models.PlayerResult{
			PlayerID:     e.PlayerID,
			Name:         e.Name,
			Score:        e.Score,
			CorrectCount: correct,
			Rank:         e.Rank,
			TotalTimeMs:  e.TotalTimeMs,
		}
	}

	return &models.GameResult{
		RoomID:     r.ID,
		RoomCode:   r.Code,
		QuizID:     r.Quiz.ID,
		QuizTitle:  r.Quiz.Title,
		HostID:     r.HostID,
		FinishedAt: time.Now(),
		Entries:    entries,
	}
}

func (r *Room) armTeardownLocked() {
	if r.teardownTimer != nil {
		r.teardownTimer.Stop()
	}
	r.teardownTimer = time.AfterFunc(r.cfg.TeardownGrace, r.teardown)
}

func (r *Room) teardown() {
	r.mu.Lock()

	// A rejoin within the grace period keeps the room alive.
	if r.state != StateFinished && r.connectedCountLocked() > 0 {
		r.mu.Unlock()
		return
	}

	r.stopQuestionTimerLocked()
	if r.revealTimer != nil {
		r.revealTimer.Stop()
		r.revealTimer = nil
	}
	r.mu.Unlock()

	if r.onEmpty != nil {
		r.onEmpty(r.ID)
	}
	log.Printf("Room %s (%s) torn down", r.Code, r.ID)
}

func (r *Room) stopQuestionTimerLocked() {
	if r.questionTimer != nil {
		r.questionTimer.Stop()
		r.questionTimer = nil
	}
}

func (r *Room) stopTeardownLocked() {
	if r.teardownTimer != nil {
		r.teardownTimer.Stop()
		r.teardownTimer = nil
	}
}

func (r *Room) connectedCountLocked() int {
	n := 0
	for _, p := range r.players {
		if p.Connected {
			n++
		}
	}
	return n
}

func (r *Room) allConnectedAnsweredLocked() bool {
	answered := false
	for _, p := range r.players {
		if !p.Connected {
			continue
		}
		if _, ok := p.Answers[r.current]; !ok {
			return false
		}
		answered = true
	}
	return answered
}

func (r *Room) leaderboardLocked() []models.LeaderboardEntry {
	players := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, p)
	}
	return rankPlayers(players)
}

func (r *Room) playerInfoLocked(p *Player) PlayerInfo {
	return PlayerInfo{
		PlayerID:  p.ID,
		Name:      p.Name,
		Score:     p.Score,
		Connected: p.Connected,
		IsHost:    p.ID == r.HostID,
	}
}

func (r *Room) snapshotLocked(playerID string) *RoomSnapshot {
	players := make([]PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, r.playerInfoLocked(p))
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})

	snap := &RoomSnapshot{
		RoomID:         r.ID,
		RoomCode:       r.Code,
		QuizTitle:      r.Quiz.Title,
		State:          r.state,
		QuestionIndex:  r.current,
		TotalQuestions: len(r.Quiz.Questions),
		Players:        players,
		IsHost:         playerID == r.HostID,
	}

	if r.state == StateQuestionActive {
		question := r.Quiz.Questions[r.current]
		view := questionView(&question)
		snap.Question = &view

		limit := time.Duration(question.TimeLimitSec) * time.Second
		remaining := limit - time.Since(r.questionStart)
		if remaining < 0 {
			remaining = 0
		}
		snap.RemainingMs = remaining.Milliseconds()
	}

	return snap
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastToRoom(string, Event) {}

func (nopBroadcaster) SendToPlayer(string, string, Event) {}

func questionView(q *models.Question) QuestionView {
	options := make([]string, len(q.Options))
	for i, opt := range q.Options {
		options[i] = opt.Text
	}
	return QuestionView{
		Text:         q.Text,
		ImageURL:     q.ImageURL,
		Options:      options,
		TimeLimitSec: q.TimeLimitSec,
	}
}
