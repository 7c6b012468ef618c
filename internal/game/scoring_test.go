package game

import (
	"testing"
	"time"

	"github.com/Aby-117/quiz-deploy/internal/models"
)

func TestScorePoints(t *testing.T) {
	tests := []struct {
		name    string
		base    int
		latency time.Duration
		limit   time.Duration
		want    int
	}{
		{"instant answer gets full base", 1000, 0, 30 * time.Second, 1000},
		{"one third elapsed", 1000, 10 * time.Second, 30 * time.Second, 666},
		{"two thirds elapsed", 1000, 20 * time.Second, 30 * time.Second, 333},
		{"at the limit scores zero", 1000, 30 * time.Second, 30 * time.Second, 0},
		{"past the limit clamps to zero", 1000, 45 * time.Second, 30 * time.Second, 0},
		{"half elapsed", 500, 15 * time.Second, 30 * time.Second, 250},
		{"no limit returns base", 1000, 10 * time.Second, 0, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorePoints(tt.base, tt.latency, tt.limit)
			if got != tt.want {
				t.Errorf("scorePoints(%d, %v, %v) = %d, want %d", tt.base, tt.latency, tt.limit, got, tt.want)
			}
		})
	}
}

func TestRankPlayers_OrderAndTieBreak(t *testing.T) {
	players := []*Player{
		{ID: "a", Name: "Alice", Score: 500, TotalLatency: 9 * time.Second},
		{ID: "b", Name: "Bob", Score: 900, TotalLatency: 12 * time.Second},
		{ID: "c", Name: "Cleo", Score: 500, TotalLatency: 4 * time.Second},
		{ID: "d", Name: "Dana", Score: 0, TotalLatency: 0},
	}

	entries := rankPlayers(players)

	wantOrder := []string{"b", "c", "a", "d"}
	if len(entries) != len(wantOrder) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantOrder))
	}
	for i, want := range wantOrder {
		if entries[i].PlayerID != want {
			t.Errorf("rank %d: got player %s, want %s", i+1, entries[i].PlayerID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("entry %d: rank = %d, want %d", i, entries[i].Rank, i+1)
		}
	}
}

func TestRankPlayers_Empty(t *testing.T) {
	entries := rankPlayers(nil)
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestQuestionCorrectOption(t *testing.T) {
	q := models.Question{Options: []models.Option{
		{Text: "wrong"},
		{Text: "right", Correct: true},
		{Text: "also wrong"},
	}}
	if got := q.CorrectOption(); got != 1 {
		t.Errorf("CorrectOption() = %d, want 1", got)
	}

	none := models.Question{Options: []models.Option{{Text: "a"}, {Text: "b"}}}
	if got := none.CorrectOption(); got != -1 {
		t.Errorf("CorrectOption() without correct flag = %d, want -1", got)
	}
}
