package game

import (
	"sort"
	"time"

	"github.com/Aby-117/quiz-deploy/internal/models"
)

// scorePoints computes the points for a correct answer: the base decays
// linearly with the elapsed fraction of the time limit, clamped to >= 0.
func scorePoints(base int, latency, limit time.Duration) int {
	if limit <= 0 {
		return base
	}

	frac := float64(latency) / float64(limit)
	if frac > 1.0 {
		frac = 1.0
	}
	if frac < 0 {
		frac = 0
	}

	return int(float64(base) * (1.0 - frac))
}

// rankPlayers orders players by score descending, breaking ties by lower
// cumulative answer latency, and assigns 1-based ranks.
func rankPlayers(players []*Player) []models.LeaderboardEntry {
	sorted := make([]*Player, len(players))
	copy(sorted, players)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].TotalLatency < sorted[j].TotalLatency
	})

	entries := make([]models.LeaderboardEntry, len(sorted))
	for i, p := range sorted {
		entries[i] = models.LeaderboardEntry{
			Rank:        i + 1,
			PlayerID:    p.ID,
			Name:        p.Name,
			Score:       p.Score,
			TotalTimeMs: p.TotalLatency.Milliseconds(),
		}
	}
	return entries
}
