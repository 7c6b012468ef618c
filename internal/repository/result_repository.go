package repository

import (
	"context"
	"database/sql"

	"github.com/Aby-117/quiz-deploy/internal/models"

	"github.com/google/uuid"
)

type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// SaveResult writes one row per player for a finished room.
func (r *ResultRepository) SaveResult(ctx context.Context, result *models.GameResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO game_results (id, room_id, room_code, quiz_id, player_id, player_name, score, correct_count, rank, total_time_ms, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, entry := range result.Entries {
		_, err := tx.ExecContext(ctx, query,
			uuid.New().String(),
			result.RoomID,
			result.RoomCode,
			result.QuizID,
			entry.PlayerID,
			entry.Name,
			entry.Score,
			entry.CorrectCount,
			entry.Rank,
			entry.TotalTimeMs,
			result.FinishedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListResultsByQuiz returns past room outcomes for a quiz, newest first.
func (r *ResultRepository) ListResultsByQuiz(ctx context.Context, quizID string) ([]*models.PlayerResult, error) {
	query := `
		SELECT player_id, player_name, score, correct_count, rank, total_time_ms
		FROM game_results
		WHERE quiz_id = $1
		ORDER BY finished_at DESC, rank ASC
	`
	rows, err := r.db.QueryContext(ctx, query, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.PlayerResult
	for rows.Next() {
		entry := &models.PlayerResult{}
		err := rows.Scan(
			&entry.PlayerID,
			&entry.Name,
			&entry.Score,
			&entry.CorrectCount,
			&entry.Rank,
			&entry.TotalTimeMs,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, entry)
	}

	return results, rows.Err()
}
