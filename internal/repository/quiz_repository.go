package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Aby-117/quiz-deploy/internal/game"
	"github.com/Aby-117/quiz-deploy/internal/models"

	"github.com/google/uuid"
)

type QuizRepository struct {
	db *sql.DB
}

func NewQuizRepository(db *sql.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	quiz.ID = uuid.New().String()
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	queryQuiz := `
		INSERT INTO quizzes (id, owner_id, title, description, image_url, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, queryQuiz,
		quiz.ID,
		quiz.OwnerID,
		quiz.Title,
		quiz.Description,
		quiz.ImageURL,
		quiz.IsPublic,
		quiz.CreatedAt,
		quiz.UpdatedAt,
	)
	if err != nil {
		return err
	}

	queryQuestion := `
		INSERT INTO questions (id, quiz_id, text, image_url, options, time_limit_sec, order_index)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		q.ID = uuid.New().String()
		q.OrderIndex = i

		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("failed to marshal options: %w", err)
		}

		_, err = tx.ExecContext(ctx, queryQuestion,
			q.ID,
			quiz.ID,
			q.Text,
			q.ImageURL,
			string(optionsJSON),
			q.TimeLimitSec,
			q.OrderIndex,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *QuizRepository) GetQuizByID(ctx context.Context, quizID string) (*models.Quiz, error) {
	queryQuiz := `
		SELECT id, owner_id, title, description, image_url, is_public, created_at, updated_at
		FROM quizzes
		WHERE id = $1
	`
	quiz := &models.Quiz{}
	err := r.db.QueryRowContext(ctx, queryQuiz, quizID).Scan(
		&quiz.ID,
		&quiz.OwnerID,
		&quiz.Title,
		&quiz.Description,
		&quiz.ImageURL,
		&quiz.IsPublic,
		&quiz.CreatedAt,
		&quiz.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, game.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	queryQuestions := `
		SELECT id, text, image_url, options, time_limit_sec, order_index
		FROM questions
		WHERE quiz_id = $1
		ORDER BY order_index ASC
	`
	rows, err := r.db.QueryContext(ctx, queryQuestions, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var q models.Question
		var optionsJSON string
		err := rows.Scan(
			&q.ID,
			&q.Text,
			&q.ImageURL,
			&optionsJSON,
			&q.TimeLimitSec,
			&q.OrderIndex,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
			return nil, fmt.Errorf("failed to parse options for question %s: %w", q.ID, err)
		}
		quiz.Questions = append(quiz.Questions, q)
	}

	return quiz, rows.Err()
}

// ListPublicQuizzes returns public quiz headers, newest first, without
// question bodies.
func (r *QuizRepository) ListPublicQuizzes(ctx context.Context) ([]*models.Quiz, error) {
	query := `
		SELECT q.id, q.owner_id, q.title, q.description, q.image_url, q.is_public, q.created_at, q.updated_at,
			(SELECT COUNT(*) FROM questions WHERE quiz_id = q.id) AS question_count
		FROM quizzes q
		WHERE q.is_public = true
		ORDER BY q.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []*models.Quiz
	for rows.Next() {
		quiz := &models.Quiz{}
		err := rows.Scan(
			&quiz.ID,
			&quiz.OwnerID,
			&quiz.Title,
			&quiz.Description,
			&quiz.ImageURL,
			&quiz.IsPublic,
			&quiz.CreatedAt,
			&quiz.UpdatedAt,
			&quiz.QuestionCount,
		)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}

	return quizzes, rows.Err()
}

func (r *QuizRepository) DeleteQuiz(ctx context.Context, quizID, ownerID string) error {
	query := `DELETE FROM quizzes WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, quizID, ownerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return game.ErrQuizNotFound
	}

	return nil
}
