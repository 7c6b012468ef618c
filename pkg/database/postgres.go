package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Aby-117/quiz-deploy/config"

	_ "github.com/lib/pq"
)

type PostgresClient struct {
	db     *sql.DB
	config *config.DBConfig
}

func NewPostgresClient(cfg *config.DBConfig) (*PostgresClient, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{
		db:     db,
		config: cfg,
	}, nil
}

func (c *PostgresClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *PostgresClient) GetDB() *sql.DB {
	return c.db
}

func (c *PostgresClient) InitSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS quizzes (
			id VARCHAR(255) PRIMARY KEY,
			owner_id VARCHAR(255) NOT NULL,
			title VARCHAR(500) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			is_public BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_quizzes_owner_id ON quizzes(owner_id);
		CREATE INDEX IF NOT EXISTS idx_quizzes_is_public ON quizzes(is_public);

		CREATE TABLE IF NOT EXISTS questions (
			id VARCHAR(255) PRIMARY KEY,
			quiz_id VARCHAR(255) NOT NULL REFERENCES quizzes(id) ON DELETE CASCADE,
			text TEXT NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			options JSONB NOT NULL DEFAULT '[]',
			time_limit_sec INTEGER NOT NULL DEFAULT 30,
			order_index INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_questions_quiz_id ON questions(quiz_id);

		CREATE TABLE IF NOT EXISTS game_results (
			id VARCHAR(255) PRIMARY KEY,
			room_id VARCHAR(255) NOT NULL,
			room_code VARCHAR(16) NOT NULL,
			quiz_id VARCHAR(255) NOT NULL,
			player_id VARCHAR(255) NOT NULL,
			player_name VARCHAR(255) NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0,
			rank INTEGER NOT NULL DEFAULT 0,
			total_time_ms BIGINT NOT NULL DEFAULT 0,
			finished_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_game_results_room_id ON game_results(room_id);
		CREATE INDEX IF NOT EXISTS idx_game_results_quiz_id ON game_results(quiz_id);
	`

	if _, err := c.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}
