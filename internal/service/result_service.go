package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Aby-117/quiz-deploy/internal/constants"
	"github.com/Aby-117/quiz-deploy/internal/models"
	"github.com/Aby-117/quiz-deploy/internal/repository"
	"github.com/Aby-117/quiz-deploy/pkg/messaging"
)

// ResultService persists final room outcomes and publishes them to the
// results queue. Both paths are best-effort: a failure is logged and
// never blocks room teardown. Implements game.ResultSink.
type ResultService struct {
	repo     *repository.ResultRepository
	mqClient *messaging.RabbitMQClient // optional
}

func NewResultService(repo *repository.ResultRepository, mqClient *messaging.RabbitMQClient) *ResultService {
	return &ResultService{
		repo:     repo,
		mqClient: mqClient,
	}
}

func (s *ResultService) RoomFinished(result *models.GameResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.repo != nil {
		if err := s.repo.SaveResult(ctx, result); err != nil {
			log.Printf("Failed to persist results for room %s: %v", result.RoomID, err)
		}
	}

	if s.mqClient != nil {
		body, err := json.Marshal(result)
		if err != nil {
			log.Printf("Failed to marshal results for room %s: %v", result.RoomID, err)
			return
		}
		if err := s.mqClient.Publish(ctx, constants.ResultsQueue, body); err != nil {
			log.Printf("Failed to publish results for room %s: %v", result.RoomID, err)
		}
	}
}

func (s *ResultService) ListResultsByQuiz(ctx context.Context, quizID string) ([]*models.PlayerResult, error) {
	return s.repo.ListResultsByQuiz(ctx, quizID)
}
