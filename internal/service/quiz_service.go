package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Aby-117/quiz-deploy/internal/constants"
	"github.com/Aby-117/quiz-deploy/internal/game"
	"github.com/Aby-117/quiz-deploy/internal/models"
	"github.com/Aby-117/quiz-deploy/internal/repository"
	"github.com/Aby-117/quiz-deploy/pkg/cache"
	"github.com/Aby-117/quiz-deploy/pkg/storage"

	"github.com/google/uuid"
)

const quizCacheTTL = 24 * time.Hour

// QuizService owns quiz authoring: validation, image persistence and the
// read path the room engine loads quiz definitions through.
type QuizService struct {
	repo        *repository.QuizRepository
	redisClient *cache.RedisClient // optional
	s3Client    *storage.S3Client  // optional
}

func NewQuizService(repo *repository.QuizRepository, redisClient *cache.RedisClient, s3Client *storage.S3Client) *QuizService {
	return &QuizService{
		repo:        repo,
		redisClient: redisClient,
		s3Client:    s3Client,
	}
}

// CreateQuiz validates and persists a quiz definition. Inline data-URL
// images are moved to object storage when it is available.
func (s *QuizService) CreateQuiz(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	if err := game.ValidateQuiz(quiz); err != nil {
		return nil, err
	}

	var err error
	quiz.ImageURL, err = s.storeImage(ctx, quiz.ImageURL)
	if err != nil {
		return nil, err
	}
	for i := range quiz.Questions {
		quiz.Questions[i].ImageURL, err = s.storeImage(ctx, quiz.Questions[i].ImageURL)
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.CreateQuiz(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.cacheQuiz(ctx, quiz)
	return quiz, nil
}

// GetQuiz loads a quiz, read-through cached. Implements game.QuizStore.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	if quiz := s.cachedQuiz(ctx, quizID); quiz != nil {
		return quiz, nil
	}

	quiz, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	s.cacheQuiz(ctx, quiz)
	return quiz, nil
}

func (s *QuizService) ListPublicQuizzes(ctx context.Context) ([]*models.Quiz, error) {
	return s.repo.ListPublicQuizzes(ctx)
}

func (s *QuizService) DeleteQuiz(ctx context.Context, quizID, ownerID string) error {
	if err := s.repo.DeleteQuiz(ctx, quizID, ownerID); err != nil {
		return err
	}

	if s.redisClient != nil {
		key := fmt.Sprintf(constants.QuizCacheKeyFmt, quizID)
		if err := s.redisClient.Delete(ctx, key); err != nil {
			log.Printf("Failed to invalidate quiz cache for %s: %v", quizID, err)
		}
	}

	return nil
}

// storeImage uploads a data-URL image and returns the object URL. Plain
// URLs and empty values pass through; without object storage the inline
// payload is kept as-is.
func (s *QuizService) storeImage(ctx context.Context, image string) (string, error) {
	if image == "" || !strings.HasPrefix(image, "data:") {
		return image, nil
	}
	if s.s3Client == nil {
		return image, nil
	}

	contentType, data, err := storage.ParseDataURL(image)
	if err != nil {
		return "", game.NewValidationError("invalid image: %v", err)
	}

	objectName := uuid.New().String() + storage.ExtensionForContentType(contentType)
	url, err := s.s3Client.UploadImage(ctx, objectName, data, contentType)
	if err != nil {
		log.Printf("Failed to upload image, keeping inline payload: %v", err)
		return image, nil
	}
	return url, nil
}

func (s *QuizService) cacheQuiz(ctx context.Context, quiz *models.Quiz) {
	if s.redisClient == nil {
		return
	}

	data, err := json.Marshal(quiz)
	if err != nil {
		log.Printf("Failed to marshal quiz %s for cache: %v", quiz.ID, err)
		return
	}

	key := fmt.Sprintf(constants.QuizCacheKeyFmt, quiz.ID)
	if err := s.redisClient.Set(ctx, key, string(data), quizCacheTTL); err != nil {
		log.Printf("Failed to cache quiz %s: %v", quiz.ID, err)
	}
}

func (s *QuizService) cachedQuiz(ctx context.Context, quizID string) *models.Quiz {
	if s.redisClient == nil {
		return nil
	}

	key := fmt.Sprintf(constants.QuizCacheKeyFmt, quizID)
	data, err := s.redisClient.Get(ctx, key)
	if err != nil {
		return nil
	}

	var quiz models.Quiz
	if err := json.Unmarshal([]byte(data), &quiz); err != nil {
		log.Printf("Failed to parse cached quiz %s: %v", quizID, err)
		return nil
	}
	return &quiz
}
