package handlers

import (
	"net/http"
	"time"

	"github.com/Aby-117/quiz-deploy/internal/dto"
	"github.com/Aby-117/quiz-deploy/internal/models"
	"github.com/Aby-117/quiz-deploy/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService   *service.QuizService
	resultService *service.ResultService
}

func NewQuizHandler(quizService *service.QuizService, resultService *service.ResultService) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		resultService: resultService,
	}
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation",
			Message: err.Error(),
		})
		return
	}

	ownerID, _ := playerIdentity(c)
	quiz := quizFromRequest(&req, ownerID)

	created, err := h.quizService.CreateQuiz(c.Request.Context(), quiz)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateQuizResponse{
		QuizID:  created.ID,
		Message: "Quiz created",
	})
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.quizService.GetQuiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListPublicQuizzes(c.Request.Context())
	if err != nil {
		abortWithEngineError(c, err)
		return
	}

	resp := dto.ListQuizzesResponse{Quizzes: []dto.QuizHeaderDTO{}}
	for _, quiz := range quizzes {
		resp.Quizzes = append(resp.Quizzes, dto.QuizHeaderDTO{
			ID:            quiz.ID,
			OwnerID:       quiz.OwnerID,
			Title:         quiz.Title,
			Description:   quiz.Description,
			ImageURL:      quiz.ImageURL,
			IsPublic:      quiz.IsPublic,
			QuestionCount: quiz.QuestionCount,
			CreatedAt:     quiz.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	ownerID, _ := playerIdentity(c)

	if err := h.quizService.DeleteQuiz(c.Request.Context(), c.Param("id"), ownerID); err != nil {
		abortWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *QuizHandler) GetQuizResults(c *gin.Context) {
	results, err := h.resultService.ListResultsByQuiz(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func quizFromRequest(req *dto.CreateQuizRequest, ownerID string) *models.Quiz {
	quiz := &models.Quiz{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.Image,
		IsPublic:    req.IsPublic,
	}

	for _, q := range req.Questions {
		question := models.Question{
			Text:         q.Text,
			ImageURL:     q.Image,
			TimeLimitSec: q.TimeLimitSec,
		}
		for _, opt := range q.Options {
			question.Options = append(question.Options, models.Option{
				Text:    opt.Text,
				Correct: opt.Correct,
			})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	return quiz
}
