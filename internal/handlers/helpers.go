package handlers

import (
	"net/http"

	"github.com/Aby-117/quiz-deploy/internal/dto"
	"github.com/Aby-117/quiz-deploy/internal/game"

	"github.com/gin-gonic/gin"
)

// abortWithEngineError maps the engine error taxonomy onto HTTP statuses.
func abortWithEngineError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch game.KindOf(err) {
	case game.KindNotFound:
		status = http.StatusNotFound
	case game.KindForbidden:
		status = http.StatusForbidden
	case game.KindRoomClosed:
		status = http.StatusGone
	case game.KindValidation:
		status = http.StatusBadRequest
	case game.KindStaleSubmission, game.KindDuplicateSubmission:
		status = http.StatusConflict
	}

	c.JSON(status, dto.ErrorResponse{
		Error:   string(game.KindOf(err)),
		Message: err.Error(),
	})
}

func playerIdentity(c *gin.Context) (id, name string) {
	return c.GetString("player_id"), c.GetString("player_name")
}
