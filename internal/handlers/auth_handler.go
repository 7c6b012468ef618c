package handlers

import (
	"net/http"

	"github.com/Aby-117/quiz-deploy/internal/dto"
	"github.com/Aby-117/quiz-deploy/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	tokens *token.Manager
}

func NewAuthHandler(tokens *token.Manager) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// GuestToken issues a signed identity token for a display name. The
// embedded player id is what lets a dropped player rejoin as themselves.
func (h *AuthHandler) GuestToken(c *gin.Context) {
	var req dto.GuestTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation",
			Message: err.Error(),
		})
		return
	}

	playerID := uuid.New().String()
	signed, err := h.tokens.Issue(playerID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal",
			Message: "Failed to issue token",
		})
		return
	}

	c.JSON(http.StatusOK, dto.GuestTokenResponse{
		Token:    signed,
		PlayerID: playerID,
		Name:     req.Name,
	})
}
