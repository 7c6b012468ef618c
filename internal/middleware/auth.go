package middleware

import (
	"net/http"
	"strings"

	"github.com/Aby-117/quiz-deploy/internal/dto"
	"github.com/Aby-117/quiz-deploy/pkg/token"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the guest identity token and exposes the player
// identity to downstream handlers.
func JWTAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   http.StatusText(http.StatusUnauthorized),
				Message: "Authorization header is required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   http.StatusText(http.StatusUnauthorized),
				Message: "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   http.StatusText(http.StatusUnauthorized),
				Message: "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("player_id", claims.PlayerID)
		c.Set("player_name", claims.Name)

		c.Next()
	}
}
