package handlers

import (
	"net/http"

	"github.com/Aby-117/quiz-deploy/internal/dto"
	"github.com/Aby-117/quiz-deploy/internal/game"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	engine *game.Engine
}

func NewRoomHandler(engine *game.Engine) *RoomHandler {
	return &RoomHandler{engine: engine}
}

// CreateRoom allocates a Lobby room for a quiz; the caller becomes host.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation",
			Message: err.Error(),
		})
		return
	}

	hostID, _ := playerIdentity(c)

	room, err := h.engine.CreateRoom(c.Request.Context(), req.QuizID, hostID)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateRoomResponse{
		RoomID:   room.ID,
		RoomCode: room.Code,
	})
}

// GetRoom resolves a room code (or id) to its current lobby state.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.engine.GetRoom(c.Param("code"))
	if err != nil {
		abortWithEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RoomInfoResponse{
		RoomID:      room.ID,
		RoomCode:    room.Code,
		State:       string(room.State()),
		PlayerCount: room.PlayerCount(),
	})
}
