package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soundbridge/soundbridge-backend/services"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// CreatorHandler handles creator discovery HTTP requests
type CreatorHandler struct {
	rankingService *services.RankingService
}

// NewCreatorHandler creates a new creator handler
func NewCreatorHandler(rankingService *services.RankingService) *CreatorHandler {
	return &CreatorHandler{rankingService: rankingService}
}

// GetHotCreators handles GET /creators/hot
func (h *CreatorHandler) GetHotCreators(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.HandleError(c, utils.NewBadRequestError("Invalid limit"))
			return
		}
		limit = parsed
	}

	creators, err := h.rankingService.GetHotCreators(limit)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"creators": creators})
}
