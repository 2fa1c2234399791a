package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/soundbridge/soundbridge-backend/middleware"
	"github.com/soundbridge/soundbridge-backend/models"
	"github.com/soundbridge/soundbridge-backend/services"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// GigHandler handles gig completion HTTP requests
type GigHandler struct {
	completionService *services.GigCompletionService
}

// NewGigHandler creates a new gig handler
func NewGigHandler(completionService *services.GigCompletionService) *GigHandler {
	return &GigHandler{completionService: completionService}
}

// CompleteGig handles POST /gigs/:id/complete
func (h *GigHandler) CompleteGig(c *gin.Context) {
	released, err := h.completionService.CompleteGig(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, models.CompleteGigResponse{
		Success: true,
		Data:    *released,
	})
}
