package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/soundbridge/soundbridge-backend/middleware"
	"github.com/soundbridge/soundbridge-backend/models"
	"github.com/soundbridge/soundbridge-backend/services"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// BookingHandler handles booking payment HTTP requests
type BookingHandler struct {
	paymentService *services.BookingPaymentService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(paymentService *services.BookingPaymentService) *BookingHandler {
	return &BookingHandler{paymentService: paymentService}
}

// CreatePaymentIntent handles POST /bookings/:id/payment-intent
func (h *BookingHandler) CreatePaymentIntent(c *gin.Context) {
	response, err := h.paymentService.IssuePaymentIntent(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, response)
}

// ConfirmPayment handles POST /bookings/:id/confirm-payment
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	var request models.ConfirmPaymentRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	response, err := h.paymentService.ConfirmPayment(c.Param("id"), request.PaymentIntentID, middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, response)
}

// GetBooking handles GET /bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.paymentService.GetBooking(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, booking)
}

// GetBookingLedger handles GET /bookings/:id/ledger
func (h *BookingHandler) GetBookingLedger(c *gin.Context) {
	entries, err := h.paymentService.GetLedger(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if entries == nil {
		entries = []*models.LedgerEntry{}
	}

	utils.HandleSuccess(c, entries)
}
