package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundbridge/soundbridge-backend/config"
	"github.com/soundbridge/soundbridge-backend/gateway"
	"github.com/soundbridge/soundbridge-backend/handlers"
	"github.com/soundbridge/soundbridge-backend/middleware"
	"github.com/soundbridge/soundbridge-backend/mq"
	"github.com/soundbridge/soundbridge-backend/repository"
	"github.com/soundbridge/soundbridge-backend/services"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// SetupRoutes wires repositories, services and handlers and registers all API
// routes
func SetupRoutes(router *gin.Engine, cfg config.App, gw gateway.PaymentGateway, pub *mq.Publisher) {
	db := repository.GetDB()

	bookingRepo := repository.NewBookingRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	connectRepo := repository.NewConnectRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	creatorRepo := repository.NewCreatorRepository(db)

	// A nil *mq.Publisher must not reach the notifier as a non-nil interface
	var jobPub services.JobPublisher
	if pub != nil {
		jobPub = pub
	}
	notifier := services.NewNotificationService(notificationRepo, jobPub, cfg.AppBaseURL)

	bookingHandler := handlers.NewBookingHandler(
		services.NewBookingPaymentService(bookingRepo, ledgerRepo, connectRepo, gw, notifier))
	gigHandler := handlers.NewGigHandler(
		services.NewGigCompletionService(projectRepo, walletRepo, connectRepo, gw, notifier))
	walletHandler := handlers.NewWalletHandler(
		services.NewWalletService(walletRepo))
	creatorHandler := handlers.NewCreatorHandler(
		services.NewRankingService(creatorRepo))
	exportHandler := handlers.NewExportHandler(
		services.NewExportService(ledgerRepo))

	router.GET("/health", func(c *gin.Context) {
		if err := repository.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		utils.HandleSuccess(c, gin.H{"status": "ok"})
	})

	// Public discovery endpoints
	router.GET("/creators/hot", creatorHandler.GetHotCreators)

	// Authenticated endpoints
	auth := router.Group("/", middleware.RequireAuth(cfg.JWTSecret))
	{
		auth.POST("/bookings/:id/payment-intent", bookingHandler.CreatePaymentIntent)
		auth.POST("/bookings/:id/confirm-payment", bookingHandler.ConfirmPayment)
		auth.GET("/bookings/:id", bookingHandler.GetBooking)
		auth.GET("/bookings/:id/ledger", bookingHandler.GetBookingLedger)

		auth.POST("/gigs/:id/complete", gigHandler.CompleteGig)

		auth.GET("/wallet", walletHandler.GetWallets)
		auth.GET("/wallet/transactions", walletHandler.GetTransactions)

		auth.GET("/admin/ledger/export", exportHandler.ExportLedger)
	}
}
