package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/soundbridge/soundbridge-backend/middleware"
	"github.com/soundbridge/soundbridge-backend/services"
	"github.com/soundbridge/soundbridge-backend/utils"
)

// WalletHandler handles wallet HTTP requests
type WalletHandler struct {
	walletService *services.WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *services.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetWallets handles GET /wallet
func (h *WalletHandler) GetWallets(c *gin.Context) {
	wallets, err := h.walletService.GetWallets(middleware.UserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"wallets": wallets})
}

// GetTransactions handles GET /wallet/transactions
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	transactions, err := h.walletService.GetTransactions(middleware.UserID(c), c.Query("currency"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"transactions": transactions})
}
