package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/multiwallet-ledger/internal/api/handler"
	"github.com/multiwallet-ledger/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	walletHandler *handler.WalletHandler,
	operationHandler *handler.OperationHandler,
	transferHandler *handler.TransferHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Wallet management and money movement
		wallets := v1.Group("/wallets")
		{
			wallets.POST("", walletHandler.Create)
			wallets.GET("", walletHandler.List)
			wallets.GET("/:id", walletHandler.GetByID)
			wallets.GET("/:id/balance", walletHandler.GetBalance)
			wallets.PUT("/:id", walletHandler.Update)
			wallets.GET("/:id/transactions", walletHandler.GetTransactions)
			wallets.POST("/:id/deposit", operationHandler.Deposit)
			wallets.POST("/:id/withdraw", operationHandler.Withdraw)
		}

		// Wallet-to-wallet transfers
		transfers := v1.Group("/transfers")
		{
			transfers.POST("", transferHandler.Create)
			transfers.GET("/:id", transferHandler.GetByID)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
