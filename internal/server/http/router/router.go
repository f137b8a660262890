package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/quoteflow/internal/server/http/handlers"
	"github.com/polkiloo/quoteflow/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.QuoteFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxDecompressedBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	staffHandler := handlers.NewStaffHandler(facade)
	accountHandler := handlers.NewAccountHandler(facade)

	engine.GET("/healthz", handlers.Health(facade))

	api := engine.Group("/api")
	api.Use(middleware.AuthRequired(facade))

	api.POST("/orders", orderHandler.Create)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.Get)
	api.GET("/orders/:id/pre-invoice", orderHandler.PreInvoice)
	api.POST("/orders/:id/approve", orderHandler.Approve)
	api.POST("/orders/:id/reject", orderHandler.Reject)
	api.POST("/orders/:id/cancel", orderHandler.Cancel)

	api.GET("/profile", accountHandler.Profile)
	api.PUT("/profile/invoice-info", accountHandler.UpdateInvoiceInfo)
	api.GET("/wallet", accountHandler.Wallet)
	api.GET("/wallet/transactions", accountHandler.Transactions)

	dealer := api.Group("/dealer")
	dealer.Use(middleware.RequireDealer())
	dealer.GET("/commissions", accountHandler.Commissions)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireStaff())
	admin.GET("/orders", staffHandler.Queue)
	admin.POST("/orders/:id/pricing", staffHandler.SubmitPricing)
	admin.POST("/orders/:id/dealer", staffHandler.AssignDealer)
	admin.POST("/orders/:id/complete", staffHandler.Complete)
	admin.POST("/orders/:id/cancel", orderHandler.Cancel)
	admin.POST("/commissions/pay", staffHandler.PayCommissions)
	admin.POST("/customers", staffHandler.CreateCustomer)
	admin.POST("/customers/:id/token", staffHandler.IssueToken)
	admin.POST("/customers/:id/wallet/credit", staffHandler.CreditWallet)
	admin.POST("/customers/:id/wallet/debit", staffHandler.DebitWallet)

	return engine
}
