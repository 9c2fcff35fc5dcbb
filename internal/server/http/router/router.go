package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/factra/internal/config"
	"github.com/polkiloo/factra/internal/server/http/handlers"
	"github.com/polkiloo/factra/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.FactoringFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CORS(cfg.AllowedOrigins))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	marketHandler := handlers.NewMarketplaceHandler(facade)
	portfolioHandler := handlers.NewPortfolioHandler(facade)
	invoiceHandler := handlers.NewInvoiceHandler(facade)
	syncHandler := handlers.NewSyncHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", syncHandler.Health)
	api.GET("/sync/status", syncHandler.Status)
	api.GET("/marketplace", marketHandler.List)
	api.GET("/marketplace/sectors", marketHandler.Sectors)

	viewer := api.Group("")
	viewer.Use(middleware.Viewer())
	viewer.GET("/portfolio", portfolioHandler.Summary)
	viewer.GET("/invoices/issued", portfolioHandler.Issued)
	viewer.GET("/invoices/funded", portfolioHandler.Funded)
	viewer.GET("/invoices/:id", invoiceHandler.Get)

	return engine
}
