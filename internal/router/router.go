package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pdfcompress/docs"
	"pdfcompress/internal/config"
	"pdfcompress/internal/handler"
	"pdfcompress/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	logger log.Logger,
	compressH *handler.CompressHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if !cfg.Server.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	api.Use(middleware.FunctionKey(cfg.Auth.FunctionKey))
	api.POST("/compress_pdf", compressH.CompressPDF)
	api.POST("/compress_pdf_blob", compressH.CompressPDFBlob)

	return r
}
