package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/posmatch/go-position-scorer/services"
)

const maxRequestBodySize = 10 << 20 // 10 MB

// API holds dependencies for API handlers, primarily the index manager.
type API struct {
	engine services.IndexManager
	logger *slog.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.IndexManager, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		engine: engine,
		logger: logger,
	}
}

// SetupRoutes defines all the API routes for the scoring engine.
func SetupRoutes(router *gin.Engine, engine services.IndexManager, logger *slog.Logger) {
	apiHandler := NewAPI(engine, logger)

	router.Use(CORSMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))

	router.GET("/health", apiHandler.HealthCheckHandler)

	indexRoutes := router.Group("/indexes")
	{
		indexRoutes.POST("", apiHandler.CreateIndexHandler)
		indexRoutes.GET("", apiHandler.ListIndexesHandler)
		indexRoutes.GET("/:indexName", apiHandler.GetIndexHandler)
		indexRoutes.DELETE("/:indexName", apiHandler.DeleteIndexHandler)
		indexRoutes.PATCH("/:indexName/settings", apiHandler.UpdateIndexSettingsHandler)

		docRoutes := indexRoutes.Group("/:indexName/documents")
		{
			docRoutes.PUT("", apiHandler.AddDocumentsHandler)
			docRoutes.GET("", apiHandler.GetDocumentsHandler)
			docRoutes.DELETE("", apiHandler.DeleteAllDocumentsHandler)
			docRoutes.GET("/:documentId", apiHandler.GetDocumentHandler)
			docRoutes.DELETE("/:documentId", apiHandler.DeleteDocumentHandler)
		}

		indexRoutes.POST("/:indexName/_search", apiHandler.SearchHandler)
		indexRoutes.POST("/:indexName/_explain", apiHandler.ExplainHandler)
	}
}

// HealthCheckHandler reports service liveness.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
