package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/metrics"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const serviceName = "quiz-service"

type HandlerManager struct {
	catalogHandler   *CatalogHandler
	sessionHandler   *SessionHandler
	analyticsHandler *AnalyticsHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		catalogHandler:   NewCatalogHandler(serviceManager.Session(), logger),
		sessionHandler:   NewSessionHandler(serviceManager.Session(), logger),
		analyticsHandler: NewAnalyticsHandler(serviceManager.Analytics(), logger),
	}
}

// NewRouter builds the gin engine with the shared middleware chain and every
// route registered. limiter guards the routes that change session state.
func NewRouter(hm *HandlerManager, logger utils.Logger, limiter gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		utils.LoggerMiddleware(logger),
		utils.ContextLogger(logger),
		metrics.MetricsMiddleware(),
	)
	hm.SetupRoutes(router, limiter)
	return router
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, limiter gin.HandlerFunc) {
	if limiter == nil {
		limiter = func(c *gin.Context) { c.Next() }
	}

	router.GET("/health", HealthCheck)
	router.GET("/metrics", metrics.PrometheusHandler())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog", hm.catalogHandler.ListCatalog)

		// Session routes
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", limiter, hm.sessionHandler.OpenSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/actions", limiter, hm.sessionHandler.ApplyAction)
			sessions.POST("/:id/submit", limiter, hm.sessionHandler.SubmitSession)
			sessions.POST("/:id/reset", limiter, hm.sessionHandler.ResetSession)
			sessions.DELETE("/:id", limiter, hm.sessionHandler.CloseSession)
		}

		// Analytics routes
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/events", hm.analyticsHandler.ListEvents)
			analytics.GET("/events/export", hm.analyticsHandler.ExportEvents)
			analytics.GET("/stats", hm.analyticsHandler.GetStats)
		}
	}
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}
