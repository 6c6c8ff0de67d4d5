package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"smartrent_backend/internal/handlers"
	"smartrent_backend/pkg/contextkeys"
)

// RegisterRoutes mounts every handler under /api plus the static file
// groups the mobile app consumes directly.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers, uploadsDir, publicDir string) {
	api := router.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.CompanyHandler.RegisterRoutes(api)
		appHandlers.PropertyHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.ReservationHandler.RegisterRoutes(api)
		appHandlers.SubscriptionHandler.RegisterRoutes(api)
		appHandlers.InvoiceHandler.RegisterRoutes(api)
		appHandlers.SupportHandler.RegisterRoutes(api)
		appHandlers.EstadisticasHandler.RegisterRoutes(api)
		appHandlers.UploadHandler.RegisterRoutes(api)
	}

	// Uploaded media and generated invoices are served as plain files.
	router.Static("/uploads", uploadsDir)
	router.Static("/public", publicDir)

	router.GET("/health", HealthCheck)
}

// HealthCheck reports liveness and pings the database handle the
// Database middleware put into the request context.
func HealthCheck(c *gin.Context) {
	body := gin.H{"status": "ok"}

	if v, ok := c.Get(string(contextkeys.DBContextKey)); ok {
		db, ok := v.(*gorm.DB)
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		body["database"] = "up"
	}

	c.JSON(http.StatusOK, body)
}
