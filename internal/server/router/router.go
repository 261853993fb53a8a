package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Calculations *handlers.CalculationHandler
	History      *handlers.HistoryHandler
	Gallery      *handlers.GalleryHandler
	Inventory    *handlers.InventoryHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/themes", h.Calculations.Themes)
	r.GET("/themes/:id", h.Calculations.Theme)
	r.GET("/themes/:id/fields", h.Calculations.Fields)
	r.POST("/calculations/:theme", h.Calculations.Calculate)

	r.GET("/history", h.History.List)
	r.DELETE("/history", h.History.Clear)
	r.GET("/history/summary", h.History.Summary)
	r.GET("/history/export.xlsx", h.History.ExportWorkbook)
	r.POST("/history/export/sheets", h.History.ExportSheets)

	gallery := r.Group("/gallery")
	gallery.GET("", h.Gallery.All)
	gallery.GET("/themes/:id", h.Gallery.Theme)
	gallery.GET("/categories/:id", h.Gallery.Category)
	gallery.POST("/user-images", h.Gallery.AddUserImages)
	gallery.DELETE("/user-images", h.Gallery.ClearUserImages)
	gallery.DELETE("/images", h.Gallery.DeleteImage)
	gallery.DELETE("/categories/:id/images", h.Gallery.DeleteImage)

	inventory := r.Group("/inventory")
	inventory.GET("", h.Inventory.List)
	inventory.POST("", h.Inventory.Create)
	inventory.PUT("/:id", h.Inventory.Update)
	inventory.DELETE("/:id", h.Inventory.Delete)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
