package main

import (
	"log"

	"docflow_app_go/config"
	"docflow_app_go/db"
	"docflow_app_go/handlers"
	"docflow_app_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (opens the connection and migrates the schema)
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize storage, drafts, and editing sessions
	services.InitializeStorage(cfg)
	services.InitializeDraftStore(cfg)
	services.InitializeSessions()

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files (letterhead images, editor assets)
	e.Static("/static", "static")

	api := e.Group("/api")
	{
		// Editing sessions
		api.POST("/sessions", handlers.CreateSessionHandler)
		api.GET("/sessions/:id", handlers.GetSessionHandler)
		api.DELETE("/sessions/:id", handlers.CloseSessionHandler)
		api.POST("/sessions/:id/fields", handlers.UpdateFieldHandler)
		api.POST("/sessions/:id/items", handlers.AddItemHandler)
		api.DELETE("/sessions/:id/items/:itemId", handlers.RemoveItemHandler)
		api.POST("/sessions/:id/reset", handlers.ResetSessionHandler)
		api.GET("/sessions/:id/preview", handlers.PreviewSessionHandler)

		// Save, export, print, email
		api.POST("/sessions/:id/save", handlers.SaveSessionHandler)
		api.POST("/sessions/:id/export", handlers.ExportSessionHandler)
		api.GET("/sessions/:id/print", handlers.PrintSessionHandler)
		api.POST("/sessions/:id/print.pdf", handlers.PrintPDFHandler)
		api.POST("/sessions/:id/email", handlers.EmailSessionHandler)

		// Saved documents
		api.GET("/documents", handlers.ListDocumentsHandler)
		api.GET("/documents/export.xlsx", handlers.ExportHistoryHandler)
		api.GET("/documents/:id", handlers.GetDocumentHandler)
		api.GET("/documents/:id/preview", handlers.PreviewDocumentHandler)
		api.POST("/documents/:id/export", handlers.ExportDocumentHandler)
		api.DELETE("/documents/:id", handlers.DeleteDocumentHandler)

		// Drafts
		api.GET("/drafts/:type", handlers.GetDraftHandler)
		api.PUT("/drafts/:type", handlers.PutDraftHandler)

		// Letterhead
		api.POST("/letterhead", handlers.UploadLetterheadHandler)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
