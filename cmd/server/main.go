package main

import (
	"log"
	"time"

	"custodia360/config"
	"custodia360/db"
	"custodia360/handlers"
	"custodia360/middleware"
	"custodia360/models"
	"custodia360/services"
	"custodia360/services/jobs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.Entidad{},
		&models.Delegado{},
		&models.Session{},
		&models.Incidencia{},
		&models.AccionTomada{},
		&models.Certificacion{},
		&models.PlantillaDocumento{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the LOPIVI document templates
	if err := services.SeedPlantillas(db.DB); err != nil {
		log.Fatalf("Failed to seed document templates: %v", err)
	}

	// Storage backend (R2 when configured, local disk otherwise)
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes (no authentication required)
	e.POST("/api/contratar", handlers.ContratarHandler)
	e.POST("/api/login", handlers.LoginHandler)

	// Authenticated routes
	auth := e.Group("/api")
	auth.Use(middleware.RequireAuth())
	{
		auth.POST("/logout", handlers.LogoutHandler)
		auth.GET("/me", handlers.MeHandler)

		// Entity-scoped routes
		scoped := auth.Group("")
		scoped.Use(middleware.RequireEntidad())
		{
			scoped.GET("/entidad", handlers.GetEntidadHandler)
			scoped.PUT("/entidad", handlers.UpdateEntidadHandler)

			// Incident tracking
			scoped.GET("/incidencias", handlers.GetIncidenciasHandler)
			scoped.POST("/incidencias", handlers.CreateIncidenciaHandler)
			scoped.GET("/incidencias/estadisticas", handlers.GetEstadisticasHandler)
			scoped.GET("/incidencias/timeline", handlers.GetTimelineHandler)
			scoped.GET("/incidencias/registro.xlsx", handlers.ExportRegistroHandler)
			scoped.GET("/incidencias/:id", handlers.GetIncidenciaHandler)
			scoped.PUT("/incidencias/:id", handlers.UpdateIncidenciaHandler)
			scoped.POST("/incidencias/:id/acciones", handlers.CreateAccionHandler)

			// Document generation
			scoped.GET("/plantillas", handlers.GetPlantillasHandler)
			scoped.POST("/documentos/:clave", handlers.GenerateDocumentoHandler)
			scoped.POST("/documentos/generar-todos", handlers.GenerateAllDocumentosHandler)
			scoped.GET("/documentos/:clave/download", handlers.DownloadDocumentoHandler)

			// Certifications
			scoped.GET("/certificaciones", handlers.GetCertificacionesHandler)
			scoped.POST("/formacion/completar", handlers.CompleteFormacionHandler)
		}
	}

	// Start background jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			// Clean up expired sessions
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}

			// Send certification renewal reminders
			jobs.SendRenewalReminders(db.DB, cfg)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
