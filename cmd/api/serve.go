package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	app, err := newApplication(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}

	server := newServer(app)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := server.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s", addr)

	if err := server.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func newServer(app *application) *fiber.App {
	uploadHandler := handlers.NewUploadHandler(app.pipeline, app.resumeRepo, app.index)
	matchHandler := handlers.NewMatchHandler(app.matcher, app.matchRepo)
	analysisHandler := handlers.NewAnalysisHandler(app.aggregator)
	resultHandler := handlers.NewResultHandler(app.resumeRepo, app.matchRepo, app.index)
	log.Println("✅ Handlers initialized")

	// Uploads and model calls are slow; timeouts leave room for several sequential files.
	server := fiber.New(fiber.Config{
		AppName:      "Resume Screener API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    app.cfg.UploadLimit(),
		ErrorHandler: customErrorHandler,
	})

	server.Use(recover.New())
	server.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	server.Use(helmet.New())
	server.Use(compress.New())
	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := server.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	limited := middleware.RateLimiter(app.cfg.RateLimit.Max, app.cfg.RateLimit.Window)
	api.Post("/upload", limited, uploadHandler.HandleUpload)
	api.Post("/job-match", limited, matchHandler.HandleJobMatch)
	api.Post("/batch-analysis", limited, analysisHandler.HandleBatchAnalysis)
	api.Get("/resumes/:id", resultHandler.HandleGetResume)
	api.Get("/job-matches/:id", resultHandler.HandleGetJobMatch)
	api.Get("/candidates/search", resultHandler.HandleSearchCandidates)

	server.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/job-match",
				"POST /api/v1/batch-analysis",
				"GET /api/v1/resumes/:id",
				"GET /api/v1/job-matches/:id",
				"GET /api/v1/candidates/search?q=",
			},
		})
	})

	return server
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

