package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mahisadi/netflix-movie-library-explorer/internal/config"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/database"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/handler"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/index"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/redisearch"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/repository"
	"github.com/mahisadi/netflix-movie-library-explorer/internal/service"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to the index store
	searchClient, err := database.NewSearchClient(cfg.Redis)
	if err != nil {
		slog.Error("failed to connect to index store", "error", err)
		os.Exit(1)
	}
	conn := redisearch.NewConn(searchClient)
	defer conn.Close()

	// Bootstrap the index
	schema := index.MovieSchema(cfg.Search.IndexName, cfg.Search.KeyPrefix)
	if err := index.Ensure(context.Background(), conn, schema); err != nil {
		slog.Error("failed to ensure search index", "error", err)
		os.Exit(1)
	}

	// Connect to the analytics DB (non-fatal if unavailable)
	analyticsClient, err := database.NewAnalyticsClient(cfg.Redis)
	if err != nil {
		slog.Warn("analytics DB unavailable, counters disabled", "error", err)
		analyticsClient = nil
	}

	// Initialize layers
	repo := repository.New(conn, schema, cfg.Search)
	searchSvc := service.NewSearchService(repo, cfg.Search)
	dashboardSvc := service.NewDashboardService(repo, cfg.Dashboard, cfg.Search)
	analyticsSvc := service.NewAnalyticsService(analyticsClient, 1024)
	defer analyticsSvc.Close()

	movies := handler.NewMovieHandler(searchSvc, dashboardSvc, analyticsSvc)
	analytics := handler.NewAnalyticsHandler(analyticsSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Library Explorer",
		ServerHeader: "Movie-Library",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: "internal error"})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", movies.Health)

	api.Get("/movies", movies.SearchMovies)
	api.Get("/movies/suggestions", movies.Suggestions)
	api.Get("/movies/filters", movies.FilterOptions)
	api.Get("/movies/:id", movies.GetMovie)
	api.Post("/movies", movies.CreateMovie)
	api.Put("/movies/:id", movies.UpdateMovie)
	api.Delete("/movies/:id", movies.DeleteMovie)

	api.Get("/dashboard/stats", movies.DashboardStats)
	api.Get("/index/stats", movies.IndexStats)

	api.Post("/analytics/events", analytics.PostEvent)
	api.Get("/analytics/summary", analytics.Summary)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down movie library explorer...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie library explorer", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
