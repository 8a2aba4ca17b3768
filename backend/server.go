// Package backend serves the dashboard API from inside the bot process,
// reading the live guild-config store and gateway caches.
package backend

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/fbotlabs/fbot/backend/handlers"
	"github.com/fbotlabs/fbot/backend/middleware"
)

// Server wraps the fiber app and its listen address.
type Server struct {
	app  *fiber.App
	addr string
}

// New builds the API app with its middleware chain and routes. The
// token guards every route under /api except the health probe.
func New(addr, apiToken string, webApp *handlers.WebApp) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "fbot dashboard",
		ServerHeader: "fbot",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Authorization,Content-Type",
	}))
	app.Use(middleware.LoggingMiddleware())
	app.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(60, time.Minute)))

	api := app.Group("/api")
	api.Get("/health", webApp.Health)

	guarded := api.Group("/", middleware.TokenRequired(apiToken))
	guarded.Get("/stats", webApp.GetGlobalStats)
	guarded.Get("/guilds", webApp.ListGuilds)
	guarded.Get("/guilds/:id/config", webApp.GetGuildConfig)
	guarded.Post("/guilds/:id/config", webApp.PostGuildConfig)
	guarded.Put("/guilds/:id/logroutes", webApp.PutLogRoutes)
	guarded.Get("/guilds/:id/stats", webApp.GetGuildStats)
	guarded.Get("/guilds/:id/members", webApp.GetGuildMembers)
	guarded.Get("/guilds/:id/logs", webApp.GetGuildLogs)
	guarded.Get("/guilds/:id/leaderboard", webApp.GetLeaderboard)

	return &Server{app: app, addr: addr}
}

// Start listens until Shutdown. Run it on its own goroutine.
func (s *Server) Start() {
	slog.Info("Starting dashboard API", slog.String("type", "sys"), slog.String("addr", s.addr))
	if err := s.app.Listen(s.addr); err != nil {
		slog.Error("Dashboard API stopped", slog.String("type", "sys"), slog.String("error", err.Error()))
	}
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(5 * time.Second)
}
