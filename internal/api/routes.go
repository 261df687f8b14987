package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, handler *Handler, staticDir string, log *zap.Logger) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} ${pid} ${locals:requestid} ${status} - ${method} ${path}\n",
		TimeFormat: time.RFC3339,
	}))

	// Icons and stylesheet are served as-is.
	if staticDir != "" {
		log.Info("Serving static assets", zap.String("dir", staticDir))
		app.Static("/static", staticDir)
	}

	// Panel page
	app.Get("/", handler.Index)
	app.Post("/search", handler.SearchForm)

	// API v1 routes
	api := app.Group("/api/v1")

	api.Get("/health", handler.GetHealth)

	panel := api.Group("/panel")
	panel.Get("/", handler.GetPanel)
	panel.Post("/search", handler.Search)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
			"path":  c.Path(),
		})
	})
}
