package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"time"

	"github.com/bobby-s-dev/weather-panel/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed templates/panel.html
var templates embed.FS

var (
	pageTemplate = template.Must(template.ParseFS(templates, "templates/panel.html"))
	validate     = validator.New()
)

type searchRequest struct {
	City string `json:"city" form:"city" validate:"max=100"`
}

type Handler struct {
	panel  *services.Panel
	logger *zap.Logger
}

func NewHandler(panel *services.Panel, logger *zap.Logger) *Handler {
	return &Handler{
		panel:  panel,
		logger: logger,
	}
}

// GetPanel handles GET /api/v1/panel
func (h *Handler) GetPanel(c *fiber.Ctx) error {
	return c.JSON(h.currentView())
}

// Search handles POST /api/v1/panel/search
func (h *Handler) Search(c *fiber.Ctx) error {
	req, err := bindSearch(c)
	if err != nil {
		return err
	}

	view, err := h.submit(c, req.City)
	if errors.Is(err, services.ErrEmptyQuery) {
		return c.Status(fiber.StatusBadRequest).JSON(view)
	}
	return c.JSON(view)
}

// Index handles GET /
func (h *Handler) Index(c *fiber.Ctx) error {
	return h.render(c, h.currentView())
}

// SearchForm handles POST /search from the HTML form.
func (h *Handler) SearchForm(c *fiber.Ctx) error {
	req, err := bindSearch(c)
	if err != nil {
		return err
	}

	view, _ := h.submit(c, req.City)
	return h.render(c, view)
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "healthy",
		"timestamp":  time.Now(),
		"last_fetch": h.panel.GetLastFetchTime(),
		"uptime":     time.Since(startTime).String(),
		"stats":      h.panel.GetStats(),
	})
}

func (h *Handler) submit(c *fiber.Ctx, city string) (View, error) {
	state, err := h.panel.Submit(c.UserContext(), city)
	view := NewView(state, h.panel.NightMode())

	switch {
	case errors.Is(err, services.ErrEmptyQuery):
		view.Notice = services.EmptyQueryNotice
	case errors.Is(err, services.ErrSuperseded):
		h.logger.Debug("Search superseded by a newer one", zap.String("city", city))
		view = h.currentView()
	}
	return view, err
}

func (h *Handler) currentView() View {
	return NewView(h.panel.State(), h.panel.NightMode())
}

func (h *Handler) render(c *fiber.Ctx, view View) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		h.logger.Error("Failed to render panel", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render panel")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func bindSearch(c *fiber.Ctx) (searchRequest, error) {
	var req searchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return req, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	if req.City == "" {
		req.City = c.Query("city")
	}

	if err := validate.Struct(req); err != nil {
		return req, fiber.NewError(fiber.StatusBadRequest, "city must be at most 100 characters")
	}
	return req, nil
}

// ErrorHandler renders errors returned by handlers as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	// Default to 500 status code
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}

var startTime = time.Now()
