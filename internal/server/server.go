// Package server builds the fiber application: codec, middleware and the
// operational endpoints. Feature routes are mounted by the caller on the
// group returned from API.
package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

const APIPrefix = "/api/v1"

type Config struct {
	Name        string
	Version     string
	CORSOrigins []string
}

func New(cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	origins := "*"
	if len(cfg.CORSOrigins) > 0 {
		origins = strings.Join(cfg.CORSOrigins, ",")
	}

	app.Use(observe())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, " + requestIDHeader,
	}))

	app.Get("/", rootInfo(cfg))
	app.Get("/health", health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	return app
}

// API returns the versioned group feature handlers register on.
func API(app *fiber.App) fiber.Router {
	return app.Group(APIPrefix)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	msg := "internal_server_error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	return c.Status(code).JSON(errorResponse{Error: msg})
}

type infoResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
	Health  string `json:"health"`
}

func rootInfo(cfg Config) fiber.Handler {
	resp := infoResponse{
		Service: cfg.Name,
		Version: cfg.Version,
		Docs:    "/docs/index.html",
		Health:  "/health",
	}
	return func(c *fiber.Ctx) error {
		return c.JSON(resp)
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// health godoc
// @Summary Liveness probe
// @Tags Ops
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func health(c *fiber.Ctx) error {
	return c.JSON(healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
