package bootstrap

import (
	"realty-backend/internal/config"
	"realty-backend/internal/interfaces/router"
	"realty-backend/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for serverless runtimes (the api handler imports
// this package, not internal).
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.LogLevel, cfg.Env)
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
