package cmd

import (
	"secure-file-server/core/config"
	"secure-file-server/core/loader"
	"secure-file-server/core/logger"
	"secure-file-server/core/middleware/auth"
	"secure-file-server/core/middleware/rayid"
	"secure-file-server/core/server"
	"secure-file-server/feature/files"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// newApp assembles the Fiber application. backend must already be ensured.
func newApp(cfg *config.Config, logg *zap.Logger, verifier auth.Verifier, backend files.Backend) (*fiber.App, error) {
	app := server.NewApp(cfg.Server)

	// 1. RayID (Must be first to trace everything)
	app.Use(rayid.New())

	// 2. Request logging with the RayID attached
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Debug("Request error", zap.Error(err))
		}
		return err
	})

	// 3. Auth (protect every request)
	app.Use(auth.New(auth.Config{
		Realm:    cfg.Server.RealmOrDefault(),
		Verifier: verifier,
		Logger:   logg,
	}))

	// 4. Features
	mgr := loader.NewManager()
	mgr.Register(files.NewFeature(backend, logg))
	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}

	return app, nil
}
