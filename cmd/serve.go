package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"consolidator/core/loader"
	"consolidator/core/logger"
	"consolidator/core/middleware/auth"
	"consolidator/core/middleware/rayid"
	"consolidator/feature/cleanup"
	"consolidator/feature/consolidate"
	"consolidator/feature/merge"
	"consolidator/feature/runs"
	"consolidator/feature/workspace"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "consolidator/docs/swagger"
)

// Paths served without an API key.
const (
	healthPath  = "/health"
	swaggerPath = "/swagger/*"
)

// @title Consolidator API
// @version 1.0
// @description Consolidates spreadsheet records and joins auxiliary workbooks by key.
// @host localhost:8080
// @BasePath /

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Starts the HTTP server and exposes every enabled feature as an endpoint.`,
	RunE:  runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap(context.Background())
	if err != nil {
		return err
	}
	logg := a.logger
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	app, err := newServer(a)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("address", a.cfg.Server.Address()))
		errCh <- app.Listen(a.cfg.Server.Address())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logg.Info("Shutting down server...")
	return app.ShutdownWithTimeout(a.cfg.Server.ShutdownTimeout())
}

// newServer builds the fiber app with middleware and every enabled feature mounted.
func newServer(a *app) (*fiber.App, error) {
	logg := a.logger
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	mgr := loader.NewManager(logg)
	mgr.Register(consolidate.NewFeature(a.cfg.Consolidate, a.backups, a.history, logg))
	mgr.Register(workspace.NewFeature(a.cfg.Sync, a.backups, a.history, logg))
	mgr.Register(merge.NewFeature(a.cfg.Merge, a.backups, a.history, logg))
	mgr.Register(cleanup.NewFeature(a.cfg.Cleanup, a.backups, a.history, logg))
	mgr.Register(runs.NewFeature(a.history, logg))

	// RayID first so every later log line carries it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Use(auth.New(auth.Config{
		ApiKey:      a.cfg.Server.ApiKey,
		PublicPaths: []string{healthPath, swaggerPath},
	}))

	app.Get(healthPath, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get(swaggerPath, swagger.HandlerDefault)

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}
