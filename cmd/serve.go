package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablediff/core/compare"
	"tablediff/core/loader"
	"tablediff/core/logger"
	"tablediff/core/middleware/auth"
	"tablediff/core/middleware/rayid"
	"tablediff/feature/api"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "tablediff/docs/swagger"
)

// @title tablediff API
// @version 1.0
// @description API for comparing tables across databases and spreadsheets.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [source] [target]",
	Short: "Start the comparison server",
	Long:  `Starts the HTTP server comparing the given locations, or the last used ones.`,
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration and logger
		s, err := newSession()
		if err != nil {
			return err
		}
		defer s.close()
		logg := s.logger
		zap.ReplaceGlobals(logg)
		cfg := s.cfg

		// 2. Endpoints (optional, the compare feature stays disabled without them)
		var scheduler *compare.Scheduler
		if source, target, err := s.endpoints(args); err != nil {
			logg.Warn("Comparison endpoints unavailable", zap.Error(err))
			scheduler = compare.New(nil, nil, nil, logg)
		} else {
			scheduler = s.scheduler(source, target)
			logg.Info("Opened endpoints",
				zap.String("source", source.ID()),
				zap.String("target", target.ID()))
		}

		// 3. Fiber app
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 4. Feature loader
		mgr := loader.NewManager(logg)
		mgr.Register(api.NewFeature(scheduler, cfg.Compare, cfg.Server, logg))

		// RayID first so every log line is traceable
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			l.Info("Request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("elapsed", time.Since(start)),
			)
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger documentation is public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		// 5. Start server
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			errCh <- app.Listen(cfg.Server.Address())
		}()

		// 6. Graceful shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-sig:
		}
		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
