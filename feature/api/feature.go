package api

import (
	"tablediff/core/compare"
	"tablediff/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the comparison feature.
func NewFeature(scheduler *compare.Scheduler, cfg compare.Config, srv server.Config, logger *zap.Logger) *Feature {
	svc := NewService(scheduler, cfg.ExcludedTables, cfg.MaxParallelism, logger)
	return &Feature{service: svc, handler: NewHandler(svc, srv)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "compare"
}

// IsEnabled reports whether both endpoints are configured.
func (f *Feature) IsEnabled() bool {
	s := f.service.scheduler
	return s != nil && s.Source != nil && s.Target != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
