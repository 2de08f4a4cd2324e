package cleanup

import (
	"consolidator/core/backup"
	"consolidator/core/history"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	cfg     Config
	service *Service
	handler *Handler
}

// NewFeature creates a new cleanup feature.
func NewFeature(cfg Config, backups *backup.Manager, store *history.Store, logger *zap.Logger) *Feature {
	svc := NewService(cfg, backups, store, logger)
	return &Feature{cfg: cfg, service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "cleanup"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.cfg.Enabled
}

// Load registers the feature's routes. An invalid column range fails the load.
func (f *Feature) Load(app fiber.Router) error {
	if _, _, err := ParseRange(f.cfg.Columns); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
