package workspace

import (
	"errors"

	"consolidator/core/logger"
	"consolidator/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for workspace syncs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync", h.HandleSync)
}

// HandleSync appends the missing canonical rows to the workspace copy.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Run(c.Context(), utils.ToBool(c.Query("dry_run")))
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrSourceMissing) || errors.Is(err, ErrTargetMissing) || errors.Is(err, ErrEmptySource) {
			status = fiber.StatusUnprocessableEntity
		}
		l.Error("Sync failed", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
