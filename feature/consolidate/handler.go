package consolidate

import (
	"errors"

	"consolidator/core/logger"
	"consolidator/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for consolidation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the consolidation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/consolidate", h.HandleConsolidate)
}

// HandleConsolidate runs a consolidation and returns its report.
func (h *Handler) HandleConsolidate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	dryRun := utils.ToBool(c.Query("dry_run"))
	l.Info("Triggering consolidation", zap.Bool("dry_run", dryRun))

	report, err := h.service.Run(c.Context(), dryRun)
	if errors.Is(err, ErrRunInProgress) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Consolidation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
