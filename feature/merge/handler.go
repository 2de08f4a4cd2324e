package merge

import (
	"errors"

	"consolidator/core/logger"
	"consolidator/core/match"
	"consolidator/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for merges.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the merge routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/merge", h.HandleMerge)
}

// HandleMerge joins the secondary workbook into the primary workbook.
func (h *Handler) HandleMerge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Run(c.Context(), utils.ToBool(c.Query("dry_run")))

	var missing *match.MissingColumnError
	switch {
	case errors.As(err, &missing):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      err.Error(),
			"column":     missing.Column,
			"available":  missing.Available,
			"candidates": missing.Candidates,
		})
	case errors.Is(err, match.ErrBlockOccupied), errors.Is(err, ErrInputMissing):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	case err != nil:
		l.Error("Merge failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
