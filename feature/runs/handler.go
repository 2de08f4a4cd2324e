package runs

import (
	"errors"

	"consolidator/core/history"
	"consolidator/core/logger"
	"consolidator/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the run history.
type Handler struct {
	store  *history.Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *history.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/history")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
}

// HandleList returns the most recent runs.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	list, err := h.store.List(c.Context(), c.Query("kind"), utils.ToInt(c.Query("limit")))
	if err != nil {
		l.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"runs": list, "count": len(list)})
}

// HandleGet returns a single run.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	run, err := h.store.Get(c.Context(), c.Params("id"))
	if errors.Is(err, history.ErrRunNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to get run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(run)
}
