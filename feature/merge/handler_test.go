package merge

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMerge(t *testing.T) {
	t.Run("Dry Run", func(t *testing.T) {
		cfg := setupInputs(t)
		before, err := os.ReadFile(cfg.Primary)
		require.NoError(t, err)

		app := fiber.New()
		NewHandler(newService(cfg)).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/merge?dry_run=true", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["dry_run"])
		assert.Equal(t, float64(2), body["matched"])

		after, err := os.ReadFile(cfg.Primary)
		require.NoError(t, err)
		assert.Equal(t, before, after)
		assert.NoFileExists(t, cfg.Report)
	})

	t.Run("Run", func(t *testing.T) {
		cfg := setupInputs(t)
		app := fiber.New()
		NewHandler(newService(cfg)).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/merge", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.FileExists(t, cfg.Report)
	})

	t.Run("Missing Column", func(t *testing.T) {
		cfg := testConfig(t.TempDir())
		writeBook(t, cfg.Primary, []string{"Expediente"}, []any{"A1"})
		writeBook(t, cfg.Secondary, []string{"Pieza"}, []any{"A1"})

		app := fiber.New()
		NewHandler(newService(cfg)).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/merge", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Nº de pieza", body["column"])
		assert.Equal(t, []any{"Pieza"}, body["available"])
	})

	t.Run("Missing Input", func(t *testing.T) {
		app := fiber.New()
		NewHandler(newService(testConfig(t.TempDir()))).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/merge", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("Invalid Start Column", func(t *testing.T) {
		cfg := setupInputs(t)
		cfg.StartColumn = "1A"
		app := fiber.New()
		NewHandler(newService(cfg)).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/merge", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}
