package cleanup

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleClean(t *testing.T) {
	t.Run("Dry Run", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "concentrado-general.xlsx")
		writeBook(t, path)
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		app := fiber.New()
		NewHandler(newService(path, "C:C")).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/clean?dry_run=true", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["dry_run"])
		assert.Equal(t, float64(2), body["cleared"])

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Run", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "concentrado-general.xlsx")
		writeBook(t, path)

		app := fiber.New()
		NewHandler(newService(path, "C:C")).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/clean", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body["backup"])
	})

	t.Run("Missing File", func(t *testing.T) {
		app := fiber.New()
		NewHandler(newService(filepath.Join(t.TempDir(), "missing.xlsx"), "BL:BP")).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/clean", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("Invalid Range", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "concentrado-general.xlsx")
		writeBook(t, path)

		app := fiber.New()
		NewHandler(newService(path, "BP:BL")).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/clean", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}
