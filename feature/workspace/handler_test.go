package workspace

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

func TestHandleSync(t *testing.T) {
	t.Run("Dry Run", func(t *testing.T) {
		dir := setupDirs(t)
		writeBook(t, filepath.Join(dir, "concentrado-general.xlsx"),
			[]any{"EXP-1", nil, "Uno"},
			[]any{"EXP-2", nil, "Dos"},
		)
		target := filepath.Join(dir, "merge-general", "concentrado-general.xlsx")
		writeBook(t, target, []any{"EXP-1", nil, "Uno"})
		before, err := os.ReadFile(target)
		require.NoError(t, err)

		app := fiber.New()
		NewHandler(newService(dir, false)).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/sync?dry_run=true", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, true, body["dry_run"])
		assert.Equal(t, float64(1), body["appended"])

		after, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Missing Source", func(t *testing.T) {
		app := fiber.New()
		NewHandler(newService(setupDirs(t), false)).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/sync", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("Missing Target", func(t *testing.T) {
		dir := setupDirs(t)
		writeBook(t, filepath.Join(dir, "concentrado-general.xlsx"), []any{"EXP-1", nil, "Uno"})

		app := fiber.New()
		NewHandler(newService(dir, false)).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/sync", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("Unreadable Source", func(t *testing.T) {
		dir := setupDirs(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "concentrado-general.xlsx"), []byte("not a workbook"), 0o644))
		writeBook(t, filepath.Join(dir, "merge-general", "concentrado-general.xlsx"), []any{"EXP-1", nil, "Uno"})

		app := fiber.New()
		NewHandler(newService(dir, false)).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("POST", "/sync", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}
