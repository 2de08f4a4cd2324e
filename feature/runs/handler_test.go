package runs

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"consolidator/core/database"
	"consolidator/core/history"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) (*fiber.App, *history.Store) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	store := history.NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))

	app := fiber.New()
	feature := NewFeature(store, zap.NewNop())
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app, store
}

func TestHandleList(t *testing.T) {
	app, store := setupApp(t)
	ctx := context.Background()
	require.NoError(t, store.Record(ctx, history.NewRun(history.KindMerge).Finish(nil)))
	require.NoError(t, store.Record(ctx, history.NewRun(history.KindClean).Finish(nil)))

	resp, err := app.Test(httptest.NewRequest("GET", "/history?kind=merge&limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Runs  []history.Run `json:"runs"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, history.KindMerge, body.Runs[0].Kind)
}

func TestHandleGet(t *testing.T) {
	app, store := setupApp(t)
	run := history.NewRun(history.KindSync).Finish(nil)
	require.NoError(t, store.Record(context.Background(), run))

	resp, err := app.Test(httptest.NewRequest("GET", "/history/"+run.ID, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/history/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestFeature_Disabled(t *testing.T) {
	assert.False(t, NewFeature(history.NewStore(nil), zap.NewNop()).IsEnabled())
}
