package properties

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	propsvc "realty-backend/internal/application/properties"
	"realty-backend/internal/infrastructure/database"

	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPropertiesTest(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))

	h := &Handlers{Service: &propsvc.Service{DB: db}}
	app := fiber.New()
	app.Post("/properties", h.Create)
	app.Get("/properties", h.List)
	app.Get("/properties/:id", h.Get)
	app.Put("/properties/:id", h.Update)
	app.Delete("/properties/:id", h.Delete)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func createBody() map[string]interface{} {
	return map[string]interface{}{
		"address": "12 Main St",
		"price":   500000,
		"incomes": []map[string]interface{}{{"amount": 3000, "frequency": "monthly"}},
		"expenses": []map[string]interface{}{
			{"name": "Tax", "amount": "2400", "frequency": "yearly"},
		},
	}
}

func TestCreate_Success(t *testing.T) {
	app := setupPropertiesTest(t)
	code, out := doJSON(t, app, "POST", "/properties", createBody())
	assert.Equal(t, 201, code)
	assert.Equal(t, "success", out["status"])
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "12 Main St", data["address"])
	assert.Equal(t, "2800", data["cashflow"])
	assert.Len(t, data["incomes"], 1)
	assert.Nil(t, data["financing"])
}

func TestCreate_MissingAddress(t *testing.T) {
	app := setupPropertiesTest(t)
	body := createBody()
	delete(body, "address")
	code, out := doJSON(t, app, "POST", "/properties", body)
	assert.Equal(t, 400, code)
	assert.Equal(t, "Address and price are required", out["error"].(map[string]interface{})["message"])
}

func TestCreate_BadFrequency(t *testing.T) {
	app := setupPropertiesTest(t)
	body := createBody()
	body["incomes"] = []map[string]interface{}{{"amount": 10, "frequency": "weekly"}}
	code, out := doJSON(t, app, "POST", "/properties", body)
	assert.Equal(t, 400, code)
	assert.Equal(t, "Frequency must be monthly or yearly", out["error"].(map[string]interface{})["message"])
}

func TestListAndGet(t *testing.T) {
	app := setupPropertiesTest(t)
	_, created := doJSON(t, app, "POST", "/properties", createBody())
	id := created["data"].(map[string]interface{})["id"].(string)

	code, out := doJSON(t, app, "GET", "/properties", nil)
	assert.Equal(t, 200, code)
	data := out["data"].(map[string]interface{})
	assert.Len(t, data["properties"], 1)
	assert.Nil(t, data["newOffset"])
	assert.Equal(t, float64(1), data["totalProperties"])

	code, out = doJSON(t, app, "GET", "/properties?search=MAIN", nil)
	assert.Equal(t, 200, code)
	assert.Len(t, out["data"].(map[string]interface{})["properties"], 1)

	code, out = doJSON(t, app, "GET", "/properties/"+id, nil)
	assert.Equal(t, 200, code)
	assert.Equal(t, id, out["data"].(map[string]interface{})["id"])

	code, _ = doJSON(t, app, "GET", "/properties/"+uuid.New().String(), nil)
	assert.Equal(t, 404, code)

	code, _ = doJSON(t, app, "GET", "/properties/not-a-uuid", nil)
	assert.Equal(t, 400, code)
}

func TestUpdateAndDelete(t *testing.T) {
	app := setupPropertiesTest(t)
	_, created := doJSON(t, app, "POST", "/properties", createBody())
	id := created["data"].(map[string]interface{})["id"].(string)

	code, out := doJSON(t, app, "PUT", "/properties/"+id, map[string]interface{}{"address": "14 Main St"})
	assert.Equal(t, 200, code)
	assert.Equal(t, "14 Main St", out["data"].(map[string]interface{})["address"])

	code, _ = doJSON(t, app, "PUT", "/properties/"+id, map[string]interface{}{"price": -5})
	assert.Equal(t, 400, code)

	code, _ = doJSON(t, app, "DELETE", "/properties/"+id, nil)
	assert.Equal(t, 200, code)
	code, _ = doJSON(t, app, "DELETE", "/properties/"+id, nil)
	assert.Equal(t, 404, code)
}
