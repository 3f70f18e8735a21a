package stock

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"validapro-backend/internal/auth"
	"validapro-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newStockApp monta um app só com as rotas de estoque, injetando os claims
// direto nos Locals (o middleware JWT real é testado no pacote auth).
func newStockApp(db *gorm.DB, role models.UserRole, userID uint, storeID *uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, userID)
		c.Locals(auth.CtxUserRoleKey, role)
		c.Locals(auth.CtxStoreIDKey, storeID)
		return c.Next()
	})
	app.Post("/api/stock", UpsertStockHandler(db))
	app.Get("/api/stock", ListStockHandler(db))
	return app
}

func TestUpsertStockHandler(t *testing.T) {
	db := newTestDB(t)
	store, product := seedStoreAndProduct(t, db)

	actor := models.User{Username: "repositor1", PasswordHash: "x", Role: models.RoleRepositor, StoreID: &store.ID}
	require.NoError(t, db.Create(&actor).Error)

	app := newStockApp(db, models.RoleRepositor, actor.ID, &store.ID)

	t.Run("cria e depois substitui", func(t *testing.T) {
		body := `{"product_id": ` + uintStr(product.ID) + `, "expiration_date": "2025-01-01", "quantity": 50}`
		req := httptest.NewRequest("POST", "/api/stock", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var first StockEntryResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&first))
		assert.Equal(t, 50, first.Quantity)
		assert.Equal(t, store.ID, first.StoreID)

		body = `{"product_id": ` + uintStr(product.ID) + `, "expiration_date": "2025-02-01", "quantity": 30}`
		req = httptest.NewRequest("POST", "/api/stock", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var second StockEntryResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&second))
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 30, second.Quantity)
		assert.Equal(t, "2025-02-01", second.ExpirationDate)

		// o registro de atividade acompanha o upsert
		var activityCount int64
		require.NoError(t, db.Model(&models.ActivityLog{}).Count(&activityCount).Error)
		assert.Equal(t, int64(2), activityCount)
	})

	t.Run("quantidade negativa é rejeitada", func(t *testing.T) {
		body := `{"product_id": ` + uintStr(product.ID) + `, "expiration_date": "2025-01-01", "quantity": -1}`
		req := httptest.NewRequest("POST", "/api/stock", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("quantidade ausente é rejeitada", func(t *testing.T) {
		body := `{"product_id": ` + uintStr(product.ID) + `, "expiration_date": "2025-01-01"}`
		req := httptest.NewRequest("POST", "/api/stock", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("produto inexistente retorna 404", func(t *testing.T) {
		body := `{"product_id": 9999, "expiration_date": "2025-01-01", "quantity": 10}`
		req := httptest.NewRequest("POST", "/api/stock", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestUpsertStockHandlerStoreScoping(t *testing.T) {
	db := newTestDB(t)
	store, product := seedStoreAndProduct(t, db)

	other := models.Store{Name: "Loja Norte"}
	require.NoError(t, db.Create(&other).Error)

	// usuário de loja não consegue escrever em outra loja: o store_id do
	// corpo é ignorado e vale o do token
	app := newStockApp(db, models.RolePromoter, 1, &store.ID)
	body := `{"store_id": ` + uintStr(other.ID) + `, "product_id": ` + uintStr(product.ID) + `, "expiration_date": "2025-01-01", "quantity": 5}`
	req := httptest.NewRequest("POST", "/api/stock", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var entry models.StockEntry
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, store.ID, entry.StoreID)

	// admin sem store_id explícito recebe 400
	adminApp := newStockApp(db, models.RoleAdmin, 1, nil)
	body = `{"product_id": ` + uintStr(product.ID) + `, "expiration_date": "2025-01-01", "quantity": 5}`
	req = httptest.NewRequest("POST", "/api/stock", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = adminApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListStockHandlerFilters(t *testing.T) {
	db := newTestDB(t)
	store, product := seedStoreAndProduct(t, db)

	_, err := Upsert(db, UpsertParams{
		StoreID:        store.ID,
		ProductID:      product.ID,
		ExpirationDate: day(2025, 3, 1),
		Quantity:       12,
		ActorID:        1,
	})
	require.NoError(t, err)

	app := newStockApp(db, models.RoleLeader, 1, &store.ID)

	req := httptest.NewRequest("GET", "/api/stock?min_quantity=10&max_quantity=20", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rows []StockEntryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 12, rows[0].Quantity)
	assert.Equal(t, "7891000100103", rows[0].EAN)

	req = httptest.NewRequest("GET", "/api/stock?min_quantity=13", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	rows = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	assert.Empty(t, rows)
}

func uintStr(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
