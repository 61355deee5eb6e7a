package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/githuax/zeduno-sub008/internal/model"
	"github.com/githuax/zeduno-sub008/internal/order"
	"github.com/githuax/zeduno-sub008/pkg/config"
	"github.com/githuax/zeduno-sub008/pkg/jwtutil"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Tenant{},
		&model.MenuItem{},
		&model.Table{},
		&model.Order{},
		&model.OrderItem{},
	))

	tenant := &model.Tenant{Name: "Mama Oliech", Slug: "mama-oliech", Status: model.TenantStatusActive, MaxUsers: 10}
	require.NoError(t, db.Create(tenant).Error)
	return db
}

func newOrderHandlers(t *testing.T) (*OrderHandler, *TableHandler, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	repo := order.NewRepo(db)
	svc := order.NewService(repo, nil, config.BillingConfig{
		DefaultCurrency:     "KES",
		ServiceChargeRate:   0.10,
		OrderNumberAttempts: 3,
	})
	return &OrderHandler{Svc: svc}, &TableHandler{Svc: order.NewTableService(db, repo)}, db
}

func staffClaims(tenantID uint) *jwtutil.UserClaims {
	return &jwtutil.UserClaims{Email: "staff@example.com", UserID: 1, TenantID: &tenantID, Role: model.RoleStaff}
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, path, body string, claims *jwtutil.UserClaims, pathID uint) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set("user", claims)
	}
	if pathID > 0 {
		c.SetParamNames("id")
		c.SetParamValues(strconv.FormatUint(uint64(pathID), 10))
	}
	require.NoError(t, h(c))
	return rec
}

func TestOrderCreate_IgnoresClientTotals(t *testing.T) {
	orders, _, _ := newOrderHandlers(t)

	body := `{
		"order_type": "dine-in",
		"customer_name": "Walk-in",
		"total": 1,
		"items": [
			{"name": "Tilapia", "price": 250, "quantity": 1},
			{"name": "Ugali Special", "price": 500, "quantity": 1}
		]
	}`
	rec := doJSON(t, orders.Create, http.MethodPost, "/api/orders", body, staffClaims(1), 0)
	require.Equal(t, http.StatusCreated, rec.Code)

	var o model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.Equal(t, model.OrderStatusPending, o.Status)
	assert.Equal(t, 750.0, o.Subtotal)
	assert.Equal(t, 75.0, o.ServiceCharge)
	assert.Equal(t, 825.0, o.Total)
}

func TestOrderCreate_RequiresAuthentication(t *testing.T) {
	orders, _, _ := newOrderHandlers(t)

	rec := doJSON(t, orders.Create, http.MethodPost, "/api/orders", `{}`, nil, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderCreate_ValidationIsBadRequest(t *testing.T) {
	orders, _, _ := newOrderHandlers(t)

	rec := doJSON(t, orders.Create, http.MethodPost, "/api/orders",
		`{"order_type": "dine-in", "customer_name": "A", "items": []}`, staffClaims(1), 0)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestOrderTransition_IllegalMoveIsConflict(t *testing.T) {
	orders, _, _ := newOrderHandlers(t)

	rec := doJSON(t, orders.Create, http.MethodPost, "/api/orders",
		`{"order_type": "takeaway", "customer_name": "A", "items": [{"name": "Chai", "price": 50, "quantity": 1}]}`,
		staffClaims(1), 0)
	require.Equal(t, http.StatusCreated, rec.Code)

	var o model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))

	rec = doJSON(t, orders.Transition, http.MethodPatch, "/api/orders/:id/status",
		`{"status": "refunded"}`, staffClaims(1), o.ID)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, orders.Transition, http.MethodPatch, "/api/orders/:id/status",
		`{"status": "preparing"}`, staffClaims(1), o.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	assert.Equal(t, model.OrderStatusPreparing, o.Status)
}

func TestOrderGet_CrossTenantIs404(t *testing.T) {
	orders, _, _ := newOrderHandlers(t)

	rec := doJSON(t, orders.Create, http.MethodPost, "/api/orders",
		`{"order_type": "takeaway", "customer_name": "A", "items": [{"name": "Chai", "price": 50, "quantity": 1}]}`,
		staffClaims(1), 0)
	require.Equal(t, http.StatusCreated, rec.Code)

	var o model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))

	rec = doJSON(t, orders.Get, http.MethodGet, "/api/orders/:id", "", staffClaims(2), o.ID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTableRelease_ConflictNamesBlockingOrders(t *testing.T) {
	orders, tables, db := newOrderHandlers(t)

	table := model.Table{TenantID: 1, Number: "T1", Capacity: 4, Status: model.TableStatusOccupied}
	require.NoError(t, db.Create(&table).Error)

	body := `{"order_type": "dine-in", "customer_name": "A", "table_id": ` + strconv.FormatUint(uint64(table.ID), 10) +
		`, "items": [{"name": "Chai", "price": 50, "quantity": 1}]}`
	rec := doJSON(t, orders.Create, http.MethodPost, "/api/orders", body, staffClaims(1), 0)
	require.Equal(t, http.StatusCreated, rec.Code)

	var o model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))

	rec = doJSON(t, tables.SetStatus, http.MethodPatch, "/api/tables/:id/status",
		`{"status": "available"}`, staffClaims(1), table.ID)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Details struct {
			BlockingOrders []string `json:"blocking_orders"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "T1")
	assert.Contains(t, resp.Details.BlockingOrders, o.OrderNumber)
}
