package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dujiao-next/tableorder/internal/config"
	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/provider"
	"github.com/dujiao-next/tableorder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type routerFixture struct {
	engine    *gin.Engine
	container *provider.Container
	table     *models.DiningTable
	burger    *models.MenuItem
	cola      *models.MenuItem
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	models.DB = db
	require.NoError(t, models.AutoMigrate())

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.App.DisplayName = "Test Bistro"
	cfg.App.BaseURL = "https://order.example.com"
	cfg.JWT.SecretKey = "router-test-secret"
	cfg.JWT.ExpireHours = 1
	cfg.Cart.Persistence = constants.CartPersistenceMemory
	cfg.Storage.PublicBaseURL = "https://cdn.example.com"
	cfg.Storage.Bucket = "menu-images"

	container := provider.NewContainer(cfg)
	t.Cleanup(container.Close)

	table := &models.DiningTable{TableNumber: "12"}
	require.NoError(t, db.Create(table).Error)
	burger := &models.MenuItem{Name: "Burger", Category: constants.MenuCategoryFood, Price: models.MustMoney("12.50"), Available: true}
	cola := &models.MenuItem{Name: "Cola", Category: constants.MenuCategoryBeverage, Price: models.MustMoney("3.00"), Available: true}
	require.NoError(t, db.Create(burger).Error)
	require.NoError(t, db.Create(cola).Error)

	return &routerFixture{
		engine:    SetupRouter(cfg, container),
		container: container,
		table:     table,
		burger:    burger,
		cola:      cola,
	}
}

func (f *routerFixture) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *routerFixture) createProfile(t *testing.T, email, role string) string {
	t.Helper()
	_, err := f.container.UserAdminService.Create(service.CreateUserInput{
		Email:    email,
		Password: "secret-pass",
		FullName: "Test " + role,
		Role:     role,
	})
	require.NoError(t, err)

	w := f.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": email, "password": "secret-pass"}, nil)
	resp := decodeEnvelope(t, w)
	require.Equal(t, 0, resp.StatusCode, resp.Msg)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestDinerOrderingFlow(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/public/tables/"+f.table.ID, nil, nil)
	resp := decodeEnvelope(t, w)
	require.Equal(t, 0, resp.StatusCode, resp.Msg)
	session := w.Header().Get(defaultCartSessionHeader)
	require.NotEmpty(t, session)
	assert.Contains(t, string(resp.Data), `"table_number":"12"`)
	headers := map[string]string{defaultCartSessionHeader: session}

	resp = decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/public/menu", nil, headers))
	require.Equal(t, 0, resp.StatusCode)
	var menu struct {
		Food     []models.MenuItem `json:"food"`
		Beverage []models.MenuItem `json:"beverage"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &menu))
	require.Len(t, menu.Food, 1)
	require.Len(t, menu.Beverage, 1)

	resp = decodeEnvelope(t, f.do(t, http.MethodPost, "/api/v1/public/cart/items",
		gin.H{"menu_item_id": f.burger.ID, "quantity": 2, "special_instructions": "no onion"}, headers))
	require.Equal(t, 0, resp.StatusCode, resp.Msg)
	resp = decodeEnvelope(t, f.do(t, http.MethodPost, "/api/v1/public/cart/items",
		gin.H{"menu_item_id": f.cola.ID}, headers))
	require.Equal(t, 0, resp.StatusCode, resp.Msg)

	// 数量为 0 的修改被钳制为 1
	resp = decodeEnvelope(t, f.do(t, http.MethodPatch, "/api/v1/public/cart/items/"+f.burger.ID,
		gin.H{"quantity": 0}, headers))
	require.Equal(t, 0, resp.StatusCode, resp.Msg)
	var cartResp struct {
		TotalAmount string `json:"total_amount"`
		ItemCount   int    `json:"item_count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &cartResp))
	assert.Equal(t, 2, cartResp.ItemCount)
	assert.Equal(t, "15.50", cartResp.TotalAmount)

	resp = decodeEnvelope(t, f.do(t, http.MethodPost, "/api/v1/public/orders", nil, headers))
	require.Equal(t, 0, resp.StatusCode, resp.Msg)
	var submitted struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &submitted))
	require.NotEmpty(t, submitted.OrderID)

	resp = decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/public/cart", nil, headers))
	require.NoError(t, json.Unmarshal(resp.Data, &cartResp))
	assert.Equal(t, 0, cartResp.ItemCount, "cart should be cleared after submission")

	resp = decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/public/session", nil, headers))
	assert.Contains(t, string(resp.Data), submitted.OrderID)

	// 空购物车再次提交
	resp = decodeEnvelope(t, f.do(t, http.MethodPost, "/api/v1/public/orders", nil, headers))
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDinerErrorStates(t *testing.T) {
	f := newRouterFixture(t)

	resp := decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/public/tables/missing-table", nil, nil))
	assert.Equal(t, 404, resp.StatusCode)

	headers := map[string]string{defaultCartSessionHeader: "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"}
	resp = decodeEnvelope(t, f.do(t, http.MethodPost, "/api/v1/public/orders", nil, headers))
	assert.Equal(t, 400, resp.StatusCode, "submitting without a table should fail")

	resp = decodeEnvelope(t, f.do(t, http.MethodPost, "/api/v1/public/cart/items",
		gin.H{"menu_item_id": "nope"}, headers))
	assert.Equal(t, 404, resp.StatusCode)
}

func TestStaffRoutesRequireRole(t *testing.T) {
	f := newRouterFixture(t)

	resp := decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/staff/orders", nil, nil))
	assert.Equal(t, 401, resp.StatusCode)

	staffToken := f.createProfile(t, "cook@example.com", constants.RoleStaff)
	staffHeaders := map[string]string{"Authorization": "Bearer " + staffToken}

	resp = decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/staff/orders", nil, staffHeaders))
	assert.Equal(t, 0, resp.StatusCode, resp.Msg)

	resp = decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/admin/users", nil, staffHeaders))
	assert.Equal(t, 403, resp.StatusCode)

	resp = decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/auth/me", nil, staffHeaders))
	require.Equal(t, 0, resp.StatusCode)
	assert.Contains(t, string(resp.Data), "cook@example.com")

	adminToken := f.createProfile(t, "owner@example.com", constants.RoleAdmin)
	adminHeaders := map[string]string{"Authorization": "Bearer " + adminToken}
	resp = decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/admin/users", nil, adminHeaders))
	assert.Equal(t, 0, resp.StatusCode, resp.Msg)
	resp = decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/staff/recipes", nil, adminHeaders))
	assert.Equal(t, 0, resp.StatusCode, resp.Msg)

	resp = decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/admin/authz/routes", nil, adminHeaders))
	require.Equal(t, 0, resp.StatusCode)
	assert.Contains(t, string(resp.Data), `"object":"/admin/users"`)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newRouterFixture(t)
	f.createProfile(t, "host@example.com", constants.RoleStaff)

	resp := decodeEnvelope(t, f.do(t, http.MethodPost, "/api/v1/auth/login",
		gin.H{"email": "host@example.com", "password": "wrong-pass"}, nil))
	assert.Equal(t, 401, resp.StatusCode)
}

func TestRevokedTokenAfterProfileDelete(t *testing.T) {
	f := newRouterFixture(t)
	adminToken := f.createProfile(t, "boss@example.com", constants.RoleAdmin)
	staffToken := f.createProfile(t, "temp@example.com", constants.RoleStaff)

	profiles, err := f.container.UserAdminService.List()
	require.NoError(t, err)
	var staffID string
	for _, p := range profiles {
		if p.Email == "temp@example.com" {
			staffID = p.ID
		}
	}
	require.NotEmpty(t, staffID)

	resp := decodeEnvelope(t, f.do(t, http.MethodDelete, "/api/v1/admin/users/"+staffID, nil,
		map[string]string{"Authorization": "Bearer " + adminToken}))
	require.Equal(t, 0, resp.StatusCode, resp.Msg)

	resp = decodeEnvelope(t, f.do(t, http.MethodGet, "/api/v1/staff/orders", nil,
		map[string]string{"Authorization": "Bearer " + staffToken}))
	assert.Equal(t, 401, resp.StatusCode)
}

func TestOrderFeedPushesFullListOnChange(t *testing.T) {
	f := newRouterFixture(t)
	staffToken := f.createProfile(t, "line@example.com", constants.RoleStaff)

	order := &models.Order{TableID: f.table.ID, Status: constants.OrderStatusPending, TotalAmount: models.MustMoney("3.00")}
	require.NoError(t, models.DB.Create(order).Error)

	server := httptest.NewServer(f.engine)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/staff/orders/ws?token=" + staffToken
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	type feedMessage struct {
		Event  string `json:"event"`
		Orders []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"orders"`
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var first feedMessage
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "SNAPSHOT", first.Event)
	require.Len(t, first.Orders, 1)

	resp := decodeEnvelope(t, f.do(t, http.MethodPatch, "/api/v1/staff/orders/"+order.ID+"/status",
		gin.H{"status": constants.OrderStatusPreparing},
		map[string]string{"Authorization": "Bearer " + staffToken}))
	require.Equal(t, 0, resp.StatusCode, resp.Msg)

	var next feedMessage
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, constants.RealtimeEventUpdate, next.Event)
	require.Len(t, next.Orders, 1)
	assert.Equal(t, constants.OrderStatusPreparing, next.Orders[0].Status)
}

func TestHealthReportsRedisDisabled(t *testing.T) {
	f := newRouterFixture(t)
	w := f.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "disabled", body["redis"])
}
