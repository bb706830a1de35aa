package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/config"
	"github.com/example/littlelemon/pkg/models"
	"github.com/example/littlelemon/pkg/service"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeLimiter struct {
	mu    sync.Mutex
	keys  []string
	allow bool
	err   error
}

func (l *fakeLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

type harness struct {
	t      *testing.T
	db     *gorm.DB
	tokens *auth.TokenIssuer
	server *Server
}

func newHarness(t *testing.T, limiter Limiter) *harness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := zap.NewNop()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	roles := service.NewRoleDirectory(db, nil, log)
	services := Services{
		Catalog:  service.NewCatalogService(db, nil, log),
		Cart:     service.NewCartService(db, log),
		Orders:   service.NewOrderService(db, nil, log),
		Roles:    roles,
		Ratings:  service.NewRatingService(db, nil, log),
		Accounts: service.NewAccountService(db, roles, tokens, log),
		Audit:    service.NewAuditService(nil, log),
	}
	cfg := &config.Config{Throttle: config.ThrottleConfig{AnonPerMinute: 20, UserPerMinute: 60}}

	return &harness{t: t, db: db, tokens: tokens, server: NewServer(cfg, services, limiter, log)}
}

// login creates a user with roles and returns a bearer token for it.
func (h *harness) login(username string, roles ...models.Role) (string, uint) {
	h.t.Helper()
	user := models.User{Username: username, PasswordHash: "x"}
	if err := h.db.Create(&user).Error; err != nil {
		h.t.Fatalf("create user: %v", err)
	}
	for _, r := range roles {
		h.db.Create(&models.UserRole{UserID: user.ID, Role: r})
	}
	token, err := h.tokens.Issue(&user)
	if err != nil {
		h.t.Fatalf("issue token: %v", err)
	}
	return token, user.ID
}

func (h *harness) menuItem(title, price string) models.MenuItem {
	h.t.Helper()
	item := models.MenuItem{Title: title, Price: decimal.RequireFromString(price), Category: "Mains"}
	if err := h.db.Create(&item).Error; err != nil {
		h.t.Fatalf("create menu item: %v", err)
	}
	return item
}

func (h *harness) do(method, path, token, body string) *httptest.ResponseRecorder {
	h.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	return rec
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func wantBody(t *testing.T, rec *httptest.ResponseRecorder, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(rec.Body.String(), f) {
			t.Errorf("body %s does not contain %s", rec.Body.String(), f)
		}
	}
}

func TestHealth(t *testing.T) {
	h := newHarness(t, nil)
	rec := h.do(http.MethodGet, "/health", "", "")
	wantStatus(t, rec, http.StatusOK)
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestCreateMenuItemRequiresManager(t *testing.T) {
	h := newHarness(t, nil)
	customer, _ := h.login("customer")
	crew, _ := h.login("crew", models.RoleDeliveryCrew)
	manager, _ := h.login("manager", models.RoleManager)

	valid := `{"title": "Greek Salad", "price": "12.50", "category": "Starters"}`
	bodies := []string{valid, `{"title": ""}`, `not json`, ``}

	for _, body := range bodies {
		wantStatus(t, h.do(http.MethodPost, "/api/menu-items", customer, body), http.StatusForbidden)
		wantStatus(t, h.do(http.MethodPost, "/api/menu-items", crew, body), http.StatusForbidden)
	}
	wantStatus(t, h.do(http.MethodPost, "/api/menu-items", "", valid), http.StatusUnauthorized)

	rec := h.do(http.MethodPost, "/api/menu-items", manager, `{"title": "Greek Salad", "category": "Starters"}`)
	wantStatus(t, rec, http.StatusBadRequest)
	var detail errorResponse
	decode(t, rec, &detail)
	if detail.Detail != "price: This field is required." {
		t.Errorf("detail = %q", detail.Detail)
	}

	rec = h.do(http.MethodPost, "/api/menu-items", manager, valid)
	wantStatus(t, rec, http.StatusCreated)
	var item models.MenuItem
	decode(t, rec, &item)
	if item.ID == 0 || item.Title != "Greek Salad" {
		t.Errorf("item = %+v", item)
	}

	// Forbidden comes before not-found.
	wantStatus(t, h.do(http.MethodDelete, "/api/menu-items/999", customer, ""), http.StatusForbidden)
	wantStatus(t, h.do(http.MethodDelete, "/api/menu-items/999", manager, ""), http.StatusNotFound)
	wantStatus(t, h.do(http.MethodGet, "/api/menu-items/abc", "", ""), http.StatusNotFound)
}

func TestMenuItemListing(t *testing.T) {
	h := newHarness(t, nil)
	h.menuItem("Pasta", "10.00")
	h.menuItem("Soup", "4.00")

	rec := h.do(http.MethodGet, "/api/menu-items?ordering=price", "", "")
	wantStatus(t, rec, http.StatusOK)
	var items []models.MenuItem
	decode(t, rec, &items)
	if len(items) != 2 || items[0].Title != "Soup" {
		t.Errorf("items = %+v", items)
	}

	wantStatus(t, h.do(http.MethodGet, "/api/menu-items?featured=perhaps", "", ""), http.StatusBadRequest)
	wantStatus(t, h.do(http.MethodGet, "/api/menu-items?ordering=calories", "", ""), http.StatusBadRequest)
}

func TestCartEndpoints(t *testing.T) {
	h := newHarness(t, nil)
	token, userID := h.login("customer")
	item := h.menuItem("Pasta", "10.00")
	itemID := decimal.NewFromInt(int64(item.ID)).String()

	wantStatus(t, h.do(http.MethodGet, "/api/cart/menu-items", "", ""), http.StatusUnauthorized)

	wantStatus(t, h.do(http.MethodPost, "/api/cart/menu-items", token, `{"menuitem_id": `+itemID+`, "quantity": 2}`), http.StatusCreated)
	rec := h.do(http.MethodPost, "/api/cart/menu-items", token, `{"menuitem_id": "`+itemID+`", "quantity": "3"}`)
	wantStatus(t, rec, http.StatusCreated)
	wantBody(t, rec, `"unit_price":"10.00"`, `"price":"30.00"`)

	var line models.CartItem
	decode(t, rec, &line)
	if line.Quantity != 3 || !line.Price.Equal(decimal.NewFromInt(30)) || line.MenuItem.Title != "Pasta" {
		t.Errorf("line = %+v", line)
	}

	var n int64
	h.db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&n)
	if n != 1 {
		t.Errorf("cart lines = %d, want 1", n)
	}

	tests := []struct {
		body string
		want int
	}{
		{`{"quantity": 1}`, http.StatusBadRequest},
		{`{"menuitem_id": ` + itemID + `}`, http.StatusBadRequest},
		{`{"menuitem_id": ` + itemID + `, "quantity": 0}`, http.StatusBadRequest},
		{`{"menuitem_id": ` + itemID + `, "quantity": "two"}`, http.StatusBadRequest},
		{`{"menuitem_id": 999, "quantity": 1}`, http.StatusNotFound},
		{`{"menuitem_id": 0, "quantity": 1}`, http.StatusBadRequest},
		{`{"menuitem_id": "0", "quantity": 1}`, http.StatusBadRequest},
		{`{"menuitem_id": -1, "quantity": 1}`, http.StatusNotFound},
		{`{"menuitem_id": ` + itemID + `, "quantity": -1}`, http.StatusBadRequest},
		{`{"menuitem_id": ` + itemID + `, "quantity": 2147483648}`, http.StatusBadRequest},
		{`{"menuitem_id": ` + itemID + `, "quantity": 100000}`, http.StatusCreated},
	}
	for _, tt := range tests {
		rec := h.do(http.MethodPost, "/api/cart/menu-items", token, tt.body)
		if rec.Code != tt.want {
			t.Errorf("POST %s = %d, want %d (%s)", tt.body, rec.Code, tt.want, rec.Body.String())
		}
	}

	wantStatus(t, h.do(http.MethodDelete, "/api/cart/menu-items", token, ""), http.StatusNoContent)
	wantStatus(t, h.do(http.MethodDelete, "/api/cart/menu-items", token, ""), http.StatusNoContent)

	rec = h.do(http.MethodGet, "/api/cart/menu-items", token, "")
	wantStatus(t, rec, http.StatusOK)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("cart after clear = %s", rec.Body.String())
	}
}

func TestOrderEndpoints(t *testing.T) {
	h := newHarness(t, nil)
	customer, _ := h.login("customer")
	crew, crewID := h.login("crew", models.RoleDeliveryCrew)
	manager, _ := h.login("manager", models.RoleManager)
	item := h.menuItem("Pasta", "10.00")
	itemID := decimal.NewFromInt(int64(item.ID)).String()

	wantStatus(t, h.do(http.MethodPost, "/api/orders", customer, ""), http.StatusBadRequest)

	h.do(http.MethodPost, "/api/cart/menu-items", customer, `{"menuitem_id": `+itemID+`, "quantity": 2}`)
	rec := h.do(http.MethodPost, "/api/orders", customer, "")
	wantStatus(t, rec, http.StatusCreated)
	wantBody(t, rec, `"total":"20.00"`, `"unit_price":"10.00"`, `"price":"20.00"`)

	var order struct {
		ID           uint                     `json:"id"`
		User         uint                     `json:"user"`
		DeliveryCrew *struct{ ID uint }       `json:"delivery_crew"`
		Status       bool                     `json:"status"`
		Total        decimal.Decimal          `json:"total"`
		Items        []map[string]interface{} `json:"order_items"`
	}
	decode(t, rec, &order)
	if !order.Total.Equal(decimal.NewFromInt(20)) || len(order.Items) != 1 || order.DeliveryCrew != nil {
		t.Fatalf("order = %+v", order)
	}
	orderPath := "/api/orders/" + decimal.NewFromInt(int64(order.ID)).String()
	crewRef := decimal.NewFromInt(int64(crewID)).String()

	wantStatus(t, h.do(http.MethodPatch, orderPath, customer, `{"status": true}`), http.StatusForbidden)
	wantStatus(t, h.do(http.MethodPatch, orderPath, crew, `{"status": 1}`), http.StatusNotFound)
	wantStatus(t, h.do(http.MethodPut, orderPath, customer, `{"status": true}`), http.StatusForbidden)
	wantStatus(t, h.do(http.MethodPatch, orderPath, manager, `{"delivery_crew": `+crewRef+`}`), http.StatusOK)

	wantStatus(t, h.do(http.MethodPatch, orderPath, crew, `{"status": 1, "total": 50}`), http.StatusBadRequest)
	rec = h.do(http.MethodPatch, orderPath, crew, `{"status": 1}`)
	wantStatus(t, rec, http.StatusOK)
	decode(t, rec, &order)
	if !order.Status || !order.Total.Equal(decimal.NewFromInt(20)) || order.DeliveryCrew == nil || order.DeliveryCrew.ID != crewID {
		t.Errorf("order after crew patch = %+v", order)
	}

	for _, token := range []string{customer, crew, manager} {
		rec := h.do(http.MethodGet, "/api/orders", token, "")
		wantStatus(t, rec, http.StatusOK)
		var list []map[string]interface{}
		decode(t, rec, &list)
		if len(list) != 1 {
			t.Errorf("orders visible = %d, want 1", len(list))
		}
	}

	wantStatus(t, h.do(http.MethodDelete, orderPath, crew, ""), http.StatusForbidden)
	wantStatus(t, h.do(http.MethodDelete, orderPath, manager, ""), http.StatusNoContent)
	wantStatus(t, h.do(http.MethodGet, orderPath, customer, ""), http.StatusNotFound)
}

func TestWritesToMissingIDs(t *testing.T) {
	h := newHarness(t, nil)
	customer, _ := h.login("customer")
	crew, _ := h.login("crew", models.RoleDeliveryCrew)
	manager, _ := h.login("manager", models.RoleManager)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{"replace item blank title", http.MethodPut, "/api/menu-items/999", manager, `{"title": ""}`, http.StatusNotFound},
		{"replace item bad json", http.MethodPut, "/api/menu-items/999", manager, `not json`, http.StatusNotFound},
		{"patch item bad price", http.MethodPatch, "/api/menu-items/999", manager, `{"price": "1.234"}`, http.StatusNotFound},
		{"replace item as customer", http.MethodPut, "/api/menu-items/999", customer, `{"title": ""}`, http.StatusForbidden},
		{"replace order bad json", http.MethodPut, "/api/orders/999", manager, `not json`, http.StatusNotFound},
		{"patch order bad json", http.MethodPatch, "/api/orders/999", manager, `not json`, http.StatusNotFound},
		{"crew patch missing order", http.MethodPatch, "/api/orders/999", crew, `{"total": 1}`, http.StatusNotFound},
		{"replace order as customer", http.MethodPut, "/api/orders/999", customer, `not json`, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantStatus(t, h.do(tt.method, tt.path, tt.token, tt.body), tt.want)
		})
	}

	item := h.menuItem("Pasta", "10.00")
	itemPath := "/api/menu-items/" + decimal.NewFromInt(int64(item.ID)).String()
	wantStatus(t, h.do(http.MethodPut, itemPath, manager, `{"title": ""}`), http.StatusBadRequest)
}

func TestOrderPatchWithBothRoles(t *testing.T) {
	h := newHarness(t, nil)
	customer, _ := h.login("customer")
	both, _ := h.login("shift-lead", models.RoleManager, models.RoleDeliveryCrew)
	item := h.menuItem("Pasta", "10.00")
	itemID := decimal.NewFromInt(int64(item.ID)).String()

	h.do(http.MethodPost, "/api/cart/menu-items", customer, `{"menuitem_id": `+itemID+`, "quantity": 1}`)
	rec := h.do(http.MethodPost, "/api/orders", customer, "")
	wantStatus(t, rec, http.StatusCreated)
	var order models.Order
	decode(t, rec, &order)
	orderPath := "/api/orders/" + decimal.NewFromInt(int64(order.ID)).String()

	rec = h.do(http.MethodPatch, orderPath, both, `{"status": 1, "total": 50}`)
	wantStatus(t, rec, http.StatusBadRequest)
	wantBody(t, rec, "Delivery crew can only update the status field.")

	rec = h.do(http.MethodPatch, orderPath, both, `{"status": 1}`)
	wantStatus(t, rec, http.StatusOK)
	wantBody(t, rec, `"status":true`, `"total":"10.00"`)

	// A customer reaching their own order is refused before the body is read.
	wantStatus(t, h.do(http.MethodPatch, orderPath, customer, `not json`), http.StatusForbidden)
}

func TestGroupEndpoints(t *testing.T) {
	h := newHarness(t, nil)
	manager, _ := h.login("manager", models.RoleManager)
	customer, _ := h.login("customer")
	_, targetID := h.login("target")

	wantStatus(t, h.do(http.MethodGet, "/api/groups/delivery-crew/users", customer, ""), http.StatusForbidden)
	wantStatus(t, h.do(http.MethodPost, "/api/groups/delivery-crew/users", customer, `{"username": "target"}`), http.StatusForbidden)
	wantStatus(t, h.do(http.MethodPost, "/api/groups/delivery-crew/users", manager, `{}`), http.StatusBadRequest)
	wantStatus(t, h.do(http.MethodPost, "/api/groups/delivery-crew/users", manager, `{"username": "ghost"}`), http.StatusNotFound)
	wantStatus(t, h.do(http.MethodPost, "/api/groups/delivery-crew/users", manager, `{"username": "target"}`), http.StatusCreated)

	rec := h.do(http.MethodGet, "/api/groups/delivery-crew/users", manager, "")
	wantStatus(t, rec, http.StatusOK)
	var users []models.User
	decode(t, rec, &users)
	if len(users) != 1 || users[0].ID != targetID {
		t.Errorf("crew = %+v", users)
	}

	path := "/api/groups/delivery-crew/users/" + decimal.NewFromInt(int64(targetID)).String()
	wantStatus(t, h.do(http.MethodDelete, path, customer, ""), http.StatusForbidden)
	wantStatus(t, h.do(http.MethodDelete, path, manager, ""), http.StatusOK)
	wantStatus(t, h.do(http.MethodDelete, "/api/groups/manager/users/999", manager, ""), http.StatusNotFound)
}

func TestRatingEndpoints(t *testing.T) {
	h := newHarness(t, nil)
	token, _ := h.login("customer")

	wantStatus(t, h.do(http.MethodPost, "/api/ratings", "", `{"menuitem_id": 1, "rating": 3}`), http.StatusUnauthorized)
	wantStatus(t, h.do(http.MethodPost, "/api/ratings", token, `{"menuitem_id": 1, "rating": 0}`), http.StatusCreated)
	wantStatus(t, h.do(http.MethodPost, "/api/ratings", token, `{"menuitem_id": 2, "rating": 5}`), http.StatusCreated)

	rec := h.do(http.MethodPost, "/api/ratings", token, `{"menuitem_id": 3, "rating": 6}`)
	wantStatus(t, rec, http.StatusBadRequest)
	var detail errorResponse
	decode(t, rec, &detail)
	if detail.Detail != "rating: Ensure this value is less than or equal to 5." {
		t.Errorf("detail = %q", detail.Detail)
	}

	wantStatus(t, h.do(http.MethodPost, "/api/ratings", token, `{"menuitem_id": 1, "rating": 4}`), http.StatusBadRequest)
	wantStatus(t, h.do(http.MethodPost, "/api/ratings", token, `{"menuitem_id": 4}`), http.StatusBadRequest)

	rec = h.do(http.MethodGet, "/api/ratings", "", "")
	wantStatus(t, rec, http.StatusOK)
	var ratings []models.Rating
	decode(t, rec, &ratings)
	if len(ratings) != 2 {
		t.Errorf("ratings = %+v", ratings)
	}
}

func TestAccountEndpoints(t *testing.T) {
	h := newHarness(t, nil)

	wantStatus(t, h.do(http.MethodPost, "/api/auth/users", "", `{"username": "mario"}`), http.StatusBadRequest)
	wantStatus(t, h.do(http.MethodPost, "/api/auth/users", "", `{"username": "mario", "password": "lemon-pass"}`), http.StatusCreated)
	wantStatus(t, h.do(http.MethodPost, "/api/auth/users", "", `{"username": "mario", "password": "lemon-pass"}`), http.StatusBadRequest)

	wantStatus(t, h.do(http.MethodPost, "/api/auth/token/login", "", `{"username": "mario", "password": "nope-nope"}`), http.StatusBadRequest)
	rec := h.do(http.MethodPost, "/api/auth/token/login", "", `{"username": "mario", "password": "lemon-pass"}`)
	wantStatus(t, rec, http.StatusOK)
	var tok tokenResponse
	decode(t, rec, &tok)

	rec = h.do(http.MethodGet, "/api/auth/users/me", tok.AuthToken, "")
	wantStatus(t, rec, http.StatusOK)
	var me struct {
		Username string   `json:"username"`
		Groups   []string `json:"groups"`
	}
	decode(t, rec, &me)
	if me.Username != "mario" || me.Groups == nil {
		t.Errorf("me = %+v", me)
	}

	wantStatus(t, h.do(http.MethodGet, "/api/auth/users/me", "", ""), http.StatusUnauthorized)
	wantStatus(t, h.do(http.MethodGet, "/api/auth/users/me", "garbage", ""), http.StatusUnauthorized)

	req := httptest.NewRequest(http.MethodGet, "/api/menu-items", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec = httptest.NewRecorder()
	h.server.Handler().ServeHTTP(rec, req)
	wantStatus(t, rec, http.StatusUnauthorized)
}

func TestExportMenuItems(t *testing.T) {
	h := newHarness(t, nil)
	manager, _ := h.login("manager", models.RoleManager)
	customer, _ := h.login("customer")
	h.menuItem("Pasta", "10.00")

	wantStatus(t, h.do(http.MethodGet, "/api/menu-items/export", customer, ""), http.StatusForbidden)

	rec := h.do(http.MethodGet, "/api/menu-items/export", manager, "")
	wantStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q", ct)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("body is not an xlsx archive")
	}
}

func TestThrottle(t *testing.T) {
	denied := &fakeLimiter{allow: false}
	h := newHarness(t, denied)
	token, userID := h.login("customer")

	rec := h.do(http.MethodGet, "/api/menu-items", "", "")
	wantStatus(t, rec, http.StatusTooManyRequests)
	h.do(http.MethodGet, "/api/menu-items", token, "")
	wantStatus(t, h.do(http.MethodGet, "/health", "", ""), http.StatusOK)

	if len(denied.keys) != 2 || !strings.HasPrefix(denied.keys[0], "anon:") {
		t.Fatalf("keys = %v", denied.keys)
	}
	if want := "user:" + decimal.NewFromInt(int64(userID)).String(); denied.keys[1] != want {
		t.Errorf("user key = %q, want %q", denied.keys[1], want)
	}

	broken := newHarness(t, &fakeLimiter{err: errors.New("redis down")})
	wantStatus(t, broken.do(http.MethodGet, "/api/menu-items", "", ""), http.StatusOK)
}

func TestAuditLogsEndpoint(t *testing.T) {
	h := newHarness(t, nil)
	manager, _ := h.login("manager", models.RoleManager)
	customer, _ := h.login("customer")

	wantStatus(t, h.do(http.MethodGet, "/api/audit-logs", customer, ""), http.StatusForbidden)
	wantStatus(t, h.do(http.MethodGet, "/api/audit-logs?limit=ten", manager, ""), http.StatusBadRequest)
	wantStatus(t, h.do(http.MethodGet, "/api/audit-logs", manager, ""), http.StatusServiceUnavailable)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code codes.Code
		want int
	}{
		{codes.InvalidArgument, http.StatusBadRequest},
		{codes.AlreadyExists, http.StatusBadRequest},
		{codes.Unauthenticated, http.StatusUnauthorized},
		{codes.PermissionDenied, http.StatusForbidden},
		{codes.NotFound, http.StatusNotFound},
		{codes.ResourceExhausted, http.StatusTooManyRequests},
		{codes.Internal, http.StatusInternalServerError},
		{codes.Unknown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := httpStatus(tt.code); got != tt.want {
			t.Errorf("httpStatus(%v) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
