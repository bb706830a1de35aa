package service

import (
	"sync"
	"testing"
	"time"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/events"
	"github.com/example/littlelemon/pkg/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type recorder struct {
	mu     sync.Mutex
	events []*events.Event
}

func (r *recorder) Publish(evt *events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

type fixture struct {
	t        *testing.T
	db       *gorm.DB
	events   *recorder
	logger   *zap.Logger
	catalog  *CatalogService
	cart     *CartService
	orders   *OrderService
	roles    *RoleDirectory
	ratings  *RatingService
	accounts *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	rec := &recorder{}
	log := zap.NewNop()
	roles := NewRoleDirectory(db, rec, log)
	return &fixture{
		t:        t,
		db:       db,
		events:   rec,
		logger:   log,
		catalog:  NewCatalogService(db, rec, log),
		cart:     NewCartService(db, log),
		orders:   NewOrderService(db, rec, log),
		roles:    roles,
		ratings:  NewRatingService(db, rec, log),
		accounts: NewAccountService(db, roles, auth.NewTokenIssuer("test-secret", time.Hour), log),
	}
}

// user creates a user holding roles and returns it as a caller.
func (f *fixture) user(username string, roles ...models.Role) auth.Caller {
	f.t.Helper()
	u := models.User{Username: username, PasswordHash: "x"}
	if err := f.db.Create(&u).Error; err != nil {
		f.t.Fatalf("create user %s: %v", username, err)
	}
	for _, r := range roles {
		if err := f.db.Create(&models.UserRole{UserID: u.ID, Role: r}).Error; err != nil {
			f.t.Fatalf("grant %s to %s: %v", r, username, err)
		}
	}
	return auth.Caller{UserID: u.ID, Username: username, Roles: roles}
}

func (f *fixture) menuItem(title, price, category string) models.MenuItem {
	f.t.Helper()
	item := models.MenuItem{Title: title, Price: decimal.RequireFromString(price), Category: category}
	if err := f.db.Create(&item).Error; err != nil {
		f.t.Fatalf("create menu item %s: %v", title, err)
	}
	return item
}

func (f *fixture) count(model interface{}, query string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		f.t.Fatalf("count: %v", err)
	}
	return n
}

func wantCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	if got := status.Code(err); got != want {
		t.Fatalf("code = %v (%v), want %v", got, err, want)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(i int) *int {
	return &i
}
