package service

import (
	"context"
	"testing"

	"github.com/example/littlelemon/pkg/models"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
)

func priceOf(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCatalogCreateRequiresManager(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.user("customer")
	crew := f.user("crew", models.RoleDeliveryCrew)
	manager := f.user("manager", models.RoleManager)

	valid := MenuItemInput{Title: "Greek Salad", Price: priceOf("12.50"), Category: "Starters"}
	invalidInput := MenuItemInput{Title: "", Price: nil}

	for _, in := range []MenuItemInput{valid, invalidInput} {
		_, err := f.catalog.Create(ctx, customer, in)
		wantCode(t, err, codes.PermissionDenied)
		_, err = f.catalog.Create(ctx, crew, in)
		wantCode(t, err, codes.PermissionDenied)
	}

	item, err := f.catalog.Create(ctx, manager, valid)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID == 0 || !item.Price.Equal(dec("12.5")) {
		t.Errorf("item = %+v", item)
	}
	if got := f.events.actions(); len(got) != 1 || got[0] != "create_menu_item" {
		t.Errorf("events = %v", got)
	}
}

func TestCatalogAuthorizationBeforeExistence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.user("customer")
	manager := f.user("manager", models.RoleManager)

	in := MenuItemInput{Title: "Bruschetta", Price: priceOf("7"), Category: "Starters"}

	_, err := f.catalog.Replace(ctx, customer, 999, in)
	wantCode(t, err, codes.PermissionDenied)
	wantCode(t, f.catalog.Delete(ctx, customer, 999), codes.PermissionDenied)

	_, err = f.catalog.Replace(ctx, manager, 999, in)
	wantCode(t, err, codes.NotFound)
	wantCode(t, f.catalog.Delete(ctx, manager, 999), codes.NotFound)

	_, err = f.catalog.Get(ctx, 999)
	wantCode(t, err, codes.NotFound)
}

func TestCatalogValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.user("manager", models.RoleManager)

	tests := []struct {
		name string
		in   MenuItemInput
		want codes.Code
	}{
		{"blank title", MenuItemInput{Title: " ", Price: priceOf("1"), Category: "Mains"}, codes.InvalidArgument},
		{"blank category", MenuItemInput{Title: "Pasta", Price: priceOf("1"), Category: ""}, codes.InvalidArgument},
		{"missing price", MenuItemInput{Title: "Pasta", Category: "Mains"}, codes.InvalidArgument},
		{"three decimals", MenuItemInput{Title: "Pasta", Price: priceOf("1.005"), Category: "Mains"}, codes.InvalidArgument},
		{"too many digits", MenuItemInput{Title: "Pasta", Price: priceOf("10000"), Category: "Mains"}, codes.InvalidArgument},
		{"max price", MenuItemInput{Title: "Caviar", Price: priceOf("9999.99"), Category: "Mains"}, codes.OK},
		{"trailing zero", MenuItemInput{Title: "Soup", Price: priceOf("4.500"), Category: "Mains"}, codes.OK},
		{"negative price flagged only", MenuItemInput{Title: "Voucher", Price: priceOf("-5"), Category: "Misc"}, codes.OK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.catalog.Create(ctx, manager, tt.in)
			wantCode(t, err, tt.want)
		})
	}
}

func TestCatalogListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.menuItem("Lemon Dessert", "6.00", "Desserts")
	f.menuItem("Greek Salad", "12.50", "Starters")
	f.menuItem("Grilled Fish", "20.00", "Mains")
	featured := models.MenuItem{Title: "Bruschetta", Price: dec("7.25"), Category: "Starters", Featured: true}
	f.db.Create(&featured)

	titles := func(items []models.MenuItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Title
		}
		return out
	}

	items, err := f.catalog.List(ctx, MenuQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("List() = %v", titles(items))
	}

	items, _ = f.catalog.List(ctx, MenuQuery{Search: "starter"})
	if got := titles(items); len(got) != 2 {
		t.Errorf("search starter = %v", got)
	}

	items, _ = f.catalog.List(ctx, MenuQuery{Search: "lemon"})
	if got := titles(items); len(got) != 1 || got[0] != "Lemon Dessert" {
		t.Errorf("search lemon = %v", got)
	}

	items, _ = f.catalog.List(ctx, MenuQuery{Category: "Mains"})
	if got := titles(items); len(got) != 1 || got[0] != "Grilled Fish" {
		t.Errorf("category Mains = %v", got)
	}

	yes := true
	items, _ = f.catalog.List(ctx, MenuQuery{Featured: &yes})
	if got := titles(items); len(got) != 1 || got[0] != "Bruschetta" {
		t.Errorf("featured = %v", got)
	}

	items, _ = f.catalog.List(ctx, MenuQuery{Ordering: "-price"})
	if got := titles(items); got[0] != "Grilled Fish" || got[3] != "Lemon Dessert" {
		t.Errorf("ordering -price = %v", got)
	}

	items, _ = f.catalog.List(ctx, MenuQuery{Ordering: "title"})
	if got := titles(items); got[0] != "Bruschetta" {
		t.Errorf("ordering title = %v", got)
	}

	_, err = f.catalog.List(ctx, MenuQuery{Ordering: "calories"})
	wantCode(t, err, codes.InvalidArgument)
}

func TestCatalogReplaceAndPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.user("manager", models.RoleManager)
	item := f.menuItem("Pasta", "10.00", "Mains")

	updated, err := f.catalog.Replace(ctx, manager, item.ID, MenuItemInput{Title: "Pasta Carbonara", Price: priceOf("11.75"), Category: "Mains", Featured: true})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if updated.Title != "Pasta Carbonara" || !updated.Featured || !updated.Price.Equal(dec("11.75")) {
		t.Errorf("updated = %+v", updated)
	}

	no := false
	patched, err := f.catalog.Patch(ctx, manager, item.ID, MenuItemPatch{Featured: &no})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if patched.Featured || patched.Title != "Pasta Carbonara" {
		t.Errorf("patched = %+v", patched)
	}

	stored, _ := f.catalog.Get(ctx, item.ID)
	if stored.Featured {
		t.Error("featured=false was not persisted")
	}

	_, err = f.catalog.Patch(ctx, manager, item.ID, MenuItemPatch{Price: priceOf("1.234")})
	wantCode(t, err, codes.InvalidArgument)
}

func TestCatalogDeleteCascadesCartLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	manager := f.user("manager", models.RoleManager)
	customer := f.user("customer")
	item := f.menuItem("Pasta", "10.00", "Mains")
	other := f.menuItem("Soup", "5.00", "Starters")

	if _, err := f.cart.AddOrReplace(ctx, customer, item.ID, 2); err != nil {
		t.Fatalf("AddOrReplace: %v", err)
	}
	if _, err := f.cart.AddOrReplace(ctx, customer, other.ID, 1); err != nil {
		t.Fatalf("AddOrReplace: %v", err)
	}

	if err := f.catalog.Delete(ctx, manager, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n := f.count(&models.CartItem{}, "menu_item_id = ?", item.ID); n != 0 {
		t.Errorf("cart lines for deleted item = %d, want 0", n)
	}
	if n := f.count(&models.CartItem{}, ""); n != 1 {
		t.Errorf("remaining cart lines = %d, want 1", n)
	}
	_, err := f.catalog.Get(ctx, item.ID)
	wantCode(t, err, codes.NotFound)
}
