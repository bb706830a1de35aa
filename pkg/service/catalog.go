package service

import (
	"context"
	"strings"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/events"
	"github.com/example/littlelemon/pkg/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var maxPrice = decimal.NewFromInt(10000)

type CatalogService struct {
	db     *gorm.DB
	events events.Publisher
	logger *zap.Logger
}

func NewCatalogService(db *gorm.DB, pub events.Publisher, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		db:     db,
		events: publisherOrDiscard(pub),
		logger: logger.Named("catalog-service"),
	}
}

// MenuQuery filters and sorts the public menu listing.
type MenuQuery struct {
	Search   string
	Category string
	Featured *bool
	Ordering string
}

var menuOrderings = map[string]string{
	"title":  "title ASC",
	"-title": "title DESC",
	"price":  "price ASC",
	"-price": "price DESC",
}

// MenuItemInput is the full representation accepted on create and replace.
type MenuItemInput struct {
	Title    string           `json:"title" binding:"required,max=255"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
	Featured bool             `json:"featured"`
	Category string           `json:"category" binding:"required,max=255"`
}

// MenuItemPatch carries only the fields present in a partial update.
type MenuItemPatch struct {
	Title    *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Price    *decimal.Decimal `json:"price"`
	Featured *bool            `json:"featured"`
	Category *string          `json:"category" binding:"omitempty,min=1,max=255"`
}

func (s *CatalogService) List(ctx context.Context, q MenuQuery) ([]models.MenuItem, error) {
	query := s.db.WithContext(ctx).Model(&models.MenuItem{})
	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(category) LIKE ?", like, like)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Featured != nil {
		query = query.Where("featured = ?", *q.Featured)
	}
	if q.Ordering != "" {
		order, ok := menuOrderings[q.Ordering]
		if !ok {
			return nil, invalid("Unsupported ordering %q.", q.Ordering)
		}
		query = query.Order(order)
	}
	query = query.Order("id ASC")

	items := []models.MenuItem{}
	if err := query.Find(&items).Error; err != nil {
		return nil, internal(s.logger, "failed to list menu items", err)
	}
	return items, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	found, err := first(ctx, s.db.Where("id = ?", id), &item)
	if err != nil {
		return nil, internal(s.logger, "failed to get menu item", err)
	}
	if !found {
		return nil, notFound("Menu item not found.")
	}
	return &item, nil
}

// All returns the full catalog for managers, in id order.
func (s *CatalogService) All(ctx context.Context, caller auth.Caller) ([]models.MenuItem, error) {
	if err := auth.Require(caller, models.RoleManager); err != nil {
		return nil, err
	}
	return s.List(ctx, MenuQuery{})
}

func (s *CatalogService) Create(ctx context.Context, caller auth.Caller, in MenuItemInput) (*models.MenuItem, error) {
	if err := auth.Require(caller, models.RoleManager); err != nil {
		return nil, err
	}
	if err := s.validate(in.Title, in.Category, in.Price); err != nil {
		return nil, err
	}

	item := &models.MenuItem{
		Title:    in.Title,
		Price:    in.Price.Round(2),
		Featured: in.Featured,
		Category: in.Category,
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, internal(s.logger, "failed to create menu item", err)
	}

	s.publish(caller, "create_menu_item", item)
	return item, nil
}

// Replace overwrites every field of an existing item.
func (s *CatalogService) Replace(ctx context.Context, caller auth.Caller, id uint, in MenuItemInput) (*models.MenuItem, error) {
	if err := auth.Require(caller, models.RoleManager); err != nil {
		return nil, err
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(in.Title, in.Category, in.Price); err != nil {
		return nil, err
	}

	item.Title = in.Title
	item.Price = in.Price.Round(2)
	item.Featured = in.Featured
	item.Category = in.Category
	if err := s.save(ctx, item); err != nil {
		return nil, err
	}

	s.publish(caller, "update_menu_item", item)
	return item, nil
}

func (s *CatalogService) Patch(ctx context.Context, caller auth.Caller, id uint, in MenuItemPatch) (*models.MenuItem, error) {
	if err := auth.Require(caller, models.RoleManager); err != nil {
		return nil, err
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Featured != nil {
		item.Featured = *in.Featured
	}
	price := item.Price
	if in.Price != nil {
		price = *in.Price
	}
	if err := s.validate(item.Title, item.Category, &price); err != nil {
		return nil, err
	}
	item.Price = price.Round(2)

	if err := s.save(ctx, item); err != nil {
		return nil, err
	}

	s.publish(caller, "update_menu_item", item)
	return item, nil
}

// Delete removes the item and every cart line that references it.
func (s *CatalogService) Delete(ctx context.Context, caller auth.Caller, id uint) error {
	if err := auth.Require(caller, models.RoleManager); err != nil {
		return err
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.CartItem{}).Error; err != nil {
			return wrap("delete cart lines", err)
		}
		return tx.Delete(item).Error
	})
	if err != nil {
		return internal(s.logger, "failed to delete menu item", err)
	}

	s.events.Publish(&events.Event{
		Service:  "catalog-service",
		Action:   "delete_menu_item",
		EntityID: idString(item.ID),
		ActorID:  caller.UserID,
		Data:     map[string]interface{}{"title": item.Title},
	})
	return nil
}

func (s *CatalogService) validate(title, category string, price *decimal.Decimal) error {
	if strings.TrimSpace(title) == "" {
		return invalid("title: This field may not be blank.")
	}
	if strings.TrimSpace(category) == "" {
		return invalid("category: This field may not be blank.")
	}
	if price == nil {
		return invalid("price: This field is required.")
	}
	if !price.Equal(price.Round(2)) {
		return invalid("price: Ensure that there are no more than 2 decimal places.")
	}
	if price.Abs().GreaterThanOrEqual(maxPrice) {
		return invalid("price: Ensure that there are no more than 4 digits before the decimal point.")
	}
	if price.IsNegative() {
		s.logger.Warn("Menu item written with a negative price",
			zap.String("title", title),
			zap.String("price", price.String()))
	}
	return nil
}

func (s *CatalogService) save(ctx context.Context, item *models.MenuItem) error {
	err := s.db.WithContext(ctx).Model(item).Select("title", "price", "featured", "category").Updates(item).Error
	if err != nil {
		return internal(s.logger, "failed to update menu item", err)
	}
	return nil
}

func (s *CatalogService) publish(caller auth.Caller, action string, item *models.MenuItem) {
	s.events.Publish(&events.Event{
		Service:  "catalog-service",
		Action:   action,
		EntityID: idString(item.ID),
		ActorID:  caller.UserID,
		Data: map[string]interface{}{
			"title":    item.Title,
			"price":    item.Price.StringFixed(2),
			"category": item.Category,
			"featured": item.Featured,
		},
	})
}
