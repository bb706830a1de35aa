package service

import (
	"context"
	"math"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxQuantity is the largest quantity a line stores (a 32-bit column).
const MaxQuantity = math.MaxInt32

type CartService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCartService(db *gorm.DB, logger *zap.Logger) *CartService {
	return &CartService{
		db:     db,
		logger: logger.Named("cart-service"),
	}
}

// List returns the caller's own lines.
func (s *CartService) List(ctx context.Context, caller auth.Caller) ([]models.CartItem, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	lines := []models.CartItem{}
	err := s.db.WithContext(ctx).
		Preload("MenuItem").
		Where("user_id = ?", caller.UserID).
		Order("id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, internal(s.logger, "failed to list cart", err)
	}
	return lines, nil
}

// AddOrReplace writes the (caller, menu item) line with the current menu
// price. A second add for the same item overwrites quantity and prices.
func (s *CartService) AddOrReplace(ctx context.Context, caller auth.Caller, menuItemID uint, quantity int) (*models.CartItem, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	if menuItemID == 0 {
		return nil, invalid("Both menuitem_id and quantity are required.")
	}
	if quantity <= 0 {
		return nil, invalid("Quantity must be a positive integer.")
	}
	if quantity > MaxQuantity {
		return nil, invalid("quantity: Ensure this value is less than or equal to %d.", MaxQuantity)
	}

	var item models.MenuItem
	found, err := first(ctx, s.db.Where("id = ?", menuItemID), &item)
	if err != nil {
		return nil, internal(s.logger, "failed to look up menu item", err)
	}
	if !found {
		return nil, notFound("Menu item not found.")
	}

	line := &models.CartItem{
		UserID:     caller.UserID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	err = s.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "unit_price", "price"}),
	}).Create(line).Error
	if err != nil {
		return nil, internal(s.logger, "failed to write cart line", err)
	}

	// Re-read so the id is correct when the upsert hit an existing row.
	var stored models.CartItem
	err = s.db.WithContext(ctx).
		Preload("MenuItem").
		Where("user_id = ? AND menu_item_id = ?", caller.UserID, item.ID).
		First(&stored).Error
	if err != nil {
		return nil, internal(s.logger, "failed to read cart line", err)
	}
	return &stored, nil
}

// Clear removes all of the caller's lines. Clearing an empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, caller auth.Caller) error {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("user_id = ?", caller.UserID).Delete(&models.CartItem{}).Error; err != nil {
		return internal(s.logger, "failed to clear cart", err)
	}
	return nil
}
