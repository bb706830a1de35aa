package models

import (
	"github.com/shopspring/decimal"
)

// CartItem is a staged selection. Price is UnitPrice times Quantity, with
// UnitPrice copied from the menu when the line was written.
type CartItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;uniqueIndex:idx_cart_user_menuitem" json:"-"`
	MenuItemID uint            `gorm:"not null;uniqueIndex:idx_cart_user_menuitem" json:"-"`
	MenuItem   MenuItem        `gorm:"constraint:OnDelete:CASCADE" json:"menuitem"`
	Quantity   int             `gorm:"type:integer;not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
