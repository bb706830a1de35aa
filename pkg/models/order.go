package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"not null;index" json:"user"`
	DeliveryCrewID *uint           `gorm:"index" json:"-"`
	DeliveryCrew   *User           `gorm:"constraint:OnDelete:SET NULL" json:"delivery_crew"`
	Status         bool            `gorm:"not null" json:"status"`
	Total          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"total"`
	Date           time.Time       `gorm:"autoCreateTime;not null;index" json:"date"`
	Items          []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"order_items"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a frozen copy of a cart line. It keeps the menu item's id
// and title but no foreign key, so removing a dish never rewrites history.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;uniqueIndex:idx_order_menuitem" json:"-"`
	MenuItemID uint            `gorm:"not null;uniqueIndex:idx_order_menuitem" json:"menuitem_id"`
	Title      string          `gorm:"type:varchar(255);not null" json:"title"`
	Quantity   int             `gorm:"type:integer;not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
