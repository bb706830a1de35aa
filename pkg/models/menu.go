package models

import (
	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	Title    string          `gorm:"type:varchar(255);not null;index" json:"title"`
	Price    decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	Featured bool            `gorm:"not null" json:"featured"`
	Category string          `gorm:"type:varchar(255);not null;index" json:"category"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
