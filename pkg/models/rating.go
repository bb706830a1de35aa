package models

import (
	"time"
)

// Rating references the menu item by id only; the item may be gone.
type Rating struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_rating_user_menuitem" json:"user"`
	MenuItemID uint      `gorm:"not null;uniqueIndex:idx_rating_user_menuitem" json:"menuitem_id"`
	Rating     int       `gorm:"type:smallint;not null" json:"rating"`
	CreatedAt  time.Time `json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}

// All lists every model for migrations.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserRole{},
		&MenuItem{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Rating{},
	}
}
