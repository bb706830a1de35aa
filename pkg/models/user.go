package models

import (
	"time"
)

// Role names a staff group. Users holding neither role are customers.
type Role string

const (
	RoleManager      Role = "Manager"
	RoleDeliveryCrew Role = "Delivery crew"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(254)" json:"email"`
	FirstName    string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150)" json:"last_name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserRole is one membership in the user/role relation. The composite key
// makes grants idempotent.
type UserRole struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false"`
	Role      Role      `gorm:"primaryKey;type:varchar(32)"`
	CreatedAt time.Time
}

func (UserRole) TableName() string {
	return "user_roles"
}
