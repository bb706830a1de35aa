package service

import (
	"context"
	"strings"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/events"
	"github.com/example/littlelemon/pkg/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleDirectory struct {
	db     *gorm.DB
	events events.Publisher
	logger *zap.Logger
}

func NewRoleDirectory(db *gorm.DB, pub events.Publisher, logger *zap.Logger) *RoleDirectory {
	return &RoleDirectory{
		db:     db,
		events: publisherOrDiscard(pub),
		logger: logger.Named("role-directory"),
	}
}

// RolesOf reads the user's memberships from the store.
func (d *RoleDirectory) RolesOf(ctx context.Context, userID uint) ([]models.Role, error) {
	var roles []models.Role
	err := d.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Order("role ASC").
		Pluck("role", &roles).Error
	if err != nil {
		return nil, wrap("load roles", err)
	}
	return roles, nil
}

func (d *RoleDirectory) ListMembers(ctx context.Context, caller auth.Caller, role models.Role) ([]models.User, error) {
	if err := auth.Require(caller, models.RoleManager); err != nil {
		return nil, err
	}

	users := []models.User{}
	err := d.db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role = ?", role).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, internal(d.logger, "failed to list members", err)
	}
	return users, nil
}

// AddMember grants role to the named user. Granting twice is a no-op.
func (d *RoleDirectory) AddMember(ctx context.Context, caller auth.Caller, role models.Role, username string) (*models.User, error) {
	if err := auth.Require(caller, models.RoleManager); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("Username is required.")
	}

	var user models.User
	found, err := first(ctx, d.db.Where("username = ?", username), &user)
	if err != nil {
		return nil, internal(d.logger, "failed to look up user", err)
	}
	if !found {
		return nil, notFound("User not found.")
	}

	err = d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserRole{UserID: user.ID, Role: role}).Error
	if err != nil {
		return nil, internal(d.logger, "failed to grant role", err)
	}

	d.publish(caller, "grant_role", user.ID, role)
	return &user, nil
}

// RemoveMember revokes role from the user with userID. Revoking a role
// the user does not hold succeeds.
func (d *RoleDirectory) RemoveMember(ctx context.Context, caller auth.Caller, role models.Role, userID uint) error {
	if err := auth.Require(caller, models.RoleManager); err != nil {
		return err
	}

	var user models.User
	found, err := first(ctx, d.db.Where("id = ?", userID), &user)
	if err != nil {
		return internal(d.logger, "failed to look up user", err)
	}
	if !found {
		return notFound("User not found.")
	}

	err = d.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", user.ID, role).
		Delete(&models.UserRole{}).Error
	if err != nil {
		return internal(d.logger, "failed to revoke role", err)
	}

	d.publish(caller, "revoke_role", user.ID, role)
	return nil
}

func (d *RoleDirectory) publish(caller auth.Caller, action string, userID uint, role models.Role) {
	d.events.Publish(&events.Event{
		Service:  "role-directory",
		Action:   action,
		EntityID: idString(userID),
		ActorID:  caller.UserID,
		Data:     map[string]interface{}{"role": string(role)},
	})
}
