package auth

import (
	"github.com/example/littlelemon/pkg/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Caller is the identity a request acts as. The zero value is anonymous.
type Caller struct {
	UserID   uint
	Username string
	Roles    []models.Role
}

func (c Caller) Authenticated() bool {
	return c.UserID != 0
}

func (c Caller) Has(role models.Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (c Caller) IsManager() bool {
	return c.Has(models.RoleManager)
}

func (c Caller) IsDeliveryCrew() bool {
	return c.Has(models.RoleDeliveryCrew)
}

// RequireAuthenticated fails with Unauthenticated for anonymous callers.
func RequireAuthenticated(c Caller) error {
	if !c.Authenticated() {
		return status.Error(codes.Unauthenticated, "Authentication credentials were not provided.")
	}
	return nil
}

// Require is the single authorization predicate: the caller must be
// authenticated and hold role.
func Require(c Caller, role models.Role) error {
	if err := RequireAuthenticated(c); err != nil {
		return err
	}
	if !c.Has(role) {
		return status.Error(codes.PermissionDenied, "You do not have permission to perform this action.")
	}
	return nil
}
