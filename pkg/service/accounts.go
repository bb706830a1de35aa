package service

import (
	"context"
	"errors"
	"strings"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/models"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username  string `json:"username" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8"`
	Email     string `json:"email" binding:"omitempty,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Profile is a user together with their current roles.
type Profile struct {
	models.User
	Groups []models.Role `json:"groups"`
}

type AccountService struct {
	db     *gorm.DB
	roles  *RoleDirectory
	tokens *auth.TokenIssuer
	logger *zap.Logger
}

func NewAccountService(db *gorm.DB, roles *RoleDirectory, tokens *auth.TokenIssuer, logger *zap.Logger) *AccountService {
	return &AccountService{
		db:     db,
		roles:  roles,
		tokens: tokens,
		logger: logger.Named("account-service"),
	}
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, invalid("Both username and password are required.")
	}

	var existing models.User
	found, err := first(ctx, s.db.Where("username = ?", username), &existing)
	if err != nil {
		return nil, internal(s.logger, "failed to check username", err)
	}
	if found {
		return nil, invalid("A user with that username already exists.")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, internal(s.logger, "failed to hash password", err)
	}

	user := &models.User{
		Username:     username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("A user with that username already exists.")
		}
		return nil, internal(s.logger, "failed to create user", err)
	}

	s.logger.Info("User registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks credentials and returns a signed token.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (string, error) {
	var user models.User
	found, err := first(ctx, s.db.Where("username = ?", in.Username), &user)
	if err != nil {
		return "", internal(s.logger, "failed to look up user", err)
	}
	if !found || !auth.CheckPassword(user.PasswordHash, in.Password) {
		return "", invalid("Unable to log in with provided credentials.")
	}

	token, err := s.tokens.Issue(&user)
	if err != nil {
		return "", internal(s.logger, "failed to issue token", err)
	}
	return token, nil
}

// Identify resolves a verified token to a caller with fresh roles.
func (s *AccountService) Identify(ctx context.Context, token string) (auth.Caller, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Caller{}, status.Error(codes.Unauthenticated, "Invalid token.")
	}

	var user models.User
	found, err := first(ctx, s.db.Where("id = ?", claims.UserID), &user)
	if err != nil {
		return auth.Caller{}, internal(s.logger, "failed to look up user", err)
	}
	if !found {
		return auth.Caller{}, status.Error(codes.Unauthenticated, "User inactive or deleted.")
	}

	roles, err := s.roles.RolesOf(ctx, user.ID)
	if err != nil {
		return auth.Caller{}, internal(s.logger, "failed to load roles", err)
	}

	return auth.Caller{UserID: user.ID, Username: user.Username, Roles: roles}, nil
}

func (s *AccountService) Me(ctx context.Context, caller auth.Caller) (*Profile, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	var user models.User
	found, err := first(ctx, s.db.Where("id = ?", caller.UserID), &user)
	if err != nil {
		return nil, internal(s.logger, "failed to look up user", err)
	}
	if !found {
		return nil, notFound("User not found.")
	}

	roles, err := s.roles.RolesOf(ctx, user.ID)
	if err != nil {
		return nil, internal(s.logger, "failed to load roles", err)
	}
	if roles == nil {
		roles = []models.Role{}
	}
	return &Profile{User: user, Groups: roles}, nil
}
