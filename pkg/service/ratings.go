package service

import (
	"context"
	"errors"

	"github.com/example/littlelemon/pkg/auth"
	"github.com/example/littlelemon/pkg/events"
	"github.com/example/littlelemon/pkg/models"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

const (
	MinRating = 0
	MaxRating = 5
)

var errDuplicateRating = status.Error(codes.AlreadyExists, "The fields user, menuitem_id must make a unique set.")

type RatingInput struct {
	MenuItemID *int `json:"menuitem_id" binding:"required"`
	Rating     *int `json:"rating" binding:"required,min=0,max=5"`
}

type RatingService struct {
	db     *gorm.DB
	events events.Publisher
	logger *zap.Logger
}

func NewRatingService(db *gorm.DB, pub events.Publisher, logger *zap.Logger) *RatingService {
	return &RatingService{
		db:     db,
		events: publisherOrDiscard(pub),
		logger: logger.Named("rating-service"),
	}
}

func (s *RatingService) List(ctx context.Context) ([]models.Rating, error) {
	ratings := []models.Rating{}
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&ratings).Error; err != nil {
		return nil, internal(s.logger, "failed to list ratings", err)
	}
	return ratings, nil
}

// Create records the caller's rating. Unlike cart lines, a second rating
// for the same item is rejected rather than overwritten.
func (s *RatingService) Create(ctx context.Context, caller auth.Caller, in RatingInput) (*models.Rating, error) {
	if err := auth.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	if in.MenuItemID == nil {
		return nil, invalid("menuitem_id: This field is required.")
	}
	if in.Rating == nil {
		return nil, invalid("rating: This field is required.")
	}
	if *in.MenuItemID <= 0 {
		return nil, invalid("menuitem_id: Ensure this value is greater than or equal to 1.")
	}
	if *in.Rating < MinRating {
		return nil, invalid("rating: Ensure this value is greater than or equal to %d.", MinRating)
	}
	if *in.Rating > MaxRating {
		return nil, invalid("rating: Ensure this value is less than or equal to %d.", MaxRating)
	}

	var existing models.Rating
	found, err := first(ctx, s.db.Where("user_id = ? AND menu_item_id = ?", caller.UserID, *in.MenuItemID), &existing)
	if err != nil {
		return nil, internal(s.logger, "failed to check rating", err)
	}
	if found {
		return nil, errDuplicateRating
	}

	rating := &models.Rating{
		UserID:     caller.UserID,
		MenuItemID: uint(*in.MenuItemID),
		Rating:     *in.Rating,
	}
	if err := s.db.WithContext(ctx).Create(rating).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errDuplicateRating
		}
		return nil, internal(s.logger, "failed to create rating", err)
	}

	s.events.Publish(&events.Event{
		Service:  "rating-service",
		Action:   "create_rating",
		EntityID: idString(rating.MenuItemID),
		ActorID:  caller.UserID,
		Data:     map[string]interface{}{"rating": rating.Rating},
	})
	return rating, nil
}
