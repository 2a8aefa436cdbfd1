package repository

import (
	"context"
	"errors"
	"time"

	"dinely/internal/models"

	"gorm.io/gorm"
)

// ReviewFilter narrows and orders review listings.
type ReviewFilter struct {
	UserID        uint
	RestaurantID  uint
	MinRating     int
	MaxRating     int
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	OrderBy       string
	Limit         int
	Offset        int
}

var reviewOrderFields = map[string]string{
	"rating":     "rating",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	ExistsForUserAndRestaurant(ctx context.Context, userID, restaurantID uint) (bool, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ReviewFilter) ([]models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) ExistsForUserAndRestaurant(ctx context.Context, userID, restaurantID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Create inserts a review. The composite (user_id, restaurant_id) unique
// index is the authority on the one-review-per-user rule, so a concurrent
// duplicate surfaces here as a Conflict regardless of any earlier check.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already reviewed this restaurant")
		}
		if isForeignKeyError(err) {
			return models.NewNotFoundError("Restaurant", review.RestaurantID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already reviewed this restaurant")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Review", id)
	}
	return nil
}

func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter) ([]models.Review, error) {
	q := r.db.WithContext(ctx).Model(&models.Review{}).Preload("User")

	if filter.UserID != 0 {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.RestaurantID != 0 {
		q = q.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.MinRating != 0 {
		q = q.Where("rating >= ?", filter.MinRating)
	}
	if filter.MaxRating != 0 {
		q = q.Where("rating <= ?", filter.MaxRating)
	}
	if filter.CreatedAfter != nil {
		q = q.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		q = q.Where("created_at <= ?", *filter.CreatedBefore)
	}

	q = applyOrder(q, filter.OrderBy, reviewOrderFields, "created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var reviews []models.Review
	if err := q.Offset(filter.Offset).Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}
