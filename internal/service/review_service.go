package service

import (
	"context"
	"time"

	"dinely/internal/authz"
	"dinely/internal/models"
	"dinely/internal/repository"
	"dinely/internal/validation"
)

type ReviewService struct {
	reviewRepo     repository.ReviewRepository
	restaurantRepo repository.RestaurantRepository
}

// CreateReviewInput carries a new review. The user and restaurant are bound
// server-side (token and path), never from the request body.
type CreateReviewInput struct {
	RestaurantID uint
	Rating       int    `json:"rating"`
	Body         string `json:"body"`
}

// UpdateReviewInput carries a partial review update. The review's user and
// restaurant are immutable.
type UpdateReviewInput struct {
	Rating *int    `json:"rating"`
	Body   *string `json:"body"`
}

type ListReviewsInput struct {
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

func NewReviewService(reviewRepo repository.ReviewRepository, restaurantRepo repository.RestaurantRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, restaurantRepo: restaurantRepo}
}

// CreateReview validates and stores a new review. The duplicate pre-check is
// advisory; the composite unique index in the store is the authority, and the
// repository reports a concurrent duplicate insert as the same Conflict.
func (s *ReviewService) CreateReview(ctx context.Context, actor Actor, in CreateReviewInput) (*models.Review, error) {
	if !authz.Allowed(actor.Role, authz.ResourceReview, authz.ActionCreate, false) {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	exists, err := s.restaurantRepo.Exists(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Restaurant", in.RestaurantID)
	}

	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	already, err := s.reviewRepo.ExistsForUserAndRestaurant(ctx, actor.ID, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, models.NewConflictError("You have already reviewed this restaurant")
	}

	review := &models.Review{
		Rating:       in.Rating,
		Body:         in.Body,
		UserID:       actor.ID,
		RestaurantID: in.RestaurantID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, review.ID)
}

func (s *ReviewService) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

// ListReviews lists reviews across restaurants. Non-superadmin actors only
// ever see their own reviews regardless of the requested filter.
func (s *ReviewService) ListReviews(ctx context.Context, actor Actor, in ListReviewsInput) ([]models.Review, error) {
	if !authz.Allowed(actor.Role, authz.ResourceReview, authz.ActionList, false) {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	filter := repository.ReviewFilter{
		UserID:        in.UserID,
		RestaurantID:  in.RestaurantID,
		MinRating:     in.MinRating,
		MaxRating:     in.MaxRating,
		CreatedAfter:  in.CreatedAfter,
		CreatedBefore: in.CreatedBefore,
		OrderBy:       in.OrderBy,
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	if !actor.Role.IsSuperuser() {
		filter.UserID = actor.ID
	}
	return s.reviewRepo.List(ctx, filter)
}

// ListRestaurantReviews is the public nested listing. An unknown restaurant
// is a NotFound, not an empty list.
func (s *ReviewService) ListRestaurantReviews(ctx context.Context, restaurantID uint, in ListReviewsInput) ([]models.Review, error) {
	exists, err := s.restaurantRepo.Exists(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Restaurant", restaurantID)
	}

	return s.reviewRepo.List(ctx, repository.ReviewFilter{
		RestaurantID:  restaurantID,
		MinRating:     in.MinRating,
		MaxRating:     in.MaxRating,
		CreatedAfter:  in.CreatedAfter,
		CreatedBefore: in.CreatedBefore,
		OrderBy:       in.OrderBy,
		Limit:         in.Limit,
		Offset:        in.Offset,
	})
}

func (s *ReviewService) UpdateReview(ctx context.Context, actor Actor, id uint, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner := review.UserID == actor.ID && !actor.Anonymous()
	if !authz.Allowed(actor.Role, authz.ResourceReview, authz.ActionUpdate, owner) {
		return nil, models.NewForbiddenError("You can only edit your own reviews")
	}

	if in.Rating != nil {
		if err := validation.ValidateRating(*in.Rating); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		review.Rating = *in.Rating
	}
	if in.Body != nil {
		review.Body = *in.Body
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, actor Actor, id uint) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	owner := review.UserID == actor.ID && !actor.Anonymous()
	if !authz.Allowed(actor.Role, authz.ResourceReview, authz.ActionDelete, owner) {
		return models.NewForbiddenError("You can only delete your own reviews")
	}

	return s.reviewRepo.Delete(ctx, id)
}
