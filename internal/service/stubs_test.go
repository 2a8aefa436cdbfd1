package service

import (
	"context"
	"errors"
	"testing"

	"dinely/internal/models"
	"dinely/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restaurantRepoStub is a stub for repository.RestaurantRepository.
type restaurantRepoStub struct {
	getByIDFn func(context.Context, uint) (*models.Restaurant, error)
	existsFn  func(context.Context, uint) (bool, error)
	statsFn   func(context.Context, uint) (*models.RestaurantStats, error)
	createFn  func(context.Context, *models.Restaurant) error
	updateFn  func(context.Context, *models.Restaurant) error
	deleteFn  func(context.Context, uint) error
	listFn    func(context.Context, repository.RestaurantFilter) ([]models.Restaurant, error)
}

func (s *restaurantRepoStub) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	return s.getByIDFn(ctx, id)
}
func (s *restaurantRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *restaurantRepoStub) Stats(ctx context.Context, id uint) (*models.RestaurantStats, error) {
	return s.statsFn(ctx, id)
}
func (s *restaurantRepoStub) Create(ctx context.Context, r *models.Restaurant) error {
	return s.createFn(ctx, r)
}
func (s *restaurantRepoStub) Update(ctx context.Context, r *models.Restaurant) error {
	return s.updateFn(ctx, r)
}
func (s *restaurantRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *restaurantRepoStub) List(ctx context.Context, f repository.RestaurantFilter) ([]models.Restaurant, error) {
	return s.listFn(ctx, f)
}

func noopRestaurantRepo() *restaurantRepoStub {
	return &restaurantRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Restaurant, error) {
			return &models.Restaurant{ID: id}, nil
		},
		existsFn: func(_ context.Context, _ uint) (bool, error) { return true, nil },
		statsFn: func(_ context.Context, _ uint) (*models.RestaurantStats, error) {
			return &models.RestaurantStats{}, nil
		},
		createFn: func(_ context.Context, _ *models.Restaurant) error { return nil },
		updateFn: func(_ context.Context, _ *models.Restaurant) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ repository.RestaurantFilter) ([]models.Restaurant, error) {
			return nil, nil
		},
	}
}

// reviewRepoStub is a stub for repository.ReviewRepository.
type reviewRepoStub struct {
	getByIDFn func(context.Context, uint) (*models.Review, error)
	existsFn  func(context.Context, uint, uint) (bool, error)
	createFn  func(context.Context, *models.Review) error
	updateFn  func(context.Context, *models.Review) error
	deleteFn  func(context.Context, uint) error
	listFn    func(context.Context, repository.ReviewFilter) ([]models.Review, error)
}

func (s *reviewRepoStub) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reviewRepoStub) ExistsForUserAndRestaurant(ctx context.Context, userID, restaurantID uint) (bool, error) {
	return s.existsFn(ctx, userID, restaurantID)
}
func (s *reviewRepoStub) Create(ctx context.Context, r *models.Review) error {
	return s.createFn(ctx, r)
}
func (s *reviewRepoStub) Update(ctx context.Context, r *models.Review) error {
	return s.updateFn(ctx, r)
}
func (s *reviewRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *reviewRepoStub) List(ctx context.Context, f repository.ReviewFilter) ([]models.Review, error) {
	return s.listFn(ctx, f)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Review, error) {
			return &models.Review{ID: id}, nil
		},
		existsFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		createFn: func(_ context.Context, _ *models.Review) error { return nil },
		updateFn: func(_ context.Context, _ *models.Review) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ repository.ReviewFilter) ([]models.Review, error) {
			return nil, nil
		},
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, repository.UserFilter) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error {
	return s.updateFn(ctx, u)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, f repository.UserFilter) ([]models.User, error) {
	return s.listFn(ctx, f)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ repository.UserFilter) ([]models.User, error) {
			return nil, nil
		},
	}
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
