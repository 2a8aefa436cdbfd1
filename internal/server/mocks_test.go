package server

import (
	"context"

	"dinely/internal/models"
	"dinely/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a testify mock for repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]models.User, error) {
	args := m.Called(ctx, filter)
	if u := args.Get(0); u != nil {
		return u.([]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRestaurantRepository is a testify mock for repository.RestaurantRepository.
type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRestaurantRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRestaurantRepository) Stats(ctx context.Context, id uint) (*models.RestaurantStats, error) {
	args := m.Called(ctx, id)
	if st := args.Get(0); st != nil {
		return st.(*models.RestaurantStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	args := m.Called(ctx, restaurant)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	args := m.Called(ctx, restaurant)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRestaurantRepository) List(ctx context.Context, filter repository.RestaurantFilter) ([]models.Restaurant, error) {
	args := m.Called(ctx, filter)
	if r := args.Get(0); r != nil {
		return r.([]models.Restaurant), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockReviewRepository is a testify mock for repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.Review), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReviewRepository) ExistsForUserAndRestaurant(ctx context.Context, userID, restaurantID uint) (bool, error) {
	args := m.Called(ctx, userID, restaurantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context, filter repository.ReviewFilter) ([]models.Review, error) {
	args := m.Called(ctx, filter)
	if r := args.Get(0); r != nil {
		return r.([]models.Review), args.Error(1)
	}
	return nil, args.Error(1)
}
