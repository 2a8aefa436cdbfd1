package service

import (
	"context"
	"strings"

	"dinely/internal/authz"
	"dinely/internal/models"
	"dinely/internal/repository"
)

type RestaurantService struct {
	restaurantRepo repository.RestaurantRepository
}

type CreateRestaurantInput struct {
	Name        string   `json:"name"`
	ImageURL    string   `json:"image_url"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Website     string   `json:"website"`
}

// UpdateRestaurantInput carries a partial update; nil fields are left alone.
type UpdateRestaurantInput struct {
	Name        *string  `json:"name"`
	ImageURL    *string  `json:"image_url"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Website     *string  `json:"website"`
}

type ListRestaurantsInput struct {
	Name      string
	NameExact string
	OrderBy   string
	Limit     int
	Offset    int
}

func NewRestaurantService(restaurantRepo repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurantRepo: restaurantRepo}
}

func (s *RestaurantService) ListRestaurants(ctx context.Context, in ListRestaurantsInput) ([]models.Restaurant, error) {
	restaurants, err := s.restaurantRepo.List(ctx, repository.RestaurantFilter{
		Name:      in.Name,
		NameExact: in.NameExact,
		OrderBy:   in.OrderBy,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	for i := range restaurants {
		restaurants[i].TotalRating = models.RoundRating(restaurants[i].TotalRating)
	}
	return restaurants, nil
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	restaurant.TotalRating = models.RoundRating(restaurant.TotalRating)
	return restaurant, nil
}

// GetStats recomputes the aggregate figures for one restaurant on demand.
func (s *RestaurantService) GetStats(ctx context.Context, id uint) (*models.RestaurantStats, error) {
	stats, err := s.restaurantRepo.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	stats.TotalRating = models.RoundRating(stats.TotalRating)
	return stats, nil
}

func (s *RestaurantService) CreateRestaurant(ctx context.Context, actor Actor, in CreateRestaurantInput) (*models.Restaurant, error) {
	if !authz.Allowed(actor.Role, authz.ResourceRestaurant, authz.ActionCreate, false) {
		return nil, models.NewForbiddenError("Only staff can create restaurants")
	}

	const maxNameLen = 200
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxNameLen {
		return nil, models.NewValidationError("Name too long (max 200 characters)")
	}

	restaurant := &models.Restaurant{
		Name:        name,
		ImageURL:    in.ImageURL,
		Description: in.Description,
		Address:     in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Website:     in.Website,
	}
	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (s *RestaurantService) UpdateRestaurant(ctx context.Context, actor Actor, id uint, in UpdateRestaurantInput) (*models.Restaurant, error) {
	if !authz.Allowed(actor.Role, authz.ResourceRestaurant, authz.ActionUpdate, false) {
		return nil, models.NewForbiddenError("Only staff can update restaurants")
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		restaurant.Name = name
	}
	if in.ImageURL != nil {
		restaurant.ImageURL = *in.ImageURL
	}
	if in.Description != nil {
		restaurant.Description = *in.Description
	}
	if in.Address != nil {
		restaurant.Address = *in.Address
	}
	if in.Latitude != nil {
		restaurant.Latitude = in.Latitude
	}
	if in.Longitude != nil {
		restaurant.Longitude = in.Longitude
	}
	if in.Website != nil {
		restaurant.Website = *in.Website
	}

	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	restaurant.TotalRating = models.RoundRating(restaurant.TotalRating)
	return restaurant, nil
}

// DeleteRestaurant removes the restaurant; its reviews go with it via the
// store-level cascade.
func (s *RestaurantService) DeleteRestaurant(ctx context.Context, actor Actor, id uint) error {
	if !authz.Allowed(actor.Role, authz.ResourceRestaurant, authz.ActionDelete, false) {
		return models.NewForbiddenError("Only staff can delete restaurants")
	}
	return s.restaurantRepo.Delete(ctx, id)
}
