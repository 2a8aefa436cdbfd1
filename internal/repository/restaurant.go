package repository

import (
	"context"
	"errors"

	"dinely/internal/models"

	"gorm.io/gorm"
)

// restaurantAggregates fills the computed TotalRating/TotalReviews columns
// from the reviews table on every read. The raw average is rounded in the
// service layer so rounding behavior does not depend on the SQL dialect.
const restaurantAggregates = `restaurants.*,
	(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviews.restaurant_id = restaurants.id) AS total_rating,
	(SELECT COUNT(*) FROM reviews WHERE reviews.restaurant_id = restaurants.id) AS total_reviews`

// RestaurantFilter narrows and orders restaurant listings.
type RestaurantFilter struct {
	Name      string // substring match
	NameExact string
	OrderBy   string
	Limit     int
	Offset    int
}

var restaurantOrderFields = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

// RestaurantRepository defines persistence operations for restaurants.
type RestaurantRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Restaurant, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Stats(ctx context.Context, id uint) (*models.RestaurantStats, error)
	Create(ctx context.Context, restaurant *models.Restaurant) error
	Update(ctx context.Context, restaurant *models.Restaurant) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter RestaurantFilter) ([]models.Restaurant, error)
}

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository returns a new RestaurantRepository implementation.
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).
		Select(restaurantAggregates).
		First(&restaurant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Restaurant", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &restaurant, nil
}

func (r *restaurantRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Stats recomputes the aggregate figures from the reviews table. It is a
// deliberate point-read with no caching: reviews may change between reads.
func (r *restaurantRepository) Stats(ctx context.Context, id uint) (*models.RestaurantStats, error) {
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Restaurant", id)
	}

	var stats models.RestaurantStats
	err = r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS total_rating, COUNT(*) AS total_reviews").
		Where("restaurant_id = ?", id).
		Scan(&stats).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &stats, nil
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	if err := r.db.WithContext(ctx).Create(restaurant).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	if err := r.db.WithContext(ctx).Save(restaurant).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the restaurant; the store cascades its reviews.
func (r *restaurantRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Restaurant{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Restaurant", id)
	}
	return nil
}

func (r *restaurantRepository) List(ctx context.Context, filter RestaurantFilter) ([]models.Restaurant, error) {
	q := r.db.WithContext(ctx).Model(&models.Restaurant{}).Select(restaurantAggregates)

	if filter.NameExact != "" {
		q = q.Where("name = ?", filter.NameExact)
	} else if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	q = applyOrder(q, filter.OrderBy, restaurantOrderFields, "name ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var restaurants []models.Restaurant
	if err := q.Offset(filter.Offset).Find(&restaurants).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return restaurants, nil
}
