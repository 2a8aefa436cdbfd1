package models

import (
	"math"
	"time"
)

// Restaurant is an admin-managed venue. TotalRating and TotalReviews are
// never stored; list and detail queries fill them from the reviews table and
// RoundRating normalizes the average before it leaves the service layer.
type Restaurant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	ImageURL    string    `json:"image_url"`
	Description string    `gorm:"type:text" json:"description"`
	Address     string    `json:"address"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Website     string    `json:"website,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Reviews     []Review  `gorm:"foreignKey:RestaurantID" json:"-"`

	// Computed at query time, not persisted.
	TotalRating  float64 `gorm:"->;-:migration" json:"total_rating"`
	TotalReviews int64   `gorm:"->;-:migration" json:"total_reviews"`
}

// RestaurantStats holds the aggregate review figures for one restaurant.
type RestaurantStats struct {
	TotalRating  float64 `json:"total_rating"`
	TotalReviews int64   `json:"total_reviews"`
}

// RoundRating rounds an average rating to one decimal place using
// round-half-away-from-zero. Ratings are always positive, so this behaves as
// round-half-up: a mean of 3.25 rounds to 3.3.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
