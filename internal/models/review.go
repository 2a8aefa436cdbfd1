package models

import (
	"encoding/json"
	"time"

	"github.com/dustin/go-humanize"
)

// Review rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a single user's opinion of a restaurant. The composite unique
// index enforces at-most-one review per (user, restaurant) pair at write
// time, which is what makes concurrent duplicate creates safe. Both foreign
// keys cascade so deleting a user or restaurant removes its reviews in the
// store, not in application code.
type Review struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Rating       int         `gorm:"not null" json:"rating"`
	Body         string      `gorm:"type:text" json:"body"`
	UserID       uint        `gorm:"not null;uniqueIndex:idx_reviews_user_restaurant" json:"user_id"`
	User         User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	RestaurantID uint        `gorm:"not null;uniqueIndex:idx_reviews_user_restaurant;index" json:"restaurant_id"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// IsEdited reports whether the review was changed after creation. The
// one-second slack absorbs the separate timestamps GORM writes on insert.
func (r *Review) IsEdited() bool {
	return r.UpdatedAt.After(r.CreatedAt.Add(time.Second))
}

// TimeSincePosted renders the elapsed time since creation, e.g. "2 days ago".
func (r *Review) TimeSincePosted() string {
	return humanize.Time(r.CreatedAt)
}

// reviewAuthor is the public projection of the reviewer. Reviews are
// world-readable, so everything beyond the display identity stays private.
type reviewAuthor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// MarshalJSON adds the derived time_since_posted and is_edited fields to the
// serialized review and trims the embedded user down to its public identity.
func (r Review) MarshalJSON() ([]byte, error) {
	type alias Review
	return json.Marshal(struct {
		alias
		User            reviewAuthor `json:"user"`
		TimeSincePosted string       `json:"time_since_posted"`
		IsEdited        bool         `json:"is_edited"`
	}{
		alias:           alias(r),
		User:            reviewAuthor{ID: r.User.ID, Username: r.User.Username},
		TimeSincePosted: r.TimeSincePosted(),
		IsEdited:        r.IsEdited(),
	})
}
