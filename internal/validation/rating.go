package validation

import (
	"fmt"

	"dinely/internal/models"
)

// ValidateRating checks a review rating against the inclusive [1,5] range.
func ValidateRating(rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return fmt.Errorf("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	return nil
}
