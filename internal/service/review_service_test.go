package service

import (
	"context"
	"testing"

	"dinely/internal/models"
	"dinely/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	regularActor = Actor{ID: 1, Username: "alice", Role: models.RoleUser}
	otherActor   = Actor{ID: 2, Username: "bob", Role: models.RoleUser}
	adminActor   = Actor{ID: 3, Username: "carol", Role: models.RoleAdmin}
	superActor   = Actor{ID: 4, Username: "dave", Role: models.RoleSuperAdmin}
	anonActor    = Actor{}
)

func TestCreateReview(t *testing.T) {
	t.Parallel()

	t.Run("happy path binds user and restaurant", func(t *testing.T) {
		t.Parallel()
		reviews := noopReviewRepo()
		var created *models.Review
		reviews.createFn = func(_ context.Context, r *models.Review) error {
			r.ID = 42
			created = r
			return nil
		}
		reviews.getByIDFn = func(_ context.Context, id uint) (*models.Review, error) {
			return created, nil
		}
		svc := NewReviewService(reviews, noopRestaurantRepo())

		review, err := svc.CreateReview(context.Background(), regularActor, CreateReviewInput{
			RestaurantID: 7, Rating: 4, Body: "great pasta",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(1), review.UserID)
		assert.Equal(t, uint(7), review.RestaurantID)
		assert.Equal(t, 4, review.Rating)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		t.Parallel()
		svc := NewReviewService(noopReviewRepo(), noopRestaurantRepo())
		_, err := svc.CreateReview(context.Background(), anonActor, CreateReviewInput{RestaurantID: 7, Rating: 4})
		assertAppErrorCode(t, err, "UNAUTHORIZED")
	})

	t.Run("missing restaurant is not found", func(t *testing.T) {
		t.Parallel()
		restaurants := noopRestaurantRepo()
		restaurants.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := NewReviewService(noopReviewRepo(), restaurants)

		_, err := svc.CreateReview(context.Background(), regularActor, CreateReviewInput{RestaurantID: 99, Rating: 4})
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("rating out of range is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewReviewService(noopReviewRepo(), noopRestaurantRepo())

		for _, rating := range []int{0, 6, -1} {
			_, err := svc.CreateReview(context.Background(), regularActor, CreateReviewInput{RestaurantID: 7, Rating: rating})
			assertAppErrorCode(t, err, "VALIDATION_ERROR")
		}
	})

	t.Run("duplicate review is a conflict", func(t *testing.T) {
		t.Parallel()
		reviews := noopReviewRepo()
		reviews.existsFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		svc := NewReviewService(reviews, noopRestaurantRepo())

		_, err := svc.CreateReview(context.Background(), regularActor, CreateReviewInput{RestaurantID: 7, Rating: 4})
		assertAppErrorCode(t, err, "CONFLICT")
	})

	t.Run("constraint race surfaces as the same conflict", func(t *testing.T) {
		t.Parallel()
		reviews := noopReviewRepo()
		// Pre-check passes; a concurrent insert wins and the store reports
		// the unique violation through the repository.
		reviews.createFn = func(_ context.Context, _ *models.Review) error {
			return models.NewConflictError("You have already reviewed this restaurant")
		}
		svc := NewReviewService(reviews, noopRestaurantRepo())

		_, err := svc.CreateReview(context.Background(), regularActor, CreateReviewInput{RestaurantID: 7, Rating: 4})
		assertAppErrorCode(t, err, "CONFLICT")
	})
}

func TestUpdateReview(t *testing.T) {
	t.Parallel()

	ownedReview := func() *reviewRepoStub {
		reviews := noopReviewRepo()
		reviews.getByIDFn = func(_ context.Context, id uint) (*models.Review, error) {
			return &models.Review{ID: id, Rating: 3, Body: "ok", UserID: regularActor.ID, RestaurantID: 7}, nil
		}
		return reviews
	}

	t.Run("owner can update rating and body", func(t *testing.T) {
		t.Parallel()
		reviews := ownedReview()
		var saved *models.Review
		reviews.updateFn = func(_ context.Context, r *models.Review) error {
			saved = r
			return nil
		}
		svc := NewReviewService(reviews, noopRestaurantRepo())

		rating := 5
		body := "changed my mind"
		review, err := svc.UpdateReview(context.Background(), regularActor, 1, UpdateReviewInput{Rating: &rating, Body: &body})
		require.NoError(t, err)
		assert.Equal(t, 5, review.Rating)
		assert.Equal(t, "changed my mind", review.Body)
		require.NotNil(t, saved)
		assert.Equal(t, regularActor.ID, saved.UserID, "owner must not change")
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewReviewService(ownedReview(), noopRestaurantRepo())
		rating := 5
		_, err := svc.UpdateReview(context.Background(), otherActor, 1, UpdateReviewInput{Rating: &rating})
		assertAppErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("staff cannot rewrite a foreign review", func(t *testing.T) {
		t.Parallel()
		svc := NewReviewService(ownedReview(), noopRestaurantRepo())
		rating := 1
		_, err := svc.UpdateReview(context.Background(), adminActor, 1, UpdateReviewInput{Rating: &rating})
		assertAppErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("rating bounds still apply", func(t *testing.T) {
		t.Parallel()
		svc := NewReviewService(ownedReview(), noopRestaurantRepo())
		rating := 6
		_, err := svc.UpdateReview(context.Background(), regularActor, 1, UpdateReviewInput{Rating: &rating})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestDeleteReview(t *testing.T) {
	t.Parallel()

	ownedReview := func(deleted *uint) *reviewRepoStub {
		reviews := noopReviewRepo()
		reviews.getByIDFn = func(_ context.Context, id uint) (*models.Review, error) {
			return &models.Review{ID: id, UserID: regularActor.ID}, nil
		}
		reviews.deleteFn = func(_ context.Context, id uint) error {
			if deleted != nil {
				*deleted = id
			}
			return nil
		}
		return reviews
	}

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		var deleted uint
		svc := NewReviewService(ownedReview(&deleted), noopRestaurantRepo())
		require.NoError(t, svc.DeleteReview(context.Background(), regularActor, 9))
		assert.Equal(t, uint(9), deleted)
	})

	t.Run("staff can delete a foreign review", func(t *testing.T) {
		t.Parallel()
		var deleted uint
		svc := NewReviewService(ownedReview(&deleted), noopRestaurantRepo())
		require.NoError(t, svc.DeleteReview(context.Background(), adminActor, 9))
		assert.Equal(t, uint(9), deleted)
	})

	t.Run("other regular user is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewReviewService(ownedReview(nil), noopRestaurantRepo())
		err := svc.DeleteReview(context.Background(), otherActor, 9)
		assertAppErrorCode(t, err, "FORBIDDEN")
	})

	t.Run("anonymous is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewReviewService(ownedReview(nil), noopRestaurantRepo())
		err := svc.DeleteReview(context.Background(), anonActor, 9)
		assertAppErrorCode(t, err, "FORBIDDEN")
	})
}

func TestListReviews(t *testing.T) {
	t.Parallel()

	t.Run("regular user is scoped to their own reviews", func(t *testing.T) {
		t.Parallel()
		reviews := noopReviewRepo()
		var gotUserID uint
		reviews.listFn = func(_ context.Context, f repository.ReviewFilter) ([]models.Review, error) {
			gotUserID = f.UserID
			return nil, nil
		}
		svc := NewReviewService(reviews, noopRestaurantRepo())

		// Asking for someone else's reviews is silently narrowed.
		_, err := svc.ListReviews(context.Background(), regularActor, ListReviewsInput{UserID: otherActor.ID, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, regularActor.ID, gotUserID)
	})

	t.Run("superadmin sees the requested scope", func(t *testing.T) {
		t.Parallel()
		reviews := noopReviewRepo()
		var gotUserID uint
		reviews.listFn = func(_ context.Context, f repository.ReviewFilter) ([]models.Review, error) {
			gotUserID = f.UserID
			return nil, nil
		}
		svc := NewReviewService(reviews, noopRestaurantRepo())

		_, err := svc.ListReviews(context.Background(), superActor, ListReviewsInput{UserID: otherActor.ID, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, otherActor.ID, gotUserID)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		t.Parallel()
		svc := NewReviewService(noopReviewRepo(), noopRestaurantRepo())
		_, err := svc.ListReviews(context.Background(), anonActor, ListReviewsInput{Limit: 10})
		assertAppErrorCode(t, err, "UNAUTHORIZED")
	})
}

func TestListRestaurantReviews(t *testing.T) {
	t.Parallel()

	t.Run("unknown restaurant is not found", func(t *testing.T) {
		t.Parallel()
		restaurants := noopRestaurantRepo()
		restaurants.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := NewReviewService(noopReviewRepo(), restaurants)

		_, err := svc.ListRestaurantReviews(context.Background(), 99, ListReviewsInput{Limit: 10})
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("listing is scoped to the restaurant", func(t *testing.T) {
		t.Parallel()
		reviews := noopReviewRepo()
		var gotRestaurantID uint
		reviews.listFn = func(_ context.Context, f repository.ReviewFilter) ([]models.Review, error) {
			gotRestaurantID = f.RestaurantID
			return []models.Review{{ID: 1, RestaurantID: f.RestaurantID}}, nil
		}
		svc := NewReviewService(reviews, noopRestaurantRepo())

		got, err := svc.ListRestaurantReviews(context.Background(), 7, ListReviewsInput{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, uint(7), gotRestaurantID)
		require.Len(t, got, 1)
	})
}
