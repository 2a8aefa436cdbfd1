package server

import (
	"errors"

	"dinely/internal/middleware"
	"dinely/internal/models"
	"dinely/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRestaurantReviews handles GET /api/restaurants/:id/reviews. Public; an
// unknown restaurant is a 404, not an empty list.
func (s *Server) GetRestaurantReviews(c *fiber.Ctx) error {
	restaurantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	reviews, err := s.reviewService.ListRestaurantReviews(c.Context(), restaurantID, service.ListReviewsInput{
		MinRating:     c.QueryInt("min_rating", 0),
		MaxRating:     c.QueryInt("max_rating", 0),
		CreatedAfter:  parseTimeQuery(c, "created_after"),
		CreatedBefore: parseTimeQuery(c, "created_before"),
		OrderBy:       c.Query("order_by"),
		Limit:         p.Limit,
		Offset:        p.Offset,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// CreateRestaurantReview handles POST /api/restaurants/:id/reviews. The
// review's user comes from the token and its restaurant from the path;
// anything the client sends for either is ignored.
func (s *Server) CreateRestaurantReview(c *fiber.Ctx) error {
	restaurantID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating int    `json:"rating"`
		Body   string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return mapServiceError(c, invalidBody())
	}

	review, err := s.reviewService.CreateReview(c.Context(), actorFromCtx(c), service.CreateReviewInput{
		RestaurantID: restaurantID,
		Rating:       req.Rating,
		Body:         req.Body,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
			middleware.ReviewConflicts.Inc()
		}
		return mapServiceError(c, err)
	}

	middleware.ReviewsCreated.Inc()
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetReviews handles GET /api/reviews. Authenticated; non-superadmins only
// ever see their own reviews.
func (s *Server) GetReviews(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	reviews, err := s.reviewService.ListReviews(c.Context(), actorFromCtx(c), service.ListReviewsInput{
		UserID:        uint(c.QueryInt("user_id", 0)),
		RestaurantID:  uint(c.QueryInt("restaurant_id", 0)),
		MinRating:     c.QueryInt("min_rating", 0),
		MaxRating:     c.QueryInt("max_rating", 0),
		CreatedAfter:  parseTimeQuery(c, "created_after"),
		CreatedBefore: parseTimeQuery(c, "created_before"),
		OrderBy:       c.Query("order_by"),
		Limit:         p.Limit,
		Offset:        p.Offset,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// GetReview handles GET /api/reviews/:id (public)
func (s *Server) GetReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewService.GetReview(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(review)
}

// UpdateReview handles PATCH /api/reviews/:id (owner only)
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateReviewInput
	if err := c.BodyParser(&req); err != nil {
		return mapServiceError(c, invalidBody())
	}

	review, err := s.reviewService.UpdateReview(c.Context(), actorFromCtx(c), id, req)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id (owner or staff)
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewService.DeleteReview(c.Context(), actorFromCtx(c), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
