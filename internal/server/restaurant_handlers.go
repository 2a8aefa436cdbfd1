package server

import (
	"dinely/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRestaurants handles GET /api/restaurants. Public; each restaurant
// carries its computed total_rating and total_reviews.
func (s *Server) GetRestaurants(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	restaurants, err := s.restaurantService.ListRestaurants(c.Context(), service.ListRestaurantsInput{
		Name:      c.Query("name"),
		NameExact: c.Query("name_exact"),
		OrderBy:   c.Query("order_by"),
		Limit:     p.Limit,
		Offset:    p.Offset,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}

// GetRestaurant handles GET /api/restaurants/:id
func (s *Server) GetRestaurant(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	restaurant, err := s.restaurantService.GetRestaurant(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(restaurant)
}

// CreateRestaurant handles POST /api/restaurants (staff only)
func (s *Server) CreateRestaurant(c *fiber.Ctx) error {
	var req service.CreateRestaurantInput
	if err := c.BodyParser(&req); err != nil {
		return mapServiceError(c, invalidBody())
	}

	restaurant, err := s.restaurantService.CreateRestaurant(c.Context(), actorFromCtx(c), req)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(restaurant)
}

// UpdateRestaurant handles PUT and PATCH /api/restaurants/:id (staff only)
func (s *Server) UpdateRestaurant(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateRestaurantInput
	if err := c.BodyParser(&req); err != nil {
		return mapServiceError(c, invalidBody())
	}

	restaurant, err := s.restaurantService.UpdateRestaurant(c.Context(), actorFromCtx(c), id, req)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(restaurant)
}

// DeleteRestaurant handles DELETE /api/restaurants/:id (staff only)
func (s *Server) DeleteRestaurant(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.restaurantService.DeleteRestaurant(c.Context(), actorFromCtx(c), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
