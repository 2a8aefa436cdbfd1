package server

import (
	"dinely/internal/models"
	"dinely/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/users/register. Public; every new account gets
// the plain user role, and the response never carries the password hash.
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return mapServiceError(c, invalidBody())
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	user, err := s.userService.Register(c.Context(), req)
	if err != nil {
		return mapServiceError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// ChangePassword handles POST /api/users/:username/change_password. Owners
// must supply their current password; staff resets skip it.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	username := c.Params("username")

	var req service.ChangePasswordInput
	if err := c.BodyParser(&req); err != nil {
		return mapServiceError(c, invalidBody())
	}

	if err := s.userService.ChangePassword(c.Context(), actorFromCtx(c), username, req); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed"})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	actor := actorFromCtx(c)

	user, err := s.userService.GetByID(c.Context(), actor.ID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// GetAllUsers handles GET /api/users (staff only)
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	var isActive *bool
	if c.Query("is_active") != "" {
		v := c.QueryBool("is_active")
		isActive = &v
	}

	users, err := s.userService.ListUsers(c.Context(), actorFromCtx(c), service.ListUsersInput{
		Username:      c.Query("username"),
		UsernameExact: c.Query("username_exact"),
		Email:         c.Query("email"),
		EmailExact:    c.Query("email_exact"),
		Role:          models.Role(c.Query("role")),
		IsActive:      isActive,
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
		"users": users,
		"count": len(users),
	})
}

// GetUser handles GET /api/users/:username (owner or staff)
func (s *Server) GetUser(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.Context(), actorFromCtx(c), c.Params("username"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT and PATCH /api/users/:username (owner or staff)
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var req service.UpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return mapServiceError(c, invalidBody())
	}

	user, err := s.userService.UpdateUser(c.Context(), actorFromCtx(c), c.Params("username"), req)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:username. Owners disable their own
// account; staff deletes remove it and cascade the user's reviews.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	if err := s.userService.DeleteUser(c.Context(), actorFromCtx(c), c.Params("username")); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
