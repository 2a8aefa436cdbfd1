// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"time"

	"dinely/internal/authz"
	"dinely/internal/models"
	"dinely/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// actorFromCtx builds the service actor from the auth middleware locals. For
// unauthenticated requests it returns the zero (anonymous) actor.
func actorFromCtx(c *fiber.Ctx) service.Actor {
	actor := service.Actor{Role: authz.RoleAnonymous}
	if uid, ok := c.Locals("userID").(uint); ok {
		actor.ID = uid
	}
	if username, ok := c.Locals("username").(string); ok {
		actor.Username = username
	}
	if role, ok := c.Locals("role").(models.Role); ok {
		actor.Role = role
	}
	return actor
}

// parseTimeQuery reads an optional timestamp query parameter, accepting
// RFC 3339 or a bare date. Unparseable values are treated as absent.
func parseTimeQuery(c *fiber.Ctx, param string) *time.Time {
	raw := c.Query(param)
	if raw == "" {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return &ts
	}
	if ts, err := time.Parse("2006-01-02", raw); err == nil {
		return &ts
	}
	return nil
}

// invalidBody is the shared error for unparseable JSON request bodies.
func invalidBody() error {
	return models.NewValidationError("Invalid request body")
}

// mapServiceError translates an AppError code to the HTTP status and writes
// the standard error response.
func mapServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR":
			status = fiber.StatusBadRequest
		case "UNAUTHORIZED":
			status = fiber.StatusUnauthorized
		case "FORBIDDEN":
			status = fiber.StatusForbidden
		case "NOT_FOUND":
			status = fiber.StatusNotFound
		case "CONFLICT":
			status = fiber.StatusConflict
		}
	}

	return models.RespondWithError(c, status, err)
}
