package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dinely/internal/config"
	"dinely/internal/models"
	"dinely/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const registerPayload = `{
	"first_name": "Alice",
	"last_name": "Example",
	"username": "alice",
	"email": "alice@example.com",
	"password": "Sup3r-Secret-Pass!"
}`

func TestRegisterHandler(t *testing.T) {
	t.Run("success returns token and user without password", func(t *testing.T) {
		app := fiber.New()
		users := new(MockUserRepository)
		s := newTestServer(users, nil, nil)
		s.config = &config.Config{JWTSecret: "test-secret"}
		app.Post("/users/register", s.Register)

		users.On("GetByUsername", mock.Anything, "alice").Return(nil, nil)
		users.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, nil)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleUser && u.Username == "alice"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = 1
		}).Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(registerPayload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["token"])
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "alice", user["username"])
		assert.Equal(t, "user", user["role"])
		_, hasPassword := user["password"]
		assert.False(t, hasPassword, "password must never be serialized")
		assert.NotContains(t, string(mustJSON(t, body)), "Sup3r-Secret-Pass")
	})

	t.Run("duplicate username is 409", func(t *testing.T) {
		app := fiber.New()
		users := new(MockUserRepository)
		s := newTestServer(users, nil, nil)
		s.config = &config.Config{JWTSecret: "test-secret"}
		app.Post("/users/register", s.Register)

		users.On("GetByUsername", mock.Anything, "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(registerPayload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("weak password is 400", func(t *testing.T) {
		app := fiber.New()
		s := newTestServer(nil, nil, nil)
		s.config = &config.Config{JWTSecret: "test-secret"}
		app.Post("/users/register", s.Register)

		payload := `{"first_name":"A","last_name":"B","username":"alice","email":"alice@example.com","password":"weak"}`
		req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestChangePasswordHandler(t *testing.T) {
	oldHash, err := bcrypt.GenerateFromPassword([]byte("Sup3r-Secret-Pass!"), bcrypt.MinCost)
	require.NoError(t, err)

	storedAlice := func() *MockUserRepository {
		users := new(MockUserRepository)
		users.On("GetByUsername", mock.Anything, "alice").Return(&models.User{
			ID: 1, Username: "alice", Password: string(oldHash), IsActive: true,
		}, nil)
		return users
	}

	t.Run("owner with correct old password", func(t *testing.T) {
		app := fiber.New()
		users := storedAlice()
		users.On("Update", mock.Anything, mock.Anything).Return(nil)
		s := newTestServer(users, nil, nil)
		app.Post("/users/:username/change_password", asUser(1, "alice", models.RoleUser), s.ChangePassword)

		payload := `{"old_password":"Sup3r-Secret-Pass!","new_password":"An0ther-Secret-Pass!"}`
		req := httptest.NewRequest(http.MethodPost, "/users/alice/change_password", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("owner with wrong old password is 401", func(t *testing.T) {
		app := fiber.New()
		s := newTestServer(storedAlice(), nil, nil)
		app.Post("/users/:username/change_password", asUser(1, "alice", models.RoleUser), s.ChangePassword)

		payload := `{"old_password":"wrong","new_password":"An0ther-Secret-Pass!"}`
		req := httptest.NewRequest(http.MethodPost, "/users/alice/change_password", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("staff reset skips old password", func(t *testing.T) {
		app := fiber.New()
		users := storedAlice()
		users.On("Update", mock.Anything, mock.Anything).Return(nil)
		s := newTestServer(users, nil, nil)
		app.Post("/users/:username/change_password", asUser(3, "carol", models.RoleAdmin), s.ChangePassword)

		payload := `{"new_password":"An0ther-Secret-Pass!"}`
		req := httptest.NewRequest(http.MethodPost, "/users/alice/change_password", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("other regular user is 403", func(t *testing.T) {
		app := fiber.New()
		s := newTestServer(storedAlice(), nil, nil)
		app.Post("/users/:username/change_password", asUser(2, "bob", models.RoleUser), s.ChangePassword)

		payload := `{"old_password":"x","new_password":"An0ther-Secret-Pass!"}`
		req := httptest.NewRequest(http.MethodPost, "/users/alice/change_password", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestGetAllUsersFilters(t *testing.T) {
	app := fiber.New()
	users := new(MockUserRepository)
	s := newTestServer(users, nil, nil)
	app.Get("/users", asUser(3, "carol", models.RoleAdmin), s.GetAllUsers)

	wantBefore := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	users.On("List", mock.Anything, mock.MatchedBy(func(f repository.UserFilter) bool {
		return f.UsernameExact == "alice" &&
			f.EmailExact == "alice@example.com" &&
			f.CreatedBefore != nil && f.CreatedBefore.Equal(wantBefore) &&
			f.CreatedAfter == nil
	})).Return([]models.User{{ID: 1, Username: "alice"}}, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/users?username_exact=alice&email_exact=alice%40example.com&created_before=2025-06-01", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["count"])
}

func TestGetUserHandler(t *testing.T) {
	storedAlice := func() *MockUserRepository {
		users := new(MockUserRepository)
		users.On("GetByUsername", mock.Anything, "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)
		return users
	}

	t.Run("owner can view", func(t *testing.T) {
		app := fiber.New()
		s := newTestServer(storedAlice(), nil, nil)
		app.Get("/users/:username", asUser(1, "alice", models.RoleUser), s.GetUser)

		req := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("other regular user is 403", func(t *testing.T) {
		app := fiber.New()
		s := newTestServer(storedAlice(), nil, nil)
		app.Get("/users/:username", asUser(2, "bob", models.RoleUser), s.GetUser)

		req := httptest.NewRequest(http.MethodGet, "/users/alice", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
