package service

import (
	"context"
	"strings"
	"time"

	"dinely/internal/authz"
	"dinely/internal/models"
	"dinely/internal/repository"
	"dinely/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UpdateUserInput carries a partial profile update. Role changes are limited
// to superadmins, is_active to staff.
type UpdateUserInput struct {
	FirstName *string      `json:"first_name"`
	LastName  *string      `json:"last_name"`
	Email     *string      `json:"email"`
	Role      *models.Role `json:"role"`
	IsActive  *bool        `json:"is_active"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ListUsersInput struct {
	Username      string // substring match
	UsernameExact string
	Email         string // substring match
	EmailExact    string
	Role          models.Role
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	OrderBy       string
	Limit         int
	Offset        int
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account. Registration is public and never grants a
// privileged role. The unique indexes on username and email are the authority
// on duplicates; the pre-checks just produce friendlier messages.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("first_name", in.FirstName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateName("last_name", in.LastName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Username already taken")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		UUID:      uuid.New(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  username,
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleUser,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials for login. Missing users, wrong passwords
// and disabled accounts all return the same Unauthorized error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetUser(ctx context.Context, actor Actor, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	owner := actor.ID == user.ID && !actor.Anonymous()
	if !authz.Allowed(actor.Role, authz.ResourceUser, authz.ActionRead, owner) {
		return nil, models.NewForbiddenError("You cannot view this account")
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, actor Actor, in ListUsersInput) ([]models.User, error) {
	if !authz.Allowed(actor.Role, authz.ResourceUser, authz.ActionList, false) {
		return nil, models.NewForbiddenError("Only staff can list users")
	}

	return s.userRepo.List(ctx, repository.UserFilter{
		Username:      in.Username,
		UsernameExact: in.UsernameExact,
		Email:         in.Email,
		EmailExact:    in.EmailExact,
		Role:          in.Role,
		IsActive:      in.IsActive,
		CreatedAfter:  in.CreatedAfter,
		CreatedBefore: in.CreatedBefore,
		OrderBy:       in.OrderBy,
		Limit:         in.Limit,
		Offset:        in.Offset,
	})
}

func (s *UserService) UpdateUser(ctx context.Context, actor Actor, username string, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	owner := actor.ID == user.ID && !actor.Anonymous()
	if !authz.Allowed(actor.Role, authz.ResourceUser, authz.ActionUpdate, owner) {
		return nil, models.NewForbiddenError("You cannot modify this account")
	}

	if in.FirstName != nil {
		if err := validation.ValidateName("first_name", *in.FirstName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		if err := validation.ValidateName("last_name", *in.LastName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = email
	}
	if in.Role != nil {
		if !actor.Role.IsSuperuser() {
			return nil, models.NewForbiddenError("Only a super admin can change roles")
		}
		if !in.Role.Valid() {
			return nil, models.NewValidationError("Unknown role")
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		if !actor.Role.IsStaff() {
			return nil, models.NewForbiddenError("Only staff can enable or disable accounts")
		}
		user.IsActive = *in.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser disables the account when the owner asks, and removes it
// outright when staff does. A hard delete cascades the user's reviews at the
// store level.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, username string) error {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", username)
	}

	owner := actor.ID == user.ID && !actor.Anonymous()
	if !authz.Allowed(actor.Role, authz.ResourceUser, authz.ActionDelete, owner) {
		return models.NewForbiddenError("You cannot delete this account")
	}

	if actor.Role.IsStaff() && !owner {
		return s.userRepo.Delete(ctx, user.ID)
	}

	user.IsActive = false
	return s.userRepo.Update(ctx, user)
}

// ChangePassword sets a new password. Owners must prove they know the old
// one; staff resetting someone else's password do not.
func (s *UserService) ChangePassword(ctx context.Context, actor Actor, username string, in ChangePasswordInput) error {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", username)
	}

	owner := actor.ID == user.ID && !actor.Anonymous()
	if !authz.Allowed(actor.Role, authz.ResourceUser, authz.ActionChangePassword, owner) {
		return models.NewForbiddenError("You cannot change this account's password")
	}

	if !actor.Role.IsStaff() {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)); err != nil {
			return models.NewUnauthorizedError("Old password is incorrect")
		}
	}

	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hash)

	return s.userRepo.Update(ctx, user)
}
