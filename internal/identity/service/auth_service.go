package service

import (
	"context"
	"fmt"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/tograil/Mongocore/internal/errors"
	"github.com/tograil/Mongocore/internal/identity/domain"
	"github.com/tograil/Mongocore/internal/identity/dto"
)

const minPasswordLength = 8

// AuthService orchestrates registration, password sign-in and token
// issuance over the user and role repositories. It performs no retries;
// storage failures travel up to the handler.
type AuthService struct {
	users  domain.UserRepository
	roles  domain.RoleRepository
	tokens TokenGenerator
	logger *zap.SugaredLogger
}

func NewAuthService(users domain.UserRepository, roles domain.RoleRepository, tokens TokenGenerator, logger *zap.SugaredLogger) *AuthService {
	return &AuthService{
		users:  users,
		roles:  roles,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new user from a name and password. Rejections carry
// every failed check, not just the first one.
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	reasons := validatePassword(input.Password)
	if input.Name == "" {
		reasons = append(reasons, "User name must not be empty.")
	}
	if len(reasons) > 0 {
		return nil, apperrors.NewValidationError(reasons...)
	}

	existing, err := s.users.FindByNormalizedUserName(ctx, domain.NormalizeName(input.Name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("User name %q is already taken.", input.Name))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.NewUser(input.Name)
	user.PasswordHash = string(hash)
	if input.Email != "" {
		user.SetEmail(input.Email)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Infow("user registered", "id", user.ID, "user_name", user.UserName)

	return user, nil
}

// SignIn verifies the password for the named user and issues an access
// token. The distinct failure modes (unknown name, bad password, lockout)
// stay distinguishable here; the HTTP layer collapses them.
func (s *AuthService) SignIn(ctx context.Context, input dto.TokenInput) (*dto.TokenResponse, error) {
	user, err := s.users.FindByNormalizedUserName(ctx, domain.NormalizeName(input.Name))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if user.IsLockedOut(time.Now()) {
		return nil, apperrors.ErrUserLockedOut
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiration, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{Token: token, Expiration: expiration}, nil
}

// CreateRole adds a named role, rejecting names already taken under
// normalization.
func (s *AuthService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("Role name must not be empty.")
	}

	existing, err := s.roles.FindByNormalizedName(ctx, domain.NormalizeName(name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Role name %q is already taken.", name))
	}

	role := domain.NewRole(name)
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Infow("role created", "id", role.ID, "name", role.Name)

	return role, nil
}

// AddToRole puts the named user into an existing role and persists the
// change. Membership is idempotent.
func (s *AuthService) AddToRole(ctx context.Context, userName, roleName string) error {
	role, err := s.roles.FindByNormalizedName(ctx, domain.NormalizeName(roleName))
	if err != nil {
		return err
	}
	if role == nil {
		return apperrors.ErrRoleNotFound
	}

	user, err := s.users.FindByNormalizedUserName(ctx, domain.NormalizeName(userName))
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.ErrUserNotFound
	}

	user.AddRole(role.Name)

	return s.users.Update(ctx, user)
}

// ListUsers returns every registered user.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func validatePassword(password string) []string {
	var reasons []string
	if len(password) < minPasswordLength {
		reasons = append(reasons, fmt.Sprintf("Passwords must be at least %d characters.", minPasswordLength))
	}

	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}

	if !hasDigit {
		reasons = append(reasons, "Passwords must have at least one digit ('0'-'9').")
	}
	if !hasUpper {
		reasons = append(reasons, "Passwords must have at least one uppercase letter ('A'-'Z').")
	}
	if !hasLower {
		reasons = append(reasons, "Passwords must have at least one lowercase letter ('a'-'z').")
	}

	return reasons
}
