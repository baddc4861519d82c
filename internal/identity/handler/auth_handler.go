package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/tograil/Mongocore/internal/errors"
	"github.com/tograil/Mongocore/internal/identity/dto"
	"github.com/tograil/Mongocore/internal/identity/service"
	"github.com/tograil/Mongocore/internal/observability"
)

type AuthHandler struct {
	authService *service.AuthService
	tokens      service.TokenGenerator
}

func NewAuthHandler(authService *service.AuthService, tokens service.TokenGenerator) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens}
}

// internalError reports an unexpected failure and answers 500.
func internalError(c *fiber.Ctx, err error) error {
	observability.CaptureError(err)
	return c.SendStatus(fiber.StatusInternalServerError)
}

// RequireToken guards a route group behind a valid bearer token.
func (h *AuthHandler) RequireToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		const prefix = "Bearer "

		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, prefix) {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		if _, err := h.tokens.Verify(strings.TrimPrefix(header, prefix)); err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		return c.Next()
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []string{"invalid input"},
		})
	}

	user, err := h.authService.Register(c.Context(), input)
	if err != nil {
		if ve, ok := apperrors.AsValidation(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": ve.Descriptions,
			})
		}
		return internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.UserOutput{
		ID:       user.ID,
		UserName: user.UserName,
		Email:    input.Email,
	})
}

// Token signs the user in and returns an access token. Unknown name, wrong
// password and lockout all answer 404 so the endpoint cannot be used to
// enumerate accounts.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var input dto.TokenInput
	if err := c.BodyParser(&input); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	response, err := h.authService.SignIn(c.Context(), input)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) ||
			errors.Is(err, apperrors.ErrInvalidCredentials) ||
			errors.Is(err, apperrors.ErrUserLockedOut) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return internalError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *AuthHandler) CreateRole(c *fiber.Ctx) error {
	var input dto.CreateRoleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []string{"invalid input"},
		})
	}

	role, err := h.authService.CreateRole(c.Context(), input.Name)
	if err != nil {
		if ve, ok := apperrors.AsValidation(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": ve.Descriptions,
			})
		}
		return internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RoleOutput{ID: role.ID, Name: role.Name})
}

func (h *AuthHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	out := make([]dto.UserOutput, 0, len(users))
	for _, u := range users {
		entry := dto.UserOutput{ID: u.ID, UserName: u.UserName}
		if u.Email != nil {
			entry.Email = u.Email.Value
		}
		out = append(out, entry)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *AuthHandler) AssignRole(c *fiber.Ctx) error {
	var input dto.AssignRoleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []string{"invalid input"},
		})
	}

	err := h.authService.AddToRole(c.Context(), c.Params("name"), input.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) || errors.Is(err, apperrors.ErrRoleNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return internalError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
