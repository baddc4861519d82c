package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tograil/Mongocore/internal/identity/domain"
	"github.com/tograil/Mongocore/internal/identity/handler"
	"github.com/tograil/Mongocore/internal/identity/service"
	"github.com/tograil/Mongocore/internal/mocks"
)

type handlerFixture struct {
	app    *fiber.App
	users  *mocks.MockUserRepository
	roles  *mocks.MockRoleRepository
	tokens *mocks.MockTokenGenerator
}

func newFixture(t *testing.T) *handlerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := mocks.NewMockUserRepository(ctrl)
	roles := mocks.NewMockRoleRepository(ctrl)
	tokens := mocks.NewMockTokenGenerator(ctrl)

	authService := service.NewAuthService(users, roles, tokens, zap.NewNop().Sugar())
	authHandler := handler.NewAuthHandler(authService, tokens)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	return &handlerFixture{app: app, users: users, roles: roles, tokens: tokens}
}

// authorize arms the token verifier for one admin request.
func (f *handlerFixture) authorize() {
	f.tokens.EXPECT().Verify("admin-token").Return(&jwt.RegisteredClaims{Subject: "alice"}, nil)
}

func adminJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer admin-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, payload
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) (int, []byte) {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, payload
}

func TestAuthHandler_Register_Success(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().FindByNormalizedUserName(gomock.Any(), "ALICE").Return(nil, nil)
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	code, body := postJSON(t, f.app, "/api/auth/register", map[string]string{
		"name":     "alice",
		"password": "Secret123!",
	})

	assert.Equal(t, fiber.StatusOK, code)

	var out struct {
		UserName string `json:"user_name"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "alice", out.UserName)
}

func TestAuthHandler_Register_DuplicateName(t *testing.T) {
	f := newFixture(t)

	existing := domain.NewUser("alice")
	existing.ID = 1
	f.users.EXPECT().FindByNormalizedUserName(gomock.Any(), "ALICE").Return(existing, nil)

	code, body := postJSON(t, f.app, "/api/auth/register", map[string]string{
		"name":     "alice",
		"password": "Secret123!",
	})

	assert.Equal(t, fiber.StatusBadRequest, code)

	var out struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "already taken")
}

func TestAuthHandler_Register_ValidationReasonsAreItemized(t *testing.T) {
	f := newFixture(t)

	code, body := postJSON(t, f.app, "/api/auth/register", map[string]string{
		"name":     "alice",
		"password": "abc",
	})

	assert.Equal(t, fiber.StatusBadRequest, code)

	var out struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Len(t, out.Errors, 3)
}

func TestAuthHandler_Token_Success(t *testing.T) {
	f := newFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := domain.NewUser("alice")
	user.ID = 1
	user.PasswordHash = string(hash)

	expiration := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Second)

	f.users.EXPECT().FindByNormalizedUserName(gomock.Any(), "ALICE").Return(user, nil)
	f.tokens.EXPECT().Issue(gomock.Any()).Return("signed-token", expiration, nil)

	code, body := postJSON(t, f.app, "/api/auth/token", map[string]string{
		"name":     "alice",
		"password": "Secret123!",
	})

	assert.Equal(t, fiber.StatusOK, code)

	var out struct {
		Token      string    `json:"token"`
		Expiration time.Time `json:"expiration"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "signed-token", out.Token)
	assert.True(t, out.Expiration.Equal(expiration))
}

func TestAuthHandler_Token_WrongPasswordIsNotFound(t *testing.T) {
	f := newFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := domain.NewUser("alice")
	user.PasswordHash = string(hash)

	f.users.EXPECT().FindByNormalizedUserName(gomock.Any(), "ALICE").Return(user, nil)

	code, body := postJSON(t, f.app, "/api/auth/token", map[string]string{
		"name":     "alice",
		"password": "wrong",
	})

	// Same status as an unknown user: the endpoint must not leak which
	// part of the credentials failed.
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.NotContains(t, string(body), "signed-token")
}

func TestAuthHandler_Token_UnknownUserIsNotFound(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().FindByNormalizedUserName(gomock.Any(), "GHOST").Return(nil, nil)

	code, _ := postJSON(t, f.app, "/api/auth/token", map[string]string{
		"name":     "ghost",
		"password": "Secret123!",
	})

	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestAuthHandler_CreateRole(t *testing.T) {
	f := newFixture(t)
	f.authorize()

	f.roles.EXPECT().FindByNormalizedName(gomock.Any(), "ADMIN").Return(nil, nil)
	f.roles.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	code, _ := adminJSON(t, f.app, "POST", "/api/admin/roles", map[string]string{"name": "Admin"})

	assert.Equal(t, fiber.StatusCreated, code)
}

func TestAuthHandler_GetUsers(t *testing.T) {
	f := newFixture(t)
	f.authorize()

	alice := domain.NewUser("alice")
	alice.ID = 1
	alice.SetEmail("alice@example.com")

	f.users.EXPECT().List(gomock.Any()).Return([]*domain.User{alice}, nil)

	code, payload := adminJSON(t, f.app, "GET", "/api/admin/users", nil)

	assert.Equal(t, fiber.StatusOK, code)

	var out []struct {
		ID       int    `json:"id"`
		UserName string `json:"user_name"`
		Email    string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(payload, &out))
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, "alice", out[0].UserName)
	assert.Equal(t, "alice@example.com", out[0].Email)
}

func TestAuthHandler_AssignRole(t *testing.T) {
	f := newFixture(t)
	f.authorize()

	role := domain.NewRole("Admin")
	role.ID = 1
	user := domain.NewUser("alice")
	user.ID = 2

	f.roles.EXPECT().FindByNormalizedName(gomock.Any(), "ADMIN").Return(role, nil)
	f.users.EXPECT().FindByNormalizedUserName(gomock.Any(), "ALICE").Return(user, nil)
	f.users.EXPECT().Update(gomock.Any(), user).Return(nil)

	code, _ := adminJSON(t, f.app, "POST", "/api/admin/users/alice/roles", map[string]string{"role": "Admin"})

	assert.Equal(t, fiber.StatusNoContent, code)
}

func TestAuthHandler_AssignRole_MissingRole(t *testing.T) {
	f := newFixture(t)
	f.authorize()

	f.roles.EXPECT().FindByNormalizedName(gomock.Any(), "GHOST").Return(nil, nil)

	code, _ := adminJSON(t, f.app, "POST", "/api/admin/users/alice/roles", map[string]string{"role": "ghost"})

	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestAuthHandler_Admin_MissingTokenIsUnauthorized(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest("GET", "/api/admin/users", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_Admin_InvalidTokenIsUnauthorized(t *testing.T) {
	f := newFixture(t)

	f.tokens.EXPECT().Verify("forged").Return(nil, errors.New("token is malformed"))

	req := httptest.NewRequest("GET", "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer forged")
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_Token_StorageFailureIs500(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().
		FindByNormalizedUserName(gomock.Any(), "ALICE").
		Return(nil, errors.New("server selection timeout"))

	code, _ := postJSON(t, f.app, "/api/auth/token", map[string]string{
		"name":     "alice",
		"password": "Secret123!",
	})

	assert.Equal(t, fiber.StatusInternalServerError, code)
}
