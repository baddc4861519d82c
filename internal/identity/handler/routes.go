package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/token", h.Token)

	// Role administration, bearer token required
	admin := app.Group("/api/admin", h.RequireToken())
	admin.Get("/users", h.GetUsers)
	admin.Post("/roles", h.CreateRole)
	admin.Post("/users/:name/roles", h.AssignRole)
}
