package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	api := app.Group("/api/v1")

	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/refresh", h.Refresh)
	// Self-service routes admit any valid token: a session minted with a
	// narrowed scope set still owns itself.
	api.Delete("/session", h.gate.RequireScopes(), h.Logout)
	api.Get("/me", h.gate.RequireScopes(), h.Me)

	// Verification links are public: the opaque token is the credential.
	api.Get("/email/verify/:token", h.VerifyEmail)
	api.Get("/email/change/verify/:token", h.VerifyEmailChange)
	api.Post("/email/change", h.gate.RequireScopes(), h.RequestEmailChange)
	api.Post("/password/reset", h.RequestPasswordReset)
	api.Post("/password/apply", h.ApplyPasswordReset)

	// Admin-only endpoints
	admin := api.Group("/admin", h.gate.RequireScopes("ADMIN", "SYSADMIN"))
	admin.Post("/user/:id/ban", h.BanUser)
	admin.Delete("/user/:id/ban", h.UnbanUser)
	admin.Delete("/user/:id/sessions", h.ForceLogout)
	admin.Get("/user/:id/role", h.ListRoles)
	admin.Post("/user/:id/role", h.GrantRole)
	admin.Delete("/user/:id/role", h.RevokeRole)
}
