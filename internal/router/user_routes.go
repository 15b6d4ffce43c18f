package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/handler"
	"github.com/iliyamo/recipe-share/internal/middleware"
	"github.com/iliyamo/recipe-share/internal/model"
)

// RegisterUsers wires the profile endpoints and the admin-only role switch.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, jwtSecret string) {
	authed := middleware.JWTAuth(jwtSecret)

	e.GET("/users/me", h.Me, authed)
	e.PUT("/users/me", h.UpdateMe, authed)
	e.DELETE("/users/me", h.DeleteMe, authed)

	e.PATCH("/users/:id/role", h.UpdateRole, authed, middleware.RequireRole(model.RoleAdmin))
}
