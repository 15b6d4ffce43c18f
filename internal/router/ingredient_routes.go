package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/handler"
	"github.com/iliyamo/recipe-share/internal/middleware"
	"github.com/iliyamo/recipe-share/internal/model"
)

// RegisterIngredients wires the shared ingredient catalog. Reads are public;
// catalog mutations are reserved for creators and admins.
func RegisterIngredients(e *echo.Echo, h *handler.IngredientHandler, jwtSecret string) {
	e.GET("/ingredients", h.List)
	e.GET("/ingredients/:id", h.Get)

	authed := middleware.JWTAuth(jwtSecret)
	curator := middleware.RequireRole(model.RoleCreator, model.RoleAdmin)
	e.POST("/ingredients", h.Create, authed, curator)
	e.PUT("/ingredients/:id", h.Update, authed, curator)
	e.DELETE("/ingredients/:id", h.Delete, authed, curator)
}
