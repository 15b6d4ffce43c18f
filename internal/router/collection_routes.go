package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/handler"
	"github.com/iliyamo/recipe-share/internal/middleware"
)

// RegisterCollections wires the personal collection endpoints. Everything
// here requires a session; ownership checks live in the service layer.
func RegisterCollections(e *echo.Echo, h *handler.CollectionHandler, jwtSecret string) {
	g := e.Group("/collections")
	g.Use(middleware.JWTAuth(jwtSecret))

	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/items", h.AddItem)
	g.DELETE("/:id/items/:itemId", h.RemoveItem)
}
