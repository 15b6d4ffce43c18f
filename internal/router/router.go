package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the account endpoints. Signup and login share a
// Redis token bucket so a client gets at most 3 attempts per minute; the
// refresh and logout endpoints only require a valid refresh token in the
// body, never a JWT.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	e.POST("/signup", a.Signup, limit)
	e.POST("/login", a.Login, limit)
	e.POST("/refresh", a.Refresh)
	e.POST("/logout", a.Logout)
}
