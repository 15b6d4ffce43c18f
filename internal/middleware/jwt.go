package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role claims into the request context.
// The provided secret must match the one used when issuing tokens. Handlers
// behind this middleware can read the authenticated identity through
// c.Get("user_id") and c.Get("role").
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := parseBearer(c, secret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
			}
			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}

// OptionalJWTAuth injects the claims when a valid bearer token is present
// and silently continues as an anonymous request otherwise. Used on the
// public recipe read endpoints so owners and admins can see their private
// recipes while guests browse public ones.
func OptionalJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, ok := parseBearer(c, secret); ok {
				c.Set("user_id", claims["sub"])
				c.Set("role", claims["role"])
			}
			return next(c)
		}
	}
}

// parseBearer extracts and validates the Authorization header. It returns
// the token claims and whether the token was valid.
func parseBearer(c echo.Context, secret string) (jwt.MapClaims, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, false
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject any signing method other than HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}
