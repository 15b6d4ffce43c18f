package handler // handler translates HTTP requests into service calls

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/repository"
	"github.com/iliyamo/recipe-share/internal/service"
)

// getUserID extracts the user_id claim from echo.Context and converts it to
// uint64. JWT numeric claims decode as float64, so several shapes are
// accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the role claim, or the empty string for guests.
func getRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}

// identity returns the requester id and role for optionally-authenticated
// routes; anonymous requests yield (0, "").
func identity(c echo.Context) (uint64, string) {
	id, err := getUserID(c)
	if err != nil {
		return 0, ""
	}
	return id, getRole(c)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// respondError maps the sentinel errors of the lower layers onto HTTP
// responses. Anything unrecognized is logged and reported as a generic 500
// so store-level details never leak to callers.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrRecipeNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrIngredientNotFound),
		errors.Is(err, repository.ErrCollectionNotFound),
		errors.Is(err, repository.ErrItemNotFound),
		errors.Is(err, repository.ErrReviewNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrUserExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrIngredientNameRequired):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	default:
		c.Logger().Errorf("unhandled error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
