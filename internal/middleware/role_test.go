package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithRole(t *testing.T, mw echo.MiddlewareFunc, role any) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	rec := runWithRole(t, RequireRole("CREATOR", "ADMIN"), "CREATOR")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsOther(t *testing.T) {
	rec := runWithRole(t, RequireRole("ADMIN"), "USER")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissing(t *testing.T) {
	rec := runWithRole(t, RequireRole("ADMIN"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
