package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/recipe-share/internal/utils"
)

func runWithAuthHeader(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	require.NoError(t, h(c))
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", 7, "ADMIN", 15)
	require.NoError(t, err)

	rec, c := runWithAuthHeader(t, JWTAuth("secret"), "Bearer "+tok.Token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(7), c.Get("user_id")) // numeric JWT claims decode as float64
	assert.Equal(t, "ADMIN", c.Get("role"))
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, _ := runWithAuthHeader(t, JWTAuth("secret"), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, "USER", 15)
	require.NoError(t, err)

	rec, _ := runWithAuthHeader(t, JWTAuth("secret"), "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTAuthAnonymous(t *testing.T) {
	rec, c := runWithAuthHeader(t, OptionalJWTAuth("secret"), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get("user_id"))
	assert.Nil(t, c.Get("role"))
}

func TestOptionalJWTAuthWithToken(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", 3, "CREATOR", 15)
	require.NoError(t, err)

	rec, c := runWithAuthHeader(t, OptionalJWTAuth("secret"), "Bearer "+tok.Token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CREATOR", c.Get("role"))
}
