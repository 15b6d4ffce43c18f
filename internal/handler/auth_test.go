package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))
	return rec
}

func TestSignupValidation(t *testing.T) {
	// Validation runs before the service is touched, so a nil service is fine
	// for the reject cases.
	h := NewAuthHandler(nil)

	cases := map[string]string{
		"short username": `{"username":"ab","email":"a@b.com","password":"longenough"}`,
		"bad email":      `{"username":"alice","email":"not-an-email","password":"longenough"}`,
		"short password": `{"username":"alice","email":"a@b.com","password":"short"}`,
		"empty body":     `{}`,
		"not json":       `this is not json`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postJSON(t, h.Signup, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLoginValidation(t *testing.T) {
	h := NewAuthHandler(nil)

	rec := postJSON(t, h.Login, `{"identifier":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Login, `{"identifier":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshRequiresToken(t *testing.T) {
	h := NewAuthHandler(nil)

	rec := postJSON(t, h.Refresh, `{"refresh_token":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
