package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/model"
	"github.com/iliyamo/recipe-share/internal/service"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// ----- DTOs -----

type signupReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r signupReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 30)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

type loginReq struct {
	Identifier string `json:"identifier"` // username or email
	Password   string `json:"password"`
}

func (r loginReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func toAuthResp(res *service.AuthResult) authResp {
	return authResp{
		User:    toUserPart(res.User),
		Access:  tokenPart{Token: res.Access.Token, Expires: res.Access.Exp},
		Refresh: tokenPart{Token: res.Refresh.Raw, Expires: res.Refresh.Exp}, // raw back to client
	}
}

func toUserPart(u *model.User) userPart {
	return userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// Signup handles POST /signup: create the account and return tokens
// immediately.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Auth.SignUp(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toAuthResp(res))
}

// Login handles POST /login: verify credentials and return a new pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Auth.LogIn(ctx, req.Identifier, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toAuthResp(res))
}

// Refresh handles POST /refresh: rotate the refresh token and issue a new
// access token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Auth.Refresh(ctx, strings.TrimSpace(req.RefreshToken))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toAuthResp(res))
}

// Logout handles POST /logout: revoke the session identified by the given
// refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Auth.Logout(ctx, strings.TrimSpace(req.RefreshToken)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
