package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/model"
	"github.com/iliyamo/recipe-share/internal/service"
)

// UserHandler exposes the profile endpoints and the admin role switch.
type UserHandler struct {
	Users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

type updateProfileReq struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r updateProfileReq) Validate() error {
	// Each field is optional, but a supplied value may not be empty: the
	// length and email rules skip empty values, which would otherwise let a
	// partial update blank fields that are required on signup.
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.NilOrNotEmpty, validation.Length(3, 30)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.Length(8, 72)),
	)
}

type updateRoleReq struct {
	Role string `json:"role"`
}

func (r updateRoleReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required, validation.By(checkRole)),
	)
}

func checkRole(v any) error {
	if s, ok := v.(string); ok && model.ValidRole(s) {
		return nil
	}
	return errors.New("must be USER, CREATOR or ADMIN")
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetProfile(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// UpdateMe handles PUT /users/me: partial profile update, password included.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.UpdateProfile(ctx, userID, req.Username, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}

// DeleteMe handles DELETE /users/me: removes the account and all data owned
// by it.
func (h *UserHandler) DeleteMe(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Users.DeleteProfile(ctx, userID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateRole handles PATCH /users/:id/role (admin only).
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req updateRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.UpdateRole(ctx, id, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toUserPart(u))
}
