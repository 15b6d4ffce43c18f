package handler

import (
	"context"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/service"
)

// IngredientHandler exposes the shared ingredient catalog.
type IngredientHandler struct {
	Ingredients *service.IngredientService
}

func NewIngredientHandler(ingredients *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{Ingredients: ingredients}
}

type createIngredientReq struct {
	Name string  `json:"name"`
	Unit *string `json:"unit"`
}

func (r createIngredientReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

type updateIngredientReq struct {
	Name *string `json:"name"`
	Unit *string `json:"unit"`
}

func (r updateIngredientReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 100)),
	)
}

// List handles GET /ingredients with an optional ?q= name filter.
func (h *IngredientHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Ingredients.List(ctx, c.QueryParam("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /ingredients/:id.
func (h *IngredientHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ing, err := h.Ingredients.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ing)
}

// Create handles POST /ingredients (CREATOR/ADMIN only).
func (h *IngredientHandler) Create(c echo.Context) error {
	var req createIngredientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ing, err := h.Ingredients.Create(ctx, req.Name, req.Unit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, ing)
}

// Update handles PUT /ingredients/:id.
func (h *IngredientHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var req updateIngredientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ing, err := h.Ingredients.Update(ctx, id, req.Name, req.Unit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ing)
}

// Delete handles DELETE /ingredients/:id; recipe links are removed with it.
func (h *IngredientHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Ingredients.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
