package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/service"
)

// CollectionHandler exposes personal recipe collections.
type CollectionHandler struct {
	Collections *service.CollectionService
}

func NewCollectionHandler(collections *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{Collections: collections}
}

type collectionReq struct {
	Name string `json:"name"`
}

func (r collectionReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}

type addItemReq struct {
	RecipeID uint64 `json:"recipe_id"`
	Note     string `json:"note"`
}

func (r addItemReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RecipeID, validation.Required),
		validation.Field(&r.Note, validation.Length(0, 500)),
	)
}

// List handles GET /collections: the requester's collections. Admins may pass
// ?owner_id= to inspect another user's.
func (h *CollectionHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var ownerFilter uint64
	if v := c.QueryParam("owner_id"); v != "" {
		ownerFilter, _ = strconv.ParseUint(v, 10, 64)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Collections.List(ctx, userID, getRole(c), ownerFilter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /collections/:id including its items.
func (h *CollectionHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Collections.Get(ctx, id, userID, getRole(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Create handles POST /collections.
func (h *CollectionHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req collectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	col, err := h.Collections.Create(ctx, userID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, col)
}

// Update handles PUT /collections/:id (rename).
func (h *CollectionHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req collectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	col, err := h.Collections.Update(ctx, id, userID, getRole(c), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, col)
}

// Delete handles DELETE /collections/:id.
func (h *CollectionHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Collections.Delete(ctx, id, userID, getRole(c)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddItem handles POST /collections/:id/items. The recipe must exist and be
// visible to the requester; duplicates yield 409.
func (h *CollectionHandler) AddItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req addItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item, err := h.Collections.AddItem(ctx, id, userID, getRole(c), req.RecipeID, req.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// RemoveItem handles DELETE /collections/:id/items/:itemId.
func (h *CollectionHandler) RemoveItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Collections.RemoveItem(ctx, id, itemID, userID, getRole(c)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
