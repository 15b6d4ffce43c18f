package handler

import (
	"context"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/service"
)

// ReviewHandler exposes review reads and mutations. Every mutation keeps the
// recipe's average rating in step inside the same transaction.
type ReviewHandler struct {
	Reviews *service.ReviewService
}

func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

type createReviewReq struct {
	Rating  uint8  `json:"rating"`
	Comment string `json:"comment"`
}

func (r createReviewReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.Required, validation.Min(uint8(1)), validation.Max(uint8(5))),
		validation.Field(&r.Comment, validation.Length(0, 2000)),
	)
}

type updateReviewReq struct {
	Rating  *uint8  `json:"rating"`
	Comment *string `json:"comment"`
}

func (r updateReviewReq) Validate() error {
	// NilOrNotEmpty rejects a supplied zero: Min/Max alone skip empty values,
	// which would let rating 0 through on a partial update.
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating, validation.NilOrNotEmpty, validation.Min(uint8(1)), validation.Max(uint8(5))),
		validation.Field(&r.Comment, validation.Length(0, 2000)),
	)
}

// ListByRecipe handles GET /recipes/:id/reviews. Authentication is optional;
// reviews of a private recipe are only visible to the owner and admins.
func (h *ReviewHandler) ListByRecipe(c echo.Context) error {
	recipeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	requesterID, role := identity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reviews, err := h.Reviews.ListByRecipe(ctx, recipeID, requesterID, role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// Create handles POST /recipes/:id/reviews. One review per user per recipe;
// a second attempt yields 409.
func (h *ReviewHandler) Create(c echo.Context) error {
	recipeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rv, err := h.Reviews.Create(ctx, recipeID, userID, getRole(c), req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, rv)
}

// Update handles PUT /reviews/:id (author or admin).
func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rv, err := h.Reviews.Update(ctx, id, userID, getRole(c), req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rv)
}

// Delete handles DELETE /reviews/:id (author or admin).
func (h *ReviewHandler) Delete(c echo.Context) error {
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

	if err := h.Reviews.Delete(ctx, id, userID, getRole(c)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
