package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/model"
	"github.com/iliyamo/recipe-share/internal/repository"
	"github.com/iliyamo/recipe-share/internal/service"
)

// RecipeHandler exposes the recipe aggregate endpoints.
type RecipeHandler struct {
	Recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{Recipes: recipes}
}

// ----- DTOs -----

type stepReq struct {
	Order       uint32 `json:"order"` // zero falls back to the 1-based position
	Instruction string `json:"instruction"`
}

func (r stepReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Instruction, validation.Required, validation.Length(1, 2000)),
	)
}

type ingredientRefReq struct {
	IngredientID *uint64 `json:"ingredientId"`
	Name         string  `json:"name"`
	Unit         *string `json:"unit"`
}

// Validate enforces the resolution contract: either an explicit ingredient
// id or a name must be supplied.
func (r ingredientRefReq) Validate() error {
	if r.IngredientID == nil {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		)
	}
	return nil
}

func (r ingredientRefReq) toRef() repository.IngredientRef {
	ref := repository.IngredientRef{Name: r.Name, Unit: r.Unit}
	if r.IngredientID != nil {
		ref.IngredientID = *r.IngredientID
	}
	return ref
}

type createRecipeReq struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	IsPublic    *bool              `json:"is_public"` // default true
	Servings    uint32             `json:"servings"`
	PrepMinutes uint32             `json:"prep_minutes"`
	CookMinutes uint32             `json:"cook_minutes"`
	Steps       []stepReq          `json:"steps"`
	Ingredients []ingredientRefReq `json:"ingredients"`
	Tags        []string           `json:"tags"`
}

func (r createRecipeReq) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	); err != nil {
		return err
	}
	for _, s := range r.Steps {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type updateRecipeReq struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Servings    *uint32   `json:"servings"`
	PrepMinutes *uint32   `json:"prep_minutes"`
	CookMinutes *uint32   `json:"cook_minutes"`
	Tags        *[]string `json:"tags"` // replaces the tag set when present
}

func (r updateRecipeReq) Validate() error {
	// NilOrNotEmpty stops a supplied-but-empty title from slipping past the
	// length rule and blanking a field that is required on create. A blank
	// description stays legal.
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 5000)),
	)
}

type visibilityReq struct {
	IsPublic *bool `json:"is_public"`
}

func (r visibilityReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IsPublic, validation.NotNil),
	)
}

type replaceStepsReq struct {
	Steps []stepReq `json:"steps"`
}

func (r replaceStepsReq) Validate() error {
	for _, s := range r.Steps {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type replaceIngredientsReq struct {
	Ingredients []ingredientRefReq `json:"ingredients"`
}

func (r replaceIngredientsReq) Validate() error {
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func toStepInputs(in []stepReq) []repository.StepInput {
	out := make([]repository.StepInput, 0, len(in))
	for _, s := range in {
		out = append(out, repository.StepInput{Order: s.Order, Instruction: s.Instruction})
	}
	return out
}

func toIngredientRefs(in []ingredientRefReq) []repository.IngredientRef {
	out := make([]repository.IngredientRef, 0, len(in))
	for _, ing := range in {
		out = append(out, ing.toRef())
	}
	return out
}

// ----- Handlers -----

// List handles GET /recipes: public recipes only, optional ?q= title filter,
// ?page= and ?page_size= paging.
func (h *RecipeHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Recipes.List(ctx, c.QueryParam("q"), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Get handles GET /recipes/:id. Authentication is optional; owners and
// admins can read their private recipes, everyone else sees 404.
func (h *RecipeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	requesterID, role := identity(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Recipes.Get(ctx, id, requesterID, role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Create handles POST /recipes (CREATOR/ADMIN only).
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createRecipeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	rec := &model.Recipe{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    true,
		Servings:    req.Servings,
		PrepMinutes: req.PrepMinutes,
		CookMinutes: req.CookMinutes,
	}
	if req.IsPublic != nil {
		rec.IsPublic = *req.IsPublic
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	created, err := h.Recipes.Create(ctx, userID, getRole(c), rec,
		toStepInputs(req.Steps), toIngredientRefs(req.Ingredients), req.Tags)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /recipes/:id: partial scalar update plus optional tag
// replacement.
func (h *RecipeHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateRecipeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	patch := repository.RecipePatch{
		Title:       req.Title,
		Description: req.Description,
		Servings:    req.Servings,
		PrepMinutes: req.PrepMinutes,
		CookMinutes: req.CookMinutes,
	}
	updated, err := h.Recipes.Update(ctx, id, userID, getRole(c), patch, req.Tags)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /recipes/:id.
func (h *RecipeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Recipes.Delete(ctx, id, userID, getRole(c)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetVisibility handles PUT /recipes/:id/visibility.
func (h *RecipeHandler) SetVisibility(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req visibilityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Recipes.SetVisibility(ctx, id, userID, getRole(c), *req.IsPublic); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplaceSteps handles POST /recipes/:id/steps: full replacement of the
// step set.
func (h *RecipeHandler) ReplaceSteps(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req replaceStepsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Recipes.ReplaceSteps(ctx, id, userID, getRole(c), toStepInputs(req.Steps)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplaceIngredients handles POST /recipes/:id/ingredients: full replacement
// of the ingredient links.
func (h *RecipeHandler) ReplaceIngredients(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req replaceIngredientsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Recipes.ReplaceIngredients(ctx, id, userID, getRole(c), toIngredientRefs(req.Ingredients)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
