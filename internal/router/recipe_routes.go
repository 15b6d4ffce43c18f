package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recipe-share/internal/handler"
	"github.com/iliyamo/recipe-share/internal/middleware"
	"github.com/iliyamo/recipe-share/internal/model"
)

// RegisterRecipes wires the recipe aggregate and its reviews.
//
// Browse endpoints are reachable without a token: the list only ever shows
// public recipes, and the detail endpoints accept an optional JWT so owners
// and admins can read private ones. Anonymous responses to the browse
// endpoints go through the Redis response cache; the cache middleware skips
// any request carrying an Authorization header, so private reads are never
// cached. All mutations require a JWT, and publishing a new recipe is
// reserved for creators and admins.
func RegisterRecipes(e *echo.Echo, r *handler.RecipeHandler, rv *handler.ReviewHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	optional := middleware.OptionalJWTAuth(jwtSecret)
	authed := middleware.JWTAuth(jwtSecret)

	e.GET("/recipes", r.List, cache)
	e.GET("/recipes/:id", r.Get, optional, cache)
	e.GET("/recipes/:id/reviews", rv.ListByRecipe, optional, cache)

	e.POST("/recipes", r.Create, authed, middleware.RequireRole(model.RoleCreator, model.RoleAdmin))
	e.PUT("/recipes/:id", r.Update, authed)
	e.DELETE("/recipes/:id", r.Delete, authed)
	e.PUT("/recipes/:id/visibility", r.SetVisibility, authed)
	e.POST("/recipes/:id/steps", r.ReplaceSteps, authed)
	e.POST("/recipes/:id/ingredients", r.ReplaceIngredients, authed)

	e.POST("/recipes/:id/reviews", rv.Create, authed)
	e.PUT("/reviews/:id", rv.Update, authed)
	e.DELETE("/reviews/:id", rv.Delete, authed)
}
