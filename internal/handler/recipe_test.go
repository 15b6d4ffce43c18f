package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngredientRefReqNeedsIDOrName(t *testing.T) {
	assert.Error(t, ingredientRefReq{}.Validate())
	assert.NoError(t, ingredientRefReq{Name: "salt"}.Validate())

	id := uint64(3)
	assert.NoError(t, ingredientRefReq{IngredientID: &id}.Validate())
}

func TestCreateRecipeReqValidatesChildren(t *testing.T) {
	base := createRecipeReq{Title: "stew"}
	assert.NoError(t, base.Validate())

	assert.Error(t, createRecipeReq{}.Validate()) // title required

	withBadStep := base
	withBadStep.Steps = []stepReq{{Instruction: ""}}
	assert.Error(t, withBadStep.Validate())

	withBadIngredient := base
	withBadIngredient.Ingredients = []ingredientRefReq{{}}
	assert.Error(t, withBadIngredient.Validate())
}

func TestUpdateRecipeReqRejectsBlankTitle(t *testing.T) {
	// Title is optional on update, but a supplied empty string may not blank
	// a field that is required on create.
	empty := ""
	assert.Error(t, updateRecipeReq{Title: &empty}.Validate())

	title := "renamed"
	assert.NoError(t, updateRecipeReq{Title: &title}.Validate())

	// Clearing the description stays legal.
	assert.NoError(t, updateRecipeReq{Description: &empty}.Validate())
}

func TestVisibilityReqRequiresFlag(t *testing.T) {
	assert.Error(t, visibilityReq{}.Validate())

	public := true
	assert.NoError(t, visibilityReq{IsPublic: &public}.Validate())
}
