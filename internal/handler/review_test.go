package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateReviewReqRatingBounds(t *testing.T) {
	assert.Error(t, createReviewReq{Rating: 0}.Validate())
	assert.Error(t, createReviewReq{Rating: 6}.Validate())
	assert.NoError(t, createReviewReq{Rating: 1}.Validate())
	assert.NoError(t, createReviewReq{Rating: 5, Comment: "tasty"}.Validate())
}

func TestUpdateReviewReqOptionalFields(t *testing.T) {
	// Both fields optional; a supplied rating still has to be in range.
	assert.NoError(t, updateReviewReq{}.Validate())

	bad := uint8(9)
	assert.Error(t, updateReviewReq{Rating: &bad}.Validate())

	ok := uint8(3)
	comment := "edited"
	assert.NoError(t, updateReviewReq{Rating: &ok, Comment: &comment}.Validate())
}

func TestUpdateReviewReqRejectsZeroRating(t *testing.T) {
	// A supplied zero must fail: the min/max rules skip empty values, so
	// without the not-empty guard rating 0 would reach the database and drag
	// the recomputed average down.
	zero := uint8(0)
	assert.Error(t, updateReviewReq{Rating: &zero}.Validate())

	one := uint8(1)
	assert.NoError(t, updateReviewReq{Rating: &one}.Validate())
}
