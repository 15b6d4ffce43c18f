package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateRoleReqAcceptsKnownRolesOnly(t *testing.T) {
	assert.NoError(t, updateRoleReq{Role: "USER"}.Validate())
	assert.NoError(t, updateRoleReq{Role: "CREATOR"}.Validate())
	assert.NoError(t, updateRoleReq{Role: "ADMIN"}.Validate())

	assert.Error(t, updateRoleReq{Role: ""}.Validate())
	assert.Error(t, updateRoleReq{Role: "OWNER"}.Validate())
	assert.Error(t, updateRoleReq{Role: "admin"}.Validate())
}

func TestUpdateProfileReqPartial(t *testing.T) {
	assert.NoError(t, updateProfileReq{}.Validate())

	bad := "ab"
	assert.Error(t, updateProfileReq{Username: &bad}.Validate())

	email := "not-an-email"
	assert.Error(t, updateProfileReq{Email: &email}.Validate())
}

func TestUpdateProfileReqRejectsSuppliedEmptyFields(t *testing.T) {
	// Fields are optional, but a supplied empty string may not blank values
	// that signup requires.
	empty := ""
	assert.Error(t, updateProfileReq{Username: &empty}.Validate())
	assert.Error(t, updateProfileReq{Email: &empty}.Validate())
	assert.Error(t, updateProfileReq{Password: &empty}.Validate())
}
