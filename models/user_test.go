package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	u := User{Password: "hunter22"}
	require.NoError(t, u.HashPassword())

	assert.NotEqual(t, "hunter22", u.Password, "password must not be stored in plaintext")
	assert.True(t, u.ComparePassword("hunter22"))
	assert.False(t, u.ComparePassword("hunter23"))
	assert.False(t, u.ComparePassword(""))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}
