package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerAddr   = "0x1111111111111111111111111111111111111111"
	backendAddr = "0x2222222222222222222222222222222222222222"
)

func TestRoles_HasRole(t *testing.T) {
	roles, err := NewRoles(ownerAddr, backendAddr)
	require.NoError(t, err)

	assert.True(t, roles.HasRole(ownerAddr, RoleOwner))
	assert.True(t, roles.HasRole(backendAddr, RoleBackend))

	assert.False(t, roles.HasRole(ownerAddr, RoleBackend))
	assert.False(t, roles.HasRole(backendAddr, RoleOwner))
	assert.False(t, roles.HasRole("0x3333333333333333333333333333333333333333", RoleOwner))
	assert.False(t, roles.HasRole("garbage", RoleOwner))
	assert.False(t, roles.HasRole(ownerAddr, "unknown-role"))

	// Hex casing does not matter.
	assert.True(t, roles.HasRole("0X1111111111111111111111111111111111111111", RoleOwner))
}

func TestRoles_InvalidConstruction(t *testing.T) {
	_, err := NewRoles("bad", backendAddr)
	assert.Error(t, err)

	_, err = NewRoles(ownerAddr, "bad")
	assert.Error(t, err)
}

func TestRoles_SetOwner(t *testing.T) {
	roles, err := NewRoles(ownerAddr, backendAddr)
	require.NoError(t, err)

	assert.Error(t, roles.SetOwner("bad"))
	assert.True(t, roles.HasRole(ownerAddr, RoleOwner))

	newOwner := "0x4444444444444444444444444444444444444444"
	require.NoError(t, roles.SetOwner(newOwner))
	assert.True(t, roles.HasRole(newOwner, RoleOwner))
	assert.False(t, roles.HasRole(ownerAddr, RoleOwner))
}

func TestTokenAuth_IssueAndParse(t *testing.T) {
	ta := NewTokenAuth("test-secret")

	token, err := ta.IssueToken(ownerAddr, time.Hour)
	require.NoError(t, err)

	address, err := ta.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, ownerAddr, address)
}

func TestTokenAuth_RejectsBadTokens(t *testing.T) {
	ta := NewTokenAuth("test-secret")

	_, err := ta.IssueToken("not-an-address", time.Hour)
	assert.Error(t, err)

	_, err = ta.ParseToken("not.a.token")
	assert.Error(t, err)

	otherSecret := NewTokenAuth("other-secret")
	token, err := otherSecret.IssueToken(ownerAddr, time.Hour)
	require.NoError(t, err)

	_, err = ta.ParseToken(token)
	assert.Error(t, err)

	expired, err := ta.IssueToken(ownerAddr, -time.Minute)
	require.NoError(t, err)

	_, err = ta.ParseToken(expired)
	assert.Error(t, err)
}
