package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"passvault/internal/core/auth"
	"passvault/internal/domain"
)

func userClaims(uid string) *auth.Claims {
	return &auth.Claims{UID: uid, Role: domain.RoleUser}
}

func adminClaims(uid string) *auth.Claims {
	return &auth.Claims{UID: uid, Role: domain.RoleAdmin}
}

func TestCanAccess(t *testing.T) {
	assert.True(t, CanAccess(userClaims("u1"), "u1"))
	assert.False(t, CanAccess(userClaims("u1"), "u2"))
	assert.True(t, CanAccess(adminClaims("a1"), "u2"), "admin overrides ownership")
	assert.False(t, CanAccess(nil, "u1"))
}

func TestCanAccessAll(t *testing.T) {
	assert.False(t, CanAccessAll(userClaims("u1")))
	assert.True(t, CanAccessAll(adminClaims("a1")))
	assert.False(t, CanAccessAll(nil))
}

func TestCanChangeRole(t *testing.T) {
	assert.NoError(t, CanChangeRole(adminClaims("a1"), "u2"))
	assert.ErrorIs(t, CanChangeRole(adminClaims("a1"), "a1"), domain.ErrSelfModification)
	assert.ErrorIs(t, CanChangeRole(userClaims("u1"), "u2"), domain.ErrForbidden)
	// The self guard holds even if a non-admin somehow reaches this point.
	assert.ErrorIs(t, CanChangeRole(userClaims("u1"), "u1"), domain.ErrForbidden)
	assert.ErrorIs(t, CanChangeRole(nil, "u1"), domain.ErrForbidden)
}
