// Package policy makes every authorization decision in one place: a user
// acts only on resources they own, an admin acts on anything, and nobody
// changes their own role. Decisions are pure functions of the token claims,
// evaluated per request.
package policy

import (
	"passvault/internal/core/auth"
	"passvault/internal/domain"
)

// CanAccess reports whether the caller may act on a resource owned by
// resourceOwnerID.
func CanAccess(claims *auth.Claims, resourceOwnerID string) bool {
	if claims == nil {
		return false
	}
	if claims.Role == domain.RoleAdmin {
		return true
	}
	return claims.UID == resourceOwnerID
}

// CanAccessAll reports whether the caller sees every record rather than an
// owner-scoped view.
func CanAccessAll(claims *auth.Claims) bool {
	return claims != nil && claims.Role == domain.RoleAdmin
}

// CanChangeRole guards role transitions: admin only, and never on the
// caller's own account regardless of role.
func CanChangeRole(claims *auth.Claims, targetID string) error {
	if claims == nil || claims.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if claims.UID == targetID {
		return domain.ErrSelfModification
	}
	return nil
}
