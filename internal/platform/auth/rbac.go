// Package auth provides bearer-token authentication and role-based
// capability checks over the closed role set {patient, insurer}.
package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Role is one of the closed set of caller roles.
type Role string

const (
	RolePatient Role = "patient"
	RoleInsurer Role = "insurer"
)

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RolePatient, RoleInsurer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Identity describes the authenticated caller.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

// CanViewClaim reports whether the caller may read a claim owned by ownerID.
// Insurers read any claim; patients only their own.
func (id Identity) CanViewClaim(ownerID uuid.UUID) bool {
	switch id.Role {
	case RoleInsurer:
		return true
	case RolePatient:
		return id.UserID == ownerID
	default:
		return false
	}
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller identity stored by the auth
// middleware. The second return is false for unauthenticated contexts.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
