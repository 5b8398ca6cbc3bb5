// Package access holds the dashboard caller identity and the capability checks
// applied to it.
package access

import (
	"context"
	"errors"
	"strings"
)

// ErrForbidden is returned when an authenticated caller lacks the capability
// an operation requires.
var ErrForbidden = errors.New("access: forbidden")

// Role is the dashboard role carried by an authenticated caller.
type Role string

const (
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a claim value. Unknown values return false.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleStaff:
		return RoleStaff, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// CanView reports whether the role may read submissions.
func CanView(role Role) bool {
	return role == RoleStaff || role == RoleAdmin
}

// CanDelete reports whether the role may remove submissions.
func CanDelete(role Role) bool {
	return role == RoleAdmin
}

// Principal is the authenticated dashboard caller.
type Principal struct {
	Subject string
	Name    string
	Role    Role
}

type contextKey struct{}

// WithPrincipal returns a child context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// PrincipalFromContext returns the caller stored by the auth middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}

// RequireView returns ErrForbidden unless the context carries a caller allowed to view.
func RequireView(ctx context.Context) (Principal, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok || !CanView(p.Role) {
		return p, ErrForbidden
	}
	return p, nil
}

// RequireDelete returns ErrForbidden unless the context carries an admin.
func RequireDelete(ctx context.Context) (Principal, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok || !CanDelete(p.Role) {
		return p, ErrForbidden
	}
	return p, nil
}
