package auth

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrUnauthenticated indicates a mutating call was made without a principal.
var ErrUnauthenticated = eris.New("authentication required")

// Principal identifies the authenticated caller of a mutating operation.
type Principal struct {
	Subject string
	Role    string
}

type contextKey struct{}

// WithPrincipal returns a child context carrying the principal.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, principal)
}

// FromContext returns the principal attached to the context, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	principal, ok := ctx.Value(contextKey{}).(Principal)
	if !ok || strings.TrimSpace(principal.Subject) == "" {
		return Principal{}, false
	}
	return principal, true
}

// Require returns the principal or ErrUnauthenticated wrapped with the operation name.
func Require(ctx context.Context, operation string) (Principal, error) {
	principal, ok := FromContext(ctx)
	if !ok {
		return Principal{}, eris.Wrap(ErrUnauthenticated, operation)
	}
	return principal, nil
}
