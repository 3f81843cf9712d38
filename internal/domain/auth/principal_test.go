package auth

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
)

func TestRequireRejectsAnonymousContext(t *testing.T) {
	t.Parallel()

	_, err := Require(context.Background(), "generating pages")
	if err == nil {
		t.Fatalf("expected error for anonymous context")
	}
	if !eris.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestRequireRejectsBlankSubject(t *testing.T) {
	t.Parallel()

	ctx := WithPrincipal(context.Background(), Principal{Subject: "  "})
	if _, err := Require(ctx, "updating page"); !eris.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for blank subject, got %v", err)
	}
}

func TestRequireReturnsPrincipal(t *testing.T) {
	t.Parallel()

	ctx := WithPrincipal(context.Background(), Principal{Subject: "editor-1", Role: "admin"})
	principal, err := Require(ctx, "generating pages")
	if err != nil {
		t.Fatalf("Require returned error: %v", err)
	}
	if principal.Subject != "editor-1" || principal.Role != "admin" {
		t.Fatalf("unexpected principal %#v", principal)
	}
}
