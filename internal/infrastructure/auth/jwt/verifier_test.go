package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"

	"cartaseo/app/internal/domain/auth"
)

func TestVerifierRoundTrip(t *testing.T) {
	t.Parallel()

	verifier, err := NewVerifier("segredo")
	if err != nil {
		t.Fatalf("NewVerifier returned error: %v", err)
	}

	token, err := verifier.Issue("editor@cartas.pt", "editor", time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	principal, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if principal.Subject != "editor@cartas.pt" || principal.Role != "editor" {
		t.Fatalf("unexpected principal %#v", principal)
	}
}

func TestVerifierRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	verifier, err := NewVerifier("segredo")
	if err != nil {
		t.Fatalf("NewVerifier returned error: %v", err)
	}

	issued := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	verifier.now = func() time.Time { return issued }
	token, err := verifier.Issue("editor", "", time.Minute)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	verifier.now = func() time.Time { return issued.Add(time.Hour) }
	if _, err := verifier.Verify(token); !eris.Is(err, auth.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestVerifierRejectsForeignSecretAndMethod(t *testing.T) {
	t.Parallel()

	verifier, err := NewVerifier("segredo")
	if err != nil {
		t.Fatalf("NewVerifier returned error: %v", err)
	}
	other, err := NewVerifier("outro")
	if err != nil {
		t.Fatalf("NewVerifier returned error: %v", err)
	}

	foreign, err := other.Issue("editor", "", time.Hour)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Verify(foreign); !eris.Is(err, auth.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for foreign secret, got %v", err)
	}

	unsigned, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.RegisteredClaims{
		Subject:   "editor",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing unsigned token failed: %v", err)
	}
	if _, err := verifier.Verify(unsigned); !eris.Is(err, auth.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for alg none, got %v", err)
	}
}

func TestNewVerifierRequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewVerifier("  "); err == nil {
		t.Fatalf("expected error for blank secret")
	}
}
