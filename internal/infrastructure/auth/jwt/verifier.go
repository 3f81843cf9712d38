package jwt

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/rotisserie/eris"

	"cartaseo/app/internal/domain/auth"
)

// Claims is the bearer token payload of an editor.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwtlib.RegisteredClaims
}

// Verifier issues and validates HS256 bearer tokens.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier constructs a verifier for the shared secret.
func NewVerifier(secret string) (*Verifier, error) {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return nil, eris.New("jwt secret is required")
	}

	return &Verifier{secret: []byte(trimmed), now: time.Now}, nil
}

// Issue signs a token for the subject valid for ttl.
func (v *Verifier) Issue(subject, role string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", eris.New("token subject is required")
	}
	if ttl <= 0 {
		return "", eris.New("token ttl must be positive")
	}

	issuedAt := v.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwtlib.NewNumericDate(issuedAt),
			ExpiresAt: jwtlib.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", eris.Wrap(err, "signing token")
	}
	return signed, nil
}

// Verify parses the token and returns the principal it names.
func (v *Verifier) Verify(token string) (auth.Principal, error) {
	claims := &Claims{}

	parsed, err := jwtlib.ParseWithClaims(strings.TrimSpace(token), claims, func(token *jwtlib.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, eris.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwtlib.WithTimeFunc(v.now), jwtlib.WithExpirationRequired())
	if err != nil {
		return auth.Principal{}, eris.Wrap(auth.ErrUnauthenticated, err.Error())
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return auth.Principal{}, eris.Wrap(auth.ErrUnauthenticated, "invalid token")
	}

	return auth.Principal{Subject: claims.Subject, Role: claims.Role}, nil
}
