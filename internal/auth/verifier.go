package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier verifies HMAC-SHA256 signed access tokens and returns their
// claim set. The signing key is injected at construction.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a Verifier with the given signing key. When issuer is
// non-empty, tokens must carry a matching iss claim.
func NewVerifier(secret []byte, issuer string) *Verifier {
	return &Verifier{
		secret: secret,
		issuer: issuer,
	}
}

// Verify parses and validates a raw token string and returns its claims.
func (v *Verifier) Verify(raw string) (jwt.MapClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
