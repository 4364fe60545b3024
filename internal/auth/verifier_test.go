package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := token.SignedString(secret)
	require.NoError(t, err)
	return raw
}

func TestVerifier_Verify(t *testing.T) {
	secret := []byte("test-secret")

	t.Run("Valid token", func(t *testing.T) {
		v := NewVerifier(secret, "")
		raw := signToken(t, secret, jwt.MapClaims{"sub": "42", "role": "admin"})

		claims, err := v.Verify(raw)

		require.NoError(t, err)
		assert.Equal(t, "42", claims["sub"])
		assert.Equal(t, "admin", claims["role"])
	})

	t.Run("Wrong signing key", func(t *testing.T) {
		v := NewVerifier(secret, "")
		raw := signToken(t, []byte("other-secret"), jwt.MapClaims{"sub": "42"})

		claims, err := v.Verify(raw)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Expired token", func(t *testing.T) {
		v := NewVerifier(secret, "")
		raw := signToken(t, secret, jwt.MapClaims{
			"sub": "42",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		claims, err := v.Verify(raw)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Issuer enforced when configured", func(t *testing.T) {
		v := NewVerifier(secret, "picnic")

		good := signToken(t, secret, jwt.MapClaims{"sub": "42", "iss": "picnic"})
		_, err := v.Verify(good)
		assert.NoError(t, err)

		bad := signToken(t, secret, jwt.MapClaims{"sub": "42", "iss": "someone-else"})
		_, err = v.Verify(bad)
		assert.Error(t, err)

		missing := signToken(t, secret, jwt.MapClaims{"sub": "42"})
		_, err = v.Verify(missing)
		assert.Error(t, err)
	})

	t.Run("Unsigned token rejected", func(t *testing.T) {
		v := NewVerifier(secret, "")
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "42"})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		claims, err := v.Verify(raw)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Garbage input", func(t *testing.T) {
		v := NewVerifier(secret, "")

		claims, err := v.Verify("not-a-token")

		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}
