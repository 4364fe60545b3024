package auth

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claim parsing errors. A missing identifier is distinct from a malformed
// one: the former means an anonymous caller, the latter a broken token.
var (
	ErrNoUserClaim      = errors.New("no user identifier claim present")
	ErrInvalidUserClaim = errors.New("user identifier claim is not numeric")
)

// adminRoles are the normalised claim values that grant admin capability.
var adminRoles = map[string]struct{}{
	"ADMIN":      {},
	"ROLE_ADMIN": {},
}

// IsAdmin reports whether the claim set carries admin capability. The
// is-admin fact can arrive in three shapes: a role string, a space-separated
// scope string, or an authorities collection. All three are folded through
// one normalisation pass into a role set before the membership test, so the
// decision is identical regardless of which shape the token used.
func IsAdmin(claims jwt.MapClaims) bool {
	if claims == nil {
		return false
	}
	for role := range normalizedRoles(claims) {
		if _, ok := adminRoles[role]; ok {
			return true
		}
	}
	return false
}

// HasExactAdminScope reports whether the scope claim equals "ROLE_ADMIN"
// exactly, with no normalisation and no role/authorities fallback.
//
// TODO: this stricter gate (used by review moderation endpoints) rejects
// tokens that IsAdmin accepts, e.g. scope "read ROLE_ADMIN" or role "admin".
// Align the two once product decides which rule is intended.
func HasExactAdminScope(claims jwt.MapClaims) bool {
	if claims == nil {
		return false
	}
	scope, ok := claims["scope"].(string)
	return ok && scope == "ROLE_ADMIN"
}

// CurrentUserID extracts the numeric caller identifier from the claim set.
// Preference order: userId, id, sub. Returns ErrNoUserClaim when none is
// present and ErrInvalidUserClaim when the value cannot be parsed as an
// integer; a malformed identifier is never silently ignored.
func CurrentUserID(claims jwt.MapClaims) (int64, error) {
	if claims == nil {
		return 0, ErrNoUserClaim
	}

	for _, key := range []string{"userId", "id", "sub"} {
		value, ok := claims[key]
		if !ok || value == nil {
			continue
		}
		return parseUserID(value)
	}
	return 0, ErrNoUserClaim
}

// normalizedRoles collects every role-like claim value into a single set of
// trimmed, upper-cased strings.
func normalizedRoles(claims jwt.MapClaims) map[string]struct{} {
	roles := make(map[string]struct{})

	if role, ok := claims["role"].(string); ok {
		addRole(roles, role)
	}

	if scope, ok := claims["scope"].(string); ok {
		for _, token := range strings.Fields(scope) {
			addRole(roles, token)
		}
	}

	if authorities, ok := claims["authorities"].([]any); ok {
		for _, entry := range authorities {
			if entry == nil {
				continue
			}
			addRole(roles, fmt.Sprint(entry))
		}
	}

	return roles
}

func addRole(roles map[string]struct{}, value string) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized != "" {
		roles[normalized] = struct{}{}
	}
}

func parseUserID(value any) (int64, error) {
	switch v := value.(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, ErrInvalidUserClaim
		}
		return id, nil
	case float64:
		// JSON numbers decode as float64; reject fractional values.
		if v != math.Trunc(v) {
			return 0, ErrInvalidUserClaim
		}
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, ErrInvalidUserClaim
	}
}
