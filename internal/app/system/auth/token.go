// internal/app/system/auth/token.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the stateless credential issued at join time. It binds the
// bearer to a {group, user} pair and nothing more: the admin flag is
// never embedded, because role is re-derived from live group state on
// every request (see Guard). Claim keys stay short ("g"/"u") to keep
// tokens compact.
type Claims struct {
	GroupID string `json:"g"`
	UserID  string `json:"u"`
	jwt.RegisteredClaims
}

// ErrInvalidToken is returned by Verify for any token that fails
// structural, signature, or expiry validation.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and verifies bearer credentials with HMAC-SHA256.
// Verification is purely cryptographic/structural and never consults
// the repository; liveness is the Guard's job.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

// NewTokenManager builds a TokenManager from the configured signing
// secret and token lifetime.
func NewTokenManager(secret string, expiry time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is required but was empty")
	}
	return &TokenManager{secret: []byte(secret), expiry: expiry}, nil
}

// Issue signs a credential for the given group/user pair.
func (m *TokenManager) Issue(groupID, userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		GroupID: groupID,
		UserID:  userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token string. It rejects malformed
// tokens, wrong or missing signatures, non-HS256 algorithms, expired
// tokens, and tokens without both subject ids.
func (m *TokenManager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.GroupID == "" || claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing subject claims", ErrInvalidToken)
	}
	return claims, nil
}
