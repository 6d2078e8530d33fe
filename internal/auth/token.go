package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/blog-gateway/internal/domain"
)

// ErrInvalidOrExpired is returned for any token that fails verification.
var ErrInvalidOrExpired = errors.New("invalid or expired token")

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	expiry string
	now    func() time.Time
}

// NewTokenManager builds a new manager. expiry is the human form of ttl
// (e.g. "30m") and is echoed back to clients on login.
func NewTokenManager(secret string, ttl time.Duration, expiry string) *TokenManager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
		expiry = "30m"
	}
	if expiry == "" {
		expiry = ttl.String()
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, expiry: expiry, now: time.Now}
}

// WithClock returns a copy of the manager that reads time from now.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *tm
	cp.now = now
	return &cp
}

// Claims describes JWT payload.
type Claims struct {
	Scope          []domain.Scope `json:"scope"`
	IssuedAtMillis int64          `json:"issuedAt"`
	jwt.RegisteredClaims
}

// HasScope reports whether the claims carry scope.
func (c *Claims) HasScope(scope domain.Scope) bool {
	for _, s := range c.Scope {
		if s == scope {
			return true
		}
	}
	return false
}

// Issue builds and signs a token carrying the fixed scope list.
func (tm *TokenManager) Issue() (string, string, error) {
	now := tm.now()
	claims := &Claims{
		Scope:          domain.IssuedScopes(),
		IssuedAtMillis: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(ceilSecond(now.Add(tm.ttl))),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", "", err
	}
	return tokenString, tm.expiry, nil
}

// Verify validates the signature and expiry and returns the decoded claims.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrExpired, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidOrExpired
	}
	if len(claims.Scope) == 0 || claims.IssuedAtMillis <= 0 {
		return nil, fmt.Errorf("%w: malformed claims", ErrInvalidOrExpired)
	}
	// exp only has second precision; issuedAt carries the exact deadline.
	deadline := time.UnixMilli(claims.IssuedAtMillis).Add(tm.ttl)
	if !tm.now().Before(deadline) {
		return nil, fmt.Errorf("%w: token is expired", ErrInvalidOrExpired)
	}
	return claims, nil
}

func ceilSecond(t time.Time) time.Time {
	if r := t.Truncate(time.Second); r.Before(t) {
		return r.Add(time.Second)
	}
	return t
}

// Expiry returns the configured expiry string.
func (tm *TokenManager) Expiry() string {
	return tm.expiry
}
