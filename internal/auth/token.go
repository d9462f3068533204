package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/stuffshop/backend/internal/domain"
	"github.com/stuffshop/backend/internal/problem"
)

// TokenManager issues and verifies the signed bearer tokens that carry a
// caller's identity and role.
type TokenManager struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenManager builds a manager signing with the given secret; lifetime
// is expressed in hours.
func NewTokenManager(secret string, lifetimeHours int) *TokenManager {
	if lifetimeHours <= 0 {
		lifetimeHours = 1
	}
	return &TokenManager{secret: []byte(secret), lifetime: time.Duration(lifetimeHours) * time.Hour}
}

// Claims describes the JWT payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject. Expiry is always
// issued-at plus the configured lifetime.
func (tm *TokenManager) Issue(subject string, role domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.lifetime)
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify reports whether the token is structurally valid, carries a good
// signature, is unexpired, and matches the expected subject and role (by
// name). It never returns an error: any mismatch, including unparseable
// input, is simply false.
func (tm *TokenManager) Verify(tokenStr, subject string, role domain.Role) bool {
	claims, err := tm.parse(tokenStr, true)
	if err != nil {
		return false
	}
	return claims.Subject == subject && claims.Role == string(role)
}

// ExtractSubject decodes the subject from a signed token without checking
// expiry.
func (tm *TokenManager) ExtractSubject(tokenStr string) (string, error) {
	claims, err := tm.parse(tokenStr, false)
	if err != nil {
		return "", problem.NewMalformedToken("token could not be decoded")
	}
	return claims.Subject, nil
}

// ExtractRole decodes the role claim from a signed token without checking
// expiry.
func (tm *TokenManager) ExtractRole(tokenStr string) (domain.Role, error) {
	claims, err := tm.parse(tokenStr, false)
	if err != nil {
		return "", problem.NewMalformedToken("token could not be decoded")
	}
	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return "", problem.NewMalformedToken("token carries an unknown role")
	}
	return role, nil
}

func (tm *TokenManager) parse(tokenStr string, validateClaims bool) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if !validateClaims {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tm.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
