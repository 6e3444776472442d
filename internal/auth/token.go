package auth

import (
	"context"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "trade2cart/internal/errors"
)

// Principal is the authenticated caller extracted from a bearer token. The
// phone number is the stable identity; the vendor profile is resolved from it
// per request.
type Principal struct {
	Phone string
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

type tokenClaims struct {
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token carrying the phone claim.
func IssueToken(phone, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt secret is empty")
	}

	now := time.Now()
	claims := tokenClaims{
		Phone: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   phone,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a signed token and returns its principal.
func ParseToken(tokenStr, secret string) (*Principal, error) {
	if secret == "" {
		return nil, apperrors.NewUnauthorizedError("jwt secret is empty")
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewUnauthorizedError("invalid token")
	}
	if claims.Phone == "" {
		return nil, apperrors.NewUnauthorizedError("token missing phone claim")
	}

	return &Principal{Phone: claims.Phone}, nil
}
