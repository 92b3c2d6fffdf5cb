package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload inside every JWT. DomainID is the only custom field:
// it names the tenant whose data the bearer may touch, and every repository
// query downstream is scoped by it. The server trusts nothing else in the
// request to establish tenancy.
type Claims struct {
	DomainID uuid.UUID `json:"domain_id"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed HS256 token for a domain. HS256 is enough
// here: one service issues and verifies, so a shared secret beats managing a
// key pair.
func GenerateToken(domainID uuid.UUID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		DomainID: domainID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "luxgrid",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ParseToken validates a token string: signature, expiry, and signing method.
// The method check rejects tokens signed with "none" or an asymmetric alg —
// the classic algorithm-confusion attack.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.DomainID == uuid.Nil {
		return nil, fmt.Errorf("token carries no domain")
	}

	return claims, nil
}
