package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried by session tokens. Admin routes accept RoleAdmin only;
// OTP verification issues RoleCitizen tokens, which must never pass the
// admin gate.
const (
	RoleAdmin   = "admin"
	RoleCitizen = "citizen"
)

type Claims struct {
	Sub   int64  `json:"sub"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func NewAdminToken(adminID int64, username, secret string, ttl time.Duration) (string, error) {
	return newToken(adminID, username, RoleAdmin, secret, ttl)
}

func NewCitizenToken(email, secret string, ttl time.Duration) (string, error) {
	return newToken(0, email, RoleCitizen, secret, ttl)
}

func newToken(sub int64, email, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Sub:   sub,
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Audience:  []string{"complaint-portal"},
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse verifies signature and expiry and returns the claims. Any
// malformed, forged, or expired token yields an error.
func Parse(tokenString, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := tok.Claims.(*Claims); ok && tok.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
