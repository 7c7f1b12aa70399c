// Package auth covers the administrator surface: signed admin session
// tokens and the grants that decide whether a request may manage campaigns.
package auth

import (
	"errors"
	"time"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

type adminClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

const adminRole = "admin"

// GenerateAdminToken signs a short-lived admin session token.
func GenerateAdminToken(secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Role: adminRole,
	})
	return token.SignedString(secretKey)
}

// VerifyAdminToken checks signature, expiry and role. Expired tokens come
// back as common.ErrTokenExpired, everything else as common.ErrInvalidToken.
func VerifyAdminToken(tokenString string, secretKey []byte) error {
	claims := &adminClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}

	if !token.Valid || claims.Role != adminRole {
		return common.ErrInvalidToken
	}
	return nil
}
