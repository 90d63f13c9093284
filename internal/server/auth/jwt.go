// Package auth implements token issuance/verification and password hashing
// for the staffdesk server. Access and refresh tokens are HS256 JWTs signed
// with distinct secrets; the embedded identity is {id, username}.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/staffdesk-io/staffdesk/internal/common"
)

// Identity is the payload embedded in every token.
type Identity struct {
	ID       int64
	Username string
}

// Claims extends the registered claims with the staffdesk identity fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
}

// GenerateToken signs the identity with the given secret, expiring after
// validityDuration. The same function mints both access and refresh tokens;
// the caller chooses the secret and lifetime.
func GenerateToken(identity Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:   identity.ID,
		Username: identity.Username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetIdentityFromToken verifies signature and expiry and returns the embedded
// identity. Expired tokens yield common.ErrTokenExpired; every other failure
// (bad signature, malformed string, wrong algorithm) yields
// common.ErrInvalidToken. The refresh registry is never consulted here.
func GetIdentityFromToken(tokenString string, secretKey []byte) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, common.ErrInvalidToken
	}

	if !token.Valid {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{ID: claims.UserID, Username: claims.Username}, nil
}
