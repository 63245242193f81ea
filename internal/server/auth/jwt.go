// Package auth implements password hashing and the signed tokens issued on
// login.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/rpgkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is how long an issued token stays valid.
const DefaultTokenValidity = 60 * time.Minute

// Claims carries the two identity claims plus the registered ones (exp, iat).
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"nameidentifier"`
	UserName string `json:"name"`
}

// TokenIssuer signs HS512 tokens with the server secret.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenIssuer fails with common.ErrMissingTokenSecret when secret is
// empty: the server cannot run without it. A non-positive validity falls
// back to DefaultTokenValidity.
func NewTokenIssuer(secret string, validity time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, common.ErrMissingTokenSecret
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}
	return &TokenIssuer{secret: []byte(secret), validity: validity, now: time.Now}, nil
}

// Secret returns the signing key, for verifiers living in the transport layer.
func (i *TokenIssuer) Secret() []byte {
	return i.secret
}

// Issue builds and signs a token for the given user.
func (i *TokenIssuer) Issue(userID int64, userName string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   strconv.FormatInt(userID, 10),
		UserName: userName,
	})

	return token.SignedString(i.secret)
}

// ParseToken verifies signature and expiry and returns the claims. Only HS512
// is accepted. Expired tokens yield common.ErrTokenExpired, everything else
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// ID returns the numeric user id carried in the nameidentifier claim.
func (c *Claims) ID() (int64, error) {
	id, err := strconv.ParseInt(c.UserID, 10, 64)
	if err != nil {
		return 0, common.ErrInvalidToken
	}
	return id, nil
}
