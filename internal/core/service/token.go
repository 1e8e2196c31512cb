package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenCodec issues and verifies signed, time-bounded session tokens.
// Tokens are stateless: validity is purely a function of signature and
// expiry, so a leaked token stays valid until it expires naturally.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed HS256 token carrying the user's identity claims.
func (tc *TokenCodec) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(tc.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(tc.secret)
}

// Verify checks signature integrity and expiry, returning the embedded
// principal. It fails closed: every failure mode collapses to
// domain.ErrInvalidToken and no partial principal is ever returned.
func (tc *TokenCodec) Verify(raw string) (domain.Principal, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || !domain.ValidRole(role) {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	return domain.Principal{ID: sub, Role: role}, nil
}
