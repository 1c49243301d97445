package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload carried by an access token: the subject
// username and the flattened role/authority names.
type Claims struct {
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 access tokens. A Redis cache,
// when configured, holds revoked token ids until their natural expiry.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	cache  *RedisCache
}

func NewTokenService(secret, issuer string, ttl time.Duration, cache *RedisCache) *TokenService {
	return &TokenService{secret: []byte(secret), issuer: issuer, ttl: ttl, cache: cache}
}

// Issue signs a token for the given username carrying its authorities.
func (s *TokenService) Issue(username string, authorities []string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username:    username,
		Authorities: authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a token string and rejects revoked tokens.
func (s *TokenService) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	if s.cache != nil && claims.ID != "" {
		revoked, err := s.cache.Exists(ctx, revocationKey(claims.ID))
		if err == nil && revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// Revoke marks the token id as revoked for the remainder of its
// lifetime. Without a cache, logout is a client-side discard.
func (s *TokenService) Revoke(ctx context.Context, claims *Claims) error {
	if s.cache == nil {
		return nil
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return errors.New("token carries no id or expiry to revoke")
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revocationKey(claims.ID), true, remaining)
}

func revocationKey(jti string) string {
	return "revoked_token:" + jti
}
