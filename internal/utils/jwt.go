package utils

import (
	"context" // Context for Redis operations
	"errors"  // Error inspection
	"sync"    // Guards the in-process revocation set
	"time"    // Token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/redis/go-redis/v9" // Revocation list

	"pooltable_tracker/internal/domain" // Identity and error types
)

// Claims carried by session tokens
type Claims struct {
	AccountNumber        string `json:"account_no"` // Account the token was issued for
	jwt.RegisteredClaims // Standard JWT claims, ID is used for revocation
}

// GenerateJWT creates a token for an account, valid for ttl
func GenerateJWT(accountNumber, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountNumber: accountNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        NewID(""),
			Subject:   accountNumber,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.AccountNumber != "" {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

// JWTVerifier resolves bearer tokens to identities and honours revocations made by Revoke.
// Revocations live in Redis when a client is set, otherwise in process memory.
type JWTVerifier struct {
	Secret string
	Redis  *redis.Client

	mu      sync.Mutex           // Guards revoked
	revoked map[string]time.Time // Token ID to expiry, used without Redis
}

// NewJWTVerifier creates a verifier, rdb may be nil
func NewJWTVerifier(secret string, rdb *redis.Client) *JWTVerifier {
	return &JWTVerifier{Secret: secret, Redis: rdb, revoked: make(map[string]time.Time)}
}

func revokedKey(tokenID string) string {
	return "revoked:token:" + tokenID
}

// isRevoked reports whether a token id was revoked
func (v *JWTVerifier) isRevoked(ctx context.Context, tokenID string) bool {
	if v.Redis != nil {
		n, err := v.Redis.Exists(ctx, revokedKey(tokenID)).Result() // Check revocation list
		return err == nil && n > 0                                  // Redis errors do not log users out
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	expiry, ok := v.revoked[tokenID]
	if ok && time.Now().After(expiry) {
		delete(v.revoked, tokenID) // Expired tokens fail parsing anyway
		return false
	}
	return ok
}

// Verify returns the identity for a valid, unrevoked token
func (v *JWTVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := ParseJWT(token, v.Secret)
	if err != nil {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	if claims.ID != "" && v.isRevoked(ctx, claims.ID) {
		return nil, domain.ErrUnauthorized
	}
	return &domain.Identity{AccountNumber: claims.AccountNumber, TokenID: claims.ID}, nil
}

// Revoke blocks a token until it would have expired anyway
func (v *JWTVerifier) Revoke(ctx context.Context, token string) error {
	claims, err := ParseJWT(token, v.Secret)
	if err != nil {
		return errors.Join(domain.ErrUnauthorized, err)
	}
	expiry := time.Now().Add(time.Minute) // Tokens without exp are blocked briefly
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	ttl := time.Until(expiry)
	if ttl <= 0 || claims.ID == "" {
		return nil
	}
	if v.Redis != nil {
		return v.Redis.Set(ctx, revokedKey(claims.ID), 1, ttl).Err()
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.revoked == nil {
		v.revoked = make(map[string]time.Time)
	}
	for id, exp := range v.revoked {
		// Drop entries whose tokens expired
		if time.Now().After(exp) {
			delete(v.revoked, id)
		}
	}
	v.revoked[claims.ID] = expiry
	return nil
}
