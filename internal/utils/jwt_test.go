package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pooltable_tracker/internal/domain"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("ACC001", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "ACC001", claims.AccountNumber)
	assert.NotEmpty(t, claims.ID)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpiredAndForeignTokens(t *testing.T) {
	expired, err := GenerateJWT("ACC001", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noAccount, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseJWT(noAccount, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{AccountNumber: "ACC001"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseJWT(hs512, "secret")
	assert.Error(t, err)
}

func TestJWTVerifierWithoutRedis(t *testing.T) {
	v := NewJWTVerifier("secret", nil)
	token, err := GenerateJWT("ACC001", "secret", time.Hour)
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "ACC001", id.AccountNumber)
	other, err := GenerateJWT("ACC001", "secret", time.Hour)
	require.NoError(t, err)

	require.NoError(t, v.Revoke(context.Background(), token))
	_, err = v.Verify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Revoking one session leaves the others valid
	_, err = v.Verify(context.Background(), other)
	assert.NoError(t, err)

	_, err = v.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestJWTVerifierRevocation(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	v := NewJWTVerifier("secret", rdb)
	ctx := context.Background()

	token, err := GenerateJWT("ACC001", "secret", time.Hour)
	require.NoError(t, err)
	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	key := "revoked:token:" + claims.ID

	mock.CustomMatch(func(expected, actual []interface{}) error { return nil }).
		ExpectSet(key, 1, time.Hour).SetVal("OK")
	require.NoError(t, v.Revoke(ctx, token))

	mock.ExpectExists(key).SetVal(1)
	_, err = v.Verify(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	mock.ExpectExists(key).SetErr(errors.New("connection refused"))
	id, err := v.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "ACC001", id.AccountNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJWTVerifierForgetsExpiredRevocations(t *testing.T) {
	v := NewJWTVerifier("secret", nil)
	v.revoked["stale"] = time.Now().Add(-time.Second)

	assert.False(t, v.isRevoked(context.Background(), "stale"))
	assert.NotContains(t, v.revoked, "stale")
}
