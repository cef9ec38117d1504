package service

import (
	"context"
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(expiry time.Duration) *AuthService {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: expiry, BcryptCost: 4}
	return NewAuthService(cfg, nil, nil, nil, zerolog.Nop())
}

var testUser = &model.User{ID: 12, Name: "User One", Email: "user1@email.com", Role: model.RoleUser, Status: model.StatusActive}

func TestGenerateAndValidateToken(t *testing.T) {
	s := newTestAuthService(time.Hour)

	token, expiresAt, err := s.GenerateAccessToken(testUser)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 12, claims.UserID)
	assert.Equal(t, strconv.Itoa(12), claims.Subject)
	assert.Equal(t, "user1@email.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, model.StatusActive, claims.Status)
	assert.NotEmpty(t, claims.ID)
	assert.Empty(t, claims.Permissions)
	assert.False(t, claims.IsAdmin())
}

func TestGenerateAccessToken_AdminCarriesPermissions(t *testing.T) {
	s := newTestAuthService(time.Hour)
	admin := &model.User{ID: 1, Email: "admin@email.com", Role: model.RoleAdmin, Status: model.StatusActive}

	token, _, err := s.GenerateAccessToken(admin)
	require.NoError(t, err)
	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
	assert.Contains(t, claims.Permissions, string(model.PermissionCatalogWrite))
}

func TestValidateToken_Expired(t *testing.T) {
	s := newTestAuthService(-time.Minute)
	token, _, err := s.GenerateAccessToken(testUser)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	claims, err := s.parseExpiredToken(token)
	require.NoError(t, err)
	assert.Equal(t, 12, claims.UserID)
}

func TestValidateToken_RejectsForeignSignatures(t *testing.T) {
	s := newTestAuthService(time.Hour)
	other := &AuthService{cfg: &config.Config{JWTSecret: "other", JWTExpiry: time.Hour}}

	token, _, err := other.GenerateAccessToken(testUser)
	require.NoError(t, err)
	_, err = s.ValidateToken(token)
	assert.Error(t, err)
	_, err = s.parseExpiredToken(token)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 12})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.ValidateToken(unsigned)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	s := newTestAuthService(time.Hour)
	hash, err := s.HashPassword("Admin123!")
	require.NoError(t, err)

	assert.NoError(t, s.CheckPassword(hash, "Admin123!"))
	assert.ErrorIs(t, s.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestOpaqueTokens(t *testing.T) {
	a, err := newOpaqueToken(refreshTokenLen)
	require.NoError(t, err)
	b, err := newOpaqueToken(refreshTokenLen)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	raw, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, refreshTokenLen)

	stored := hashToken(a)
	assert.Len(t, stored, 64)
	assert.True(t, tokenMatches(stored, a))
	assert.False(t, tokenMatches(stored, b))
}

func TestConfirmationLink(t *testing.T) {
	s := &AuthService{cfg: &config.Config{PublicBaseURL: "https://api.soup.test"}}
	link := s.confirmationLink(5, "a+b/c")
	assert.Equal(t, "https://api.soup.test/api/v1/auth/confirm-email?token=a%2Bb%2Fc&user_id=5", link)
}

func TestRefresh_RejectsForeignAccessTokenBeforeLookup(t *testing.T) {
	s := newTestAuthService(time.Hour)
	other := &AuthService{cfg: &config.Config{JWTSecret: "other", JWTExpiry: -time.Minute}}
	forged, _, err := other.GenerateAccessToken(testUser)
	require.NoError(t, err)

	// rdb is nil: a lookup would panic.
	_, err = s.Refresh(context.Background(), forged, "refresh")
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
	_, err = s.Refresh(context.Background(), "not-a-jwt", "refresh")
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestConfirmEmail_StoreFailureIsNotAnInvalidLink(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { rdb.Close() })
	s := NewAuthService(&config.Config{JWTSecret: "test-secret"}, rdb, nil, nil, zerolog.Nop())

	err := s.ConfirmEmail(context.Background(), 5, "token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidLink)
	assert.Contains(t, err.Error(), "consume token")
}
