//go:build e2e

package e2e

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

// plantToken stores a single-use token the way the server does, so the
// test can use it without reading mail.
func plantToken(t *testing.T, rdb *redis.Client, key, token string) {
	t.Helper()
	sum := sha256.Sum256([]byte(token))
	require.NoError(t, rdb.Set(context.Background(), key, hex.EncodeToString(sum[:]), time.Hour).Err())
}

// expiredAccessToken signs a token with the server secret that expired a minute ago.
func expiredAccessToken(t *testing.T, userID int, email string) string {
	t.Helper()
	cfg := &config.Config{JWTSecret: config.Load().JWTSecret, JWTExpiry: -time.Minute}
	auth := service.NewAuthService(cfg, nil, nil, nil, zerolog.Nop())
	token, _, err := auth.GenerateAccessToken(&model.User{
		ID: userID, Email: email, Name: "Pengguna Uji", Role: model.RoleUser, Status: model.StatusActive,
	})
	require.NoError(t, err)
	return token
}

func TestAuthLifecycle(t *testing.T) {
	rdb := newRedis(t)
	email := fmt.Sprintf("e2e_life_%s@example.com", suffix)
	userID := createConfirmedUser(t, email)
	newPass := "password456"

	var pair model.LoginResponse

	t.Run("RefreshRotatesToken", func(t *testing.T) {
		first := loginPair(t, email, userPass)

		resp := do(t, http.MethodPost, "/auth/refresh-token", jsonBody(t, model.RefreshTokenRequest{
			AccessToken: first.AccessToken, RefreshToken: first.RefreshToken,
		}), "application/json", "")
		decodeData(t, resp, http.StatusOK, &pair)
		assert.NotEqual(t, first.RefreshToken, pair.RefreshToken)

		resp = do(t, http.MethodPost, "/auth/refresh-token", jsonBody(t, model.RefreshTokenRequest{
			AccessToken: pair.AccessToken, RefreshToken: first.RefreshToken,
		}), "application/json", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "REFRESH_TOKEN_INVALID", errorCode(t, resp))
	})

	t.Run("RefreshAcceptsExpiredAccessToken", func(t *testing.T) {
		resp := do(t, http.MethodPost, "/auth/refresh-token", jsonBody(t, model.RefreshTokenRequest{
			AccessToken: expiredAccessToken(t, userID, email), RefreshToken: pair.RefreshToken,
		}), "application/json", "")
		decodeData(t, resp, http.StatusOK, &pair)
		require.NotEmpty(t, pair.AccessToken)
	})

	t.Run("UnknownEmailsAreAccepted", func(t *testing.T) {
		unknown := model.EmailRequest{Email: fmt.Sprintf("e2e_nobody_%s@example.com", suffix)}

		resp := do(t, http.MethodPost, "/auth/forgot-password", jsonBody(t, unknown), "application/json", "")
		requireStatus(t, resp, http.StatusOK)
		resp = do(t, http.MethodPost, "/auth/resend-confirmation-email", jsonBody(t, unknown), "application/json", "")
		requireStatus(t, resp, http.StatusOK)
	})

	t.Run("ResetPassword", func(t *testing.T) {
		const token = "e2e-reset-token"
		plantToken(t, rdb, config.CacheKey.PasswordResetKey(userID), token)

		reset := func(password string) *http.Response {
			return do(t, http.MethodPost, "/auth/reset-password", jsonBody(t, model.ResetPasswordRequest{
				Email: email, Token: token, NewPassword: password, ConfirmPassword: password,
			}), "application/json", "")
		}

		// An unchanged password is rejected and leaves the token usable.
		resp := reset(userPass)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "PASSWORD_UNCHANGED", errorCode(t, resp))

		requireStatus(t, reset(newPass), http.StatusOK)

		resp = do(t, http.MethodGet, "/auth/me", nil, "", pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "reset must revoke the session")
		resp.Body.Close()

		resp = reset("password789")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "LINK_INVALID", errorCode(t, resp))

		login(t, email, newPass)
	})
}

func TestConfirmEmailTokenIsSingleUse(t *testing.T) {
	rdb := newRedis(t)
	email := fmt.Sprintf("e2e_confirm_%s@example.com", suffix)
	userID := insertUser(t, email, false)

	const token = "e2e-confirm-token"
	plantToken(t, rdb, config.CacheKey.EmailConfirmationKey(userID), token)

	q := url.Values{}
	q.Set("user_id", fmt.Sprint(userID))
	q.Set("token", token)
	link := baseURL + "/auth/confirm-email?" + q.Encode()

	noRedirect := &http.Client{
		Timeout:       10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}

	resp, err := noRedirect.Get(link)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp, err = noRedirect.Get(link)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "LINK_INVALID", errorCode(t, resp))

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	require.NoError(t, err)
	defer conn.Close(ctx)
	var confirmed bool
	require.NoError(t, conn.QueryRow(ctx, `SELECT email_confirmed FROM users WHERE id = $1`, userID).Scan(&confirmed))
	assert.True(t, confirmed)
}
