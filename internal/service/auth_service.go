package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/mailer"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailNotConfirmed   = errors.New("email not confirmed")
	ErrAccountInactive     = errors.New("account inactive")
	ErrInvalidLink         = errors.New("invalid or expired link")
	ErrPasswordUnchanged   = errors.New("new password must differ from the current one")
	ErrRefreshTokenInvalid = errors.New("invalid refresh token")
	ErrTokenExpired        = errors.New("token expired")
)

const (
	confirmTokenTTL = 24 * time.Hour
	resetTokenTTL   = time.Hour
	refreshTokenLen = 32
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID      int          `json:"user_id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Role        model.Role   `json:"role"`
	Status      model.Status `json:"status"`
	Permissions []string     `json:"permissions,omitempty"`
}

// IsAdmin reports whether the token belongs to an administrator.
func (c *Claims) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// AuthService handles authentication, JWT, refresh tokens and email-based flows.
type AuthService struct {
	cfg      *config.Config
	rdb      *redis.Client
	userRepo *repository.UserRepository
	mail     *MailQueue
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client, userRepo *repository.UserRepository, mail *MailQueue, log zerolog.Logger) *AuthService {
	return &AuthService{
		cfg:      cfg,
		rdb:      rdb,
		userRepo: userRepo,
		mail:     mail,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// ─── Tokens ─────────────────────────────────────────────────────────────────

// GenerateAccessToken signs an HS256 access token for u.
func (s *AuthService) GenerateAccessToken(u *model.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.JWTExpiry)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:      u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Status:      u.Status,
		Permissions: model.PermissionsFor(u.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *AuthService) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return []byte(s.cfg.JWTSecret), nil
}

// ValidateToken parses and validates a JWT, returning the claims.
// Expired tokens yield ErrTokenExpired.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// parseExpiredToken verifies the signature but skips time-based claim checks.
func (s *AuthService) parseExpiredToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.UserID <= 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// newOpaqueToken returns n random bytes encoded as URL-safe base64.
func newOpaqueToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// hashToken is what gets stored in Redis; raw tokens never are.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func tokenMatches(storedHash, token string) bool {
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(hashToken(token))) == 1
}

// consumeScript deletes KEYS[1] only while it still holds ARGV[1].
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// consumeToken atomically deletes a single-use token if it matches.
// Only one of several concurrent callers with the same token gets true.
func (s *AuthService) consumeToken(ctx context.Context, key, token string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.rdb, []string{key}, hashToken(token)).Int()
	if err != nil {
		return false, fmt.Errorf("consume token: %w", err)
	}
	return n == 1, nil
}

// issueTokens creates an access token and rotates the user's refresh token.
func (s *AuthService) issueTokens(ctx context.Context, u *model.User) (*model.LoginResponse, error) {
	access, expiresAt, err := s.GenerateAccessToken(u)
	if err != nil {
		return nil, err
	}

	refresh, err := newOpaqueToken(refreshTokenLen)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, config.CacheKey.RefreshTokenKey(u.ID), hashToken(refresh), s.cfg.RefreshTokenExpiry).Err(); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
	}, nil
}

// ─── Flows ──────────────────────────────────────────────────────────────────

// Register creates an unconfirmed User account and queues the confirmation email.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	hash, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Role:         model.RoleUser,
		Status:       model.StatusActive,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.sendConfirmation(ctx, u); err != nil {
		s.log.Error().Err(err).Int("user_id", u.ID).Msg("Failed to issue confirmation token")
	}
	return u, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, u *model.User) error {
	token, err := newOpaqueToken(refreshTokenLen)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, config.CacheKey.EmailConfirmationKey(u.ID), hashToken(token), confirmTokenTTL).Err(); err != nil {
		return fmt.Errorf("store confirmation token: %w", err)
	}

	link := s.confirmationLink(u.ID, token)
	job, buildErr := mailer.ConfirmEmail(u.Email, u.Name, link)
	s.mail.enqueueBestEffort(ctx, job, buildErr)
	return nil
}

func (s *AuthService) confirmationLink(userID int, token string) string {
	q := url.Values{}
	q.Set("user_id", strconv.Itoa(userID))
	q.Set("token", token)
	return s.cfg.PublicBaseURL + "/api/v1/auth/confirm-email?" + q.Encode()
}

// ResendConfirmation queues a new confirmation link for an unconfirmed account.
// Unknown or already-confirmed emails are silently accepted.
func (s *AuthService) ResendConfirmation(ctx context.Context, email string) error {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if u.EmailConfirmed {
		return nil
	}
	return s.sendConfirmation(ctx, u)
}

// ConfirmEmail consumes a confirmation token and marks the email confirmed.
func (s *AuthService) ConfirmEmail(ctx context.Context, userID int, token string) error {
	ok, err := s.consumeToken(ctx, config.CacheKey.EmailConfirmationKey(userID), token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidLink
	}

	if err := s.userRepo.ConfirmEmail(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidLink
		}
		return err
	}
	return nil
}

// Login authenticates by email and password and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, err
	}
	if !u.EmailConfirmed {
		return nil, ErrEmailNotConfirmed
	}
	if u.Status != model.StatusActive {
		return nil, ErrAccountInactive
	}

	s.log.Info().Int("user_id", u.ID).Str("role", string(u.Role)).Msg("User logged in")
	return s.issueTokens(ctx, u)
}

// Refresh exchanges an access token (expired or not) plus its refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*model.LoginResponse, error) {
	claims, err := s.parseExpiredToken(accessToken)
	if err != nil {
		return nil, ErrRefreshTokenInvalid
	}

	stored, err := s.rdb.Get(ctx, config.CacheKey.RefreshTokenKey(claims.UserID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	if !tokenMatches(stored, refreshToken) {
		return nil, ErrRefreshTokenInvalid
	}

	u, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRefreshTokenInvalid
		}
		return nil, err
	}
	if u.Status != model.StatusActive {
		return nil, ErrAccountInactive
	}
	return s.issueTokens(ctx, u)
}

// Logout revokes the user's refresh token.
func (s *AuthService) Logout(ctx context.Context, userID int) error {
	return s.rdb.Del(ctx, config.CacheKey.RefreshTokenKey(userID)).Err()
}

// ForgotPassword queues a reset token for a known email. Unknown emails are silently accepted.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := newOpaqueToken(refreshTokenLen)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, config.CacheKey.PasswordResetKey(u.ID), hashToken(token), resetTokenTTL).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	job, buildErr := mailer.ResetPassword(u.Email, u.Name, token)
	s.mail.enqueueBestEffort(ctx, job, buildErr)
	return nil
}

// ResetPassword sets a new password using a reset token and revokes the refresh token.
func (s *AuthService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidLink
		}
		return err
	}

	key := config.CacheKey.PasswordResetKey(u.ID)
	stored, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidLink
		}
		return fmt.Errorf("load reset token: %w", err)
	}
	if !tokenMatches(stored, req.Token) {
		return ErrInvalidLink
	}

	// An unchanged password leaves the token usable for another attempt.
	if s.CheckPassword(u.PasswordHash, req.NewPassword) == nil {
		return ErrPasswordUnchanged
	}

	hash, err := s.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	ok, err := s.consumeToken(ctx, key, req.Token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidLink
	}
	if err := s.userRepo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}

	if err := s.rdb.Del(ctx, config.CacheKey.RefreshTokenKey(u.ID)).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.log.Info().Int("user_id", u.ID).Msg("Password reset")
	return nil
}

// HasSession reports whether the user still holds a refresh token.
func (s *AuthService) HasSession(ctx context.Context, userID int) (bool, error) {
	n, err := s.rdb.Exists(ctx, config.CacheKey.RefreshTokenKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	return n > 0, nil
}
