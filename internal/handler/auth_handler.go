package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/middleware"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/response"
	"github.com/soupclass/soup-backend/internal/service"
	"github.com/soupclass/soup-backend/internal/validator"
)

// AuthHandler handles registration, login and account recovery endpoints.
type AuthHandler struct {
	authService *service.AuthService
	frontendURL string
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, frontendURL string, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		frontendURL: frontendURL,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Register godoc
// POST /api/v1/auth/register
// Creates an unconfirmed account and emails a confirmation link.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// ResendConfirmation godoc
// POST /api/v1/auth/resend-confirmation-email
// Always answers 200 so callers cannot tell which accounts exist.
func (h *AuthHandler) ResendConfirmation(c *gin.Context) {
	var req model.EmailRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.ResendConfirmation(c.Request.Context(), req.Email); err != nil {
		h.log.Error().Err(err).Msg("Resend confirmation failed")
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Jika email terdaftar, tautan konfirmasi telah dikirim."})
}

// ConfirmEmail godoc
// GET /api/v1/auth/confirm-email?user_id=&token=
// Consumes the confirmation token and redirects to the frontend.
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	var q model.ConfirmEmailQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.ConfirmEmail(c.Request.Context(), q.UserID, q.Token); err != nil {
		if errors.Is(err, service.ErrInvalidLink) {
			response.Fail(c, http.StatusBadRequest, response.ErrLinkInvalid)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Redirect(http.StatusFound, h.frontendURL)
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password and returns an access/refresh token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		case errors.Is(err, service.ErrEmailNotConfirmed):
			response.Fail(c, http.StatusForbidden, response.ErrEmailNotConfirmed)
		case errors.Is(err, service.ErrAccountInactive):
			response.Fail(c, http.StatusForbidden, response.ErrAccountInactive)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

// RefreshToken godoc
// POST /api/v1/auth/refresh-token
// Rotates the refresh token. The access token may be expired.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.AccessToken, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshTokenInvalid):
			response.Fail(c, http.StatusUnauthorized, response.ErrRefreshInvalid)
		case errors.Is(err, service.ErrAccountInactive):
			response.Fail(c, http.StatusForbidden, response.ErrAccountInactive)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

// Logout godoc
// POST /api/v1/auth/logout
// Revokes the caller's refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ForgotPassword godoc
// POST /api/v1/auth/forgot-password
// Always answers 200; a reset token is mailed only to known addresses.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req model.EmailRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.log.Error().Err(err).Msg("Forgot password failed")
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Jika email terdaftar, instruksi reset kata sandi telah dikirim."})
}

// ResetPassword godoc
// POST /api/v1/auth/reset-password
// Consumes a reset token, sets the new password and revokes existing sessions.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLink):
			response.Fail(c, http.StatusBadRequest, response.ErrLinkInvalid)
		case errors.Is(err, service.ErrPasswordUnchanged):
			response.Fail(c, http.StatusBadRequest, response.ErrPasswordUnchanged)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the identity carried by the access token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user_id":     claims.UserID,
		"email":       claims.Email,
		"name":        claims.Name,
		"role":        claims.Role,
		"status":      claims.Status,
		"permissions": claims.Permissions,
	})
}
