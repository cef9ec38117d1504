package model

import "time"

// RegisterRequest is the payload for self-service registration.
type RegisterRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`
	Email           string `json:"email" binding:"required,email,max=255"`
	Password        string `json:"password" binding:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResponse is returned after a successful login or token refresh.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
}

// RefreshTokenRequest exchanges a (possibly expired) access token and its refresh token.
type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" binding:"required"`
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// EmailRequest carries a single email address (resend confirmation, forgot password).
type EmailRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// ConfirmEmailQuery is read from the confirmation link.
type ConfirmEmailQuery struct {
	UserID int    `form:"user_id" binding:"required,gt=0"`
	Token  string `form:"token" binding:"required"`
}

// ResetPasswordRequest completes a forgotten-password flow.
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email,max=255"`
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}
