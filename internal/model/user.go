package model

import "time"

// User is a customer or administrator account.
type User struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	Status         Status    `json:"status"`
	EmailConfirmed bool      `json:"email_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateUserRequest is the admin payload for creating a user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     Role   `json:"role" binding:"omitempty,oneof=Admin User"`
	Status   Status `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// UpdateUserRequest is the admin payload for updating a user.
type UpdateUserRequest struct {
	Name   string `json:"name" binding:"required,min=2,max=100"`
	Email  string `json:"email" binding:"required,email,max=255"`
	Status Status `json:"status" binding:"required,oneof=Active Inactive"`
}
