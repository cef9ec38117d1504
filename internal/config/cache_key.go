package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RefreshTokenKey returns the cache key holding the hash of a user's refresh token
func (r *CacheKeyStruct) RefreshTokenKey(userID int) string {
	return fmt.Sprintf("auth:refresh:%d", userID)
}

// EmailConfirmationKey returns the cache key for a pending email confirmation token
func (r *CacheKeyStruct) EmailConfirmationKey(userID int) string {
	return fmt.Sprintf("auth:confirm:%d", userID)
}

// PasswordResetKey returns the cache key for a pending password reset token
func (r *CacheKeyStruct) PasswordResetKey(userID int) string {
	return fmt.Sprintf("auth:reset:%d", userID)
}

// CartKey returns the cache key for a user's cart hash
func (r *CacheKeyStruct) CartKey(userID int) string {
	return fmt.Sprintf("cart:%d", userID)
}

// SlotUpdatesChannel returns the Redis PubSub channel for course schedule slot changes
func (r *CacheKeyStruct) SlotUpdatesChannel() string {
	return "course_schedules:slots"
}

var CacheKey = NewCacheKeyStruct()
