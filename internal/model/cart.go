package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItemRequest adds a course schedule to the cart.
type CartItemRequest struct {
	CourseScheduleID int `json:"ms_id" binding:"required,gt=0"`
}

// Cart is the enriched view of a user's cart.
type Cart struct {
	Items      []CourseScheduleDetail `json:"items"`
	TotalPrice decimal.Decimal        `json:"total_price"`
	UpdatedAt  *time.Time             `json:"updated_at,omitempty"`
}
