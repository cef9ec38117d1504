package model

import "time"

// PaymentMethod is a payment channel offered at checkout.
type PaymentMethod struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Logo      *string   `json:"logo"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentMethodForm is the multipart payload; the logo comes from the "logo" file field.
type PaymentMethodForm struct {
	Name   string `form:"name" binding:"required,min=1,max=100"`
	Status Status `form:"status" binding:"omitempty,oneof=Active Inactive"`
}
