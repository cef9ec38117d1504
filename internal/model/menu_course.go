package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuCourse is a purchasable course on the menu.
type MenuCourse struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Image        *string         `json:"image"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	CategoryID   int             `json:"category_id"`
	CategoryName string          `json:"category_name"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MenuCourseForm is the multipart payload for creating or updating a menu course.
// Price stays a string until validated so "15000.50" keeps its precision.
type MenuCourseForm struct {
	Name        string `form:"name" binding:"required,min=2,max=255,alphaspace"`
	Price       string `form:"price" binding:"required,positive_decimal"`
	Description string `form:"description" binding:"max=1000"`
	CategoryID  int    `form:"category_id" binding:"required,gt=0"`
}

// MenuCourseFilter narrows the course listing.
type MenuCourseFilter struct {
	CategoryID int `form:"category_id" binding:"omitempty,gt=0"`
}
