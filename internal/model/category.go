package model

import "time"

// Category groups menu courses.
type Category struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Image           *string   `json:"image"`
	Description     string    `json:"description"`
	MenuCourseCount int       `json:"menu_course_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CategoryForm is the multipart payload for creating or updating a category.
// The optional image is read separately from the "image" file field.
type CategoryForm struct {
	Name        string `form:"name" binding:"required,min=2,max=100,alphaspace"`
	Description string `form:"description" binding:"max=1000"`
}
