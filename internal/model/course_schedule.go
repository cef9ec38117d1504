package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CourseSchedule binds a menu course to a schedule with a bounded slot counter.
type CourseSchedule struct {
	ID             int       `json:"id"`
	AvailableSlot  int       `json:"available_slot"`
	Status         Status    `json:"status"`
	MenuCourseID   int       `json:"menu_course_id"`
	MenuCourseName string    `json:"menu_course_name"`
	ScheduleID     int       `json:"schedule_id"`
	ScheduleDate   time.Time `json:"schedule_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Purchasable reports whether at least one seat can still be sold.
func (cs *CourseSchedule) Purchasable() bool {
	return cs.AvailableSlot > 0 && cs.Status == StatusActive
}

// CreateCourseScheduleRequest assigns a course to a schedule.
type CreateCourseScheduleRequest struct {
	MenuCourseID  int    `json:"menu_course_id" binding:"required,gt=0"`
	ScheduleID    int    `json:"schedule_id" binding:"required,gt=0"`
	AvailableSlot *int   `json:"available_slot" binding:"required,gte=0"`
	Status        Status `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// UpdateCourseScheduleRequest changes only the slot counter and status.
type UpdateCourseScheduleRequest struct {
	AvailableSlot *int   `json:"available_slot" binding:"required,gte=0"`
	Status        Status `json:"status" binding:"required,oneof=Active Inactive"`
}

// SlotUpdate is published whenever a course schedule's availability changes.
type SlotUpdate struct {
	CourseScheduleID int    `json:"ms_id"`
	AvailableSlot    int    `json:"available_slot"`
	Status           Status `json:"status"`
	Deleted          bool   `json:"deleted,omitempty"`
}

// CourseScheduleDetail is a course schedule joined with its course, category and date.
// It backs checkout, carts and MyClass listings.
type CourseScheduleDetail struct {
	CourseScheduleID int             `json:"ms_id"`
	MenuCourseID     int             `json:"menu_course_id"`
	ScheduleID       int             `json:"schedule_id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Image            *string         `json:"image"`
	Price            decimal.Decimal `json:"price"`
	Schedule         time.Time       `json:"schedule"`
	AvailableSlot    int             `json:"available_slot"`
	Status           Status          `json:"status"`
}
