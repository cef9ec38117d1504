package service

import "errors"

// Catalogue errors shared by category, course, schedule and course-schedule services.
var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategoryInUse          = errors.New("category still has menu courses")
	ErrMenuCourseNotFound     = errors.New("menu course not found")
	ErrInvalidPrice           = errors.New("price must be a number greater than 0")
	ErrMenuCourseInUse        = errors.New("menu course still has schedules")
	ErrScheduleNotFound       = errors.New("schedule not found")
	ErrScheduleInUse          = errors.New("schedule still has menu courses")
	ErrCourseScheduleNotFound = errors.New("course schedule not found")
	ErrCourseScheduleExists   = errors.New("menu course is already assigned to this schedule")
	ErrCourseScheduleInUse    = errors.New("course schedule has been purchased")
	ErrPaymentMethodNotFound  = errors.New("payment method not found")
	ErrPaymentMethodExists    = errors.New("payment method name already exists")
)
