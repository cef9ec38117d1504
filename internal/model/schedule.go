package model

import "time"

// Schedule is a calendar date on which course offerings occur.
type Schedule struct {
	ID           int       `json:"id"`
	ScheduleDate time.Time `json:"schedule_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateScheduleRequest requires a date in the future.
type CreateScheduleRequest struct {
	ScheduleDate time.Time `json:"schedule_date" binding:"required,future"`
}

// UpdateScheduleRequest allows moving a schedule to any date.
type UpdateScheduleRequest struct {
	ScheduleDate time.Time `json:"schedule_date" binding:"required"`
}
