package model

import "time"

// MyClass is a course schedule the user has purchased.
type MyClass struct {
	CourseScheduleID int       `json:"ms_id"`
	MenuCourseID     int       `json:"menu_course_id"`
	Name             string    `json:"name"`
	Image            *string   `json:"image"`
	Category         string    `json:"category"`
	Schedule         time.Time `json:"schedule"`
	InvoiceID        int       `json:"invoice_id"`
}
