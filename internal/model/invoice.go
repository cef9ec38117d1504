package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice aggregates purchased course schedules into a priced order.
type Invoice struct {
	ID              int             `json:"id"`
	NoInvoice       string          `json:"no_invoice"`
	Date            time.Time       `json:"date"`
	TotalCourse     int             `json:"total_course"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	UserID          int             `json:"user_id"`
	UserEmail       string          `json:"user_email,omitempty"`
	PaymentMethodID *int            `json:"payment_method_id"`
	PaymentMethod   *string         `json:"payment_method,omitempty"`
}

// InvoiceLine is one purchased course schedule on an invoice.
type InvoiceLine struct {
	MenuCourseID int             `json:"menu_course_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	ScheduleDate time.Time       `json:"schedule_date"`
	Price        decimal.Decimal `json:"price"`
}

// InvoiceDetail is an invoice with its purchased lines.
type InvoiceDetail struct {
	Invoice
	ListCourse []InvoiceLine `json:"list_course"`
}

// CheckoutRequest selects the course schedules to buy.
type CheckoutRequest struct {
	CourseScheduleIDs []int `json:"ms_ids" binding:"omitempty,dive,gt=0"`
	PaymentMethodID   *int  `json:"payment_method_id" binding:"omitempty,gt=0"`
}

// CheckoutResult is returned after a successful checkout.
type CheckoutResult struct {
	InvoiceID   int             `json:"invoice_id"`
	NoInvoice   string          `json:"no_invoice"`
	Date        time.Time       `json:"date"`
	TotalCourse int             `json:"total_course"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	UserID      int             `json:"user_id"`
}

// CourseConflict names a course schedule that blocked a checkout.
type CourseConflict struct {
	CourseScheduleID int    `json:"ms_id"`
	CourseName       string `json:"course_name"`
}
