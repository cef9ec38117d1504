package model

import "github.com/shopspring/decimal"

// DashboardStats summarizes platform activity for administrators.
type DashboardStats struct {
	TotalUsers      int             `json:"total_users"`
	ActiveUsers     int             `json:"active_users"`
	TotalCategories int             `json:"total_categories"`
	TotalCourses    int             `json:"total_courses"`
	TotalInvoices   int             `json:"total_invoices"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TopCourses      []CourseSales   `json:"top_courses"`
}

// CourseSales is a menu course ranked by seats sold.
type CourseSales struct {
	MenuCourseID int             `json:"menu_course_id"`
	Name         string          `json:"name"`
	Sold         int             `json:"sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}
