package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/soupclass/soup-backend/internal/model"
)

// InvoiceRepository handles invoice data access.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// Pool exposes the pool so services can open checkout transactions.
func (r *InvoiceRepository) Pool() *pgxpool.Pool {
	return r.pool
}

// NextSequence atomically bumps and returns the counter for prefix.
// The row lock is held until q's transaction ends.
func (r *InvoiceRepository) NextSequence(ctx context.Context, q DBTX, prefix string) (int, error) {
	var n int
	err := q.QueryRow(ctx,
		`INSERT INTO invoice_sequences (prefix, last_value) VALUES ($1, 1)
		 ON CONFLICT (prefix) DO UPDATE
		 SET last_value = invoice_sequences.last_value + 1, updated_at = NOW()
		 RETURNING last_value`, prefix,
	).Scan(&n)
	return n, err
}

// Insert stores the invoice header.
func (r *InvoiceRepository) Insert(ctx context.Context, q DBTX, inv *model.Invoice) error {
	return mapError(q.QueryRow(ctx,
		`INSERT INTO invoices (no_invoice, total_course, total_price, user_id, payment_method_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, date`,
		inv.NoInvoice, inv.TotalCourse, inv.TotalPrice, inv.UserID, inv.PaymentMethodID,
	).Scan(&inv.ID, &inv.Date))
}

// InsertLine records one purchased course schedule at its purchase price.
func (r *InvoiceRepository) InsertLine(ctx context.Context, q DBTX, invoiceID, courseScheduleID int, price decimal.Decimal) error {
	_, err := q.Exec(ctx,
		`INSERT INTO invoice_menu_courses (invoice_id, menu_course_schedule_id, price) VALUES ($1, $2, $3)`,
		invoiceID, courseScheduleID, price,
	)
	return mapError(err)
}

const invoiceSelect = `
	SELECT i.id, i.no_invoice, i.date, i.total_course, i.total_price, i.user_id, u.email, i.payment_method_id, pm.name
	FROM invoices i
	JOIN users u ON u.id = i.user_id
	LEFT JOIN payment_methods pm ON pm.id = i.payment_method_id`

func scanInvoice(row rowScanner) (*model.Invoice, error) {
	inv := &model.Invoice{}
	err := row.Scan(&inv.ID, &inv.NoInvoice, &inv.Date, &inv.TotalCourse, &inv.TotalPrice,
		&inv.UserID, &inv.UserEmail, &inv.PaymentMethodID, &inv.PaymentMethod)
	if err != nil {
		return nil, mapError(err)
	}
	return inv, nil
}

func (r *InvoiceRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Invoice, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

// ListPaginated returns every invoice, newest first.
func (r *InvoiceRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Invoice, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&total); err != nil {
		return nil, 0, err
	}

	invoices, err := r.list(ctx,
		invoiceSelect+` ORDER BY i.date DESC, i.id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	return invoices, total, err
}

// ListByUser returns a user's invoices, newest first.
func (r *InvoiceRepository) ListByUser(ctx context.Context, userID int) ([]model.Invoice, error) {
	return r.list(ctx, invoiceSelect+` WHERE i.user_id = $1 ORDER BY i.date DESC, i.id DESC`, userID)
}

// GetByID retrieves one invoice header.
func (r *InvoiceRepository) GetByID(ctx context.Context, id int) (*model.Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, invoiceSelect+` WHERE i.id = $1`, id))
}

// GetLines returns the purchased courses of an invoice.
func (r *InvoiceRepository) GetLines(ctx context.Context, invoiceID int) ([]model.InvoiceLine, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT mc.id, mc.name, c.name, s.schedule_date, imc.price
		 FROM invoice_menu_courses imc
		 JOIN menu_course_schedules ms ON ms.id = imc.menu_course_schedule_id
		 JOIN menu_courses mc ON mc.id = ms.menu_course_id
		 JOIN categories c ON c.id = mc.category_id
		 JOIN schedules s ON s.id = ms.schedule_id
		 WHERE imc.invoice_id = $1
		 ORDER BY s.schedule_date, imc.id`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []model.InvoiceLine
	for rows.Next() {
		var l model.InvoiceLine
		if err := rows.Scan(&l.MenuCourseID, &l.Name, &l.Category, &l.ScheduleDate, &l.Price); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
