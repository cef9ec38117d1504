package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/mailer"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/repository"
	"github.com/soupclass/soup-backend/internal/response"
)

// Invoice errors.
var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvoiceForbidden = errors.New("invoice belongs to another user")
)

// InvoiceService runs checkout and invoice queries.
type InvoiceService struct {
	cfg         *config.Config
	invoiceRepo *repository.InvoiceRepository
	csRepo      *repository.CourseScheduleRepository
	myClassRepo *repository.MyClassRepository
	userRepo    *repository.UserRepository
	paymentRepo *repository.PaymentMethodRepository
	cartService *CartService
	slots       *SlotPublisher
	mail        *MailQueue
	log         zerolog.Logger
}

// InvoiceDeps groups InvoiceService collaborators.
type InvoiceDeps struct {
	InvoiceRepo *repository.InvoiceRepository
	CSRepo      *repository.CourseScheduleRepository
	MyClassRepo *repository.MyClassRepository
	UserRepo    *repository.UserRepository
	PaymentRepo *repository.PaymentMethodRepository
	CartService *CartService
	Slots       *SlotPublisher
	Mail        *MailQueue
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(cfg *config.Config, deps InvoiceDeps, log zerolog.Logger) *InvoiceService {
	return &InvoiceService{
		cfg:         cfg,
		invoiceRepo: deps.InvoiceRepo,
		csRepo:      deps.CSRepo,
		myClassRepo: deps.MyClassRepo,
		userRepo:    deps.UserRepo,
		paymentRepo: deps.PaymentRepo,
		cartService: deps.CartService,
		slots:       deps.Slots,
		mail:        deps.Mail,
		log:         log.With().Str("component", "invoice_service").Logger(),
	}
}

// Checkout buys the selected course schedules for userID in a single transaction.
// The selected rows are locked, so two buyers can never take the same last seat.
func (s *InvoiceService) Checkout(ctx context.Context, userID int, req *model.CheckoutRequest) (*model.CheckoutResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	ids := req.CourseScheduleIDs
	if err := validateSelection(ids); err != nil {
		return nil, err
	}

	if req.PaymentMethodID != nil {
		pm, err := s.paymentRepo.GetByID(ctx, *req.PaymentMethodID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPaymentMethodUnavailable
			}
			return nil, err
		}
		if pm.Status != model.StatusActive {
			return nil, ErrPaymentMethodUnavailable
		}
	}

	var (
		inv     *model.Invoice
		updates []model.SlotUpdate
	)
	err = repository.WithTx(ctx, s.invoiceRepo.Pool(), func(tx pgx.Tx) error {
		rows, err := s.csRepo.LockDetails(ctx, tx, ids)
		if err != nil {
			return err
		}
		owned, err := s.myClassRepo.OwnedAmong(ctx, tx, userID, ids)
		if err != nil {
			return err
		}
		if err := evaluateLocked(ids, rows, owned); err != nil {
			return err
		}

		seq, err := s.invoiceRepo.NextSequence(ctx, tx, s.cfg.InvoicePrefix)
		if err != nil {
			return err
		}

		inv = &model.Invoice{
			NoInvoice:       FormatInvoiceNumber(s.cfg.InvoicePrefix, seq),
			TotalCourse:     len(rows),
			TotalPrice:      sumPrices(rows),
			UserID:          userID,
			PaymentMethodID: req.PaymentMethodID,
		}
		if err := s.invoiceRepo.Insert(ctx, tx, inv); err != nil {
			return err
		}

		updates = make([]model.SlotUpdate, 0, len(rows))
		for _, r := range rows {
			if err := s.invoiceRepo.InsertLine(ctx, tx, inv.ID, r.CourseScheduleID, r.Price); err != nil {
				return err
			}
			u, err := s.csRepo.TakeSlot(ctx, tx, r.CourseScheduleID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return &CheckoutError{Kind: ErrScheduleFull, Conflicts: []model.CourseConflict{
						{CourseScheduleID: r.CourseScheduleID, CourseName: r.Name},
					}}
				}
				return err
			}
			updates = append(updates, u)
			if err := s.myClassRepo.Insert(ctx, tx, userID, r.CourseScheduleID, inv.ID); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return &CheckoutError{Kind: ErrAlreadyPurchased, Conflicts: []model.CourseConflict{
						{CourseScheduleID: r.CourseScheduleID, CourseName: r.Name},
					}}
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &model.CheckoutResult{
		InvoiceID:   inv.ID,
		NoInvoice:   inv.NoInvoice,
		Date:        inv.Date,
		TotalCourse: inv.TotalCourse,
		TotalPrice:  inv.TotalPrice,
		UserID:      userID,
	}

	s.log.Info().
		Int("user_id", userID).
		Str("no_invoice", result.NoInvoice).
		Int("total_course", result.TotalCourse).
		Str("total_price", result.TotalPrice.String()).
		Msg("Checkout completed")

	s.slots.Publish(ctx, updates...)
	if err := s.cartService.RemoveItems(ctx, userID, ids...); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Failed to prune cart after checkout")
	}
	job, buildErr := mailer.Receipt(user.Email, user.Name, *result)
	s.mail.enqueueBestEffort(ctx, job, buildErr)

	return result, nil
}

// ListAll returns every invoice, newest first.
func (s *InvoiceService) ListAll(ctx context.Context, page, perPage int) ([]model.Invoice, *response.Pagination, error) {
	page, perPage = response.NormalizePage(page, perPage)

	invoices, total, err := s.invoiceRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	return invoices, response.NewPagination(page, perPage, total), nil
}

// canRead reports whether the requester may see invoices of ownerID.
func canRead(requester *Claims, ownerID int) bool {
	return requester.IsAdmin() || requester.UserID == ownerID
}

// ListByUser returns a user's invoices. Non-admins may only list their own.
func (s *InvoiceService) ListByUser(ctx context.Context, requester *Claims, userID int) ([]model.Invoice, error) {
	if !canRead(requester, userID) {
		return nil, ErrInvoiceForbidden
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	invoices, err := s.invoiceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	return invoices, nil
}

// GetDetail returns an invoice with its purchased courses.
func (s *InvoiceService) GetDetail(ctx context.Context, requester *Claims, id int) (*model.InvoiceDetail, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	if !canRead(requester, inv.UserID) {
		return nil, ErrInvoiceForbidden
	}

	lines, err := s.invoiceRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []model.InvoiceLine{}
	}
	return &model.InvoiceDetail{Invoice: *inv, ListCourse: lines}, nil
}
