package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soupclass/soup-backend/internal/middleware"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/response"
	"github.com/soupclass/soup-backend/internal/service"
	"github.com/soupclass/soup-backend/internal/validator"
)

// InvoiceHandler handles checkout and invoice reads.
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Checkout godoc
// POST /api/v1/invoices
// Buys the selected course schedules for the current user.
func (h *InvoiceHandler) Checkout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CheckoutRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.invoiceService.Checkout(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		failCheckout(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// failCheckout maps checkout rule violations to their status codes,
// attaching the offending selections as error details.
func failCheckout(c *gin.Context, err error) {
	var ce *service.CheckoutError
	if errors.As(err, &ce) {
		switch {
		case errors.Is(ce.Kind, service.ErrNoCourseSelected):
			response.Fail(c, http.StatusBadRequest, response.ErrNoCourseSelected)
		case errors.Is(ce.Kind, service.ErrDuplicateSelection):
			response.FailWithDetails(c, http.StatusBadRequest, response.ErrDuplicateSelection, gin.H{"duplicate_ids": ce.IDs})
		case errors.Is(ce.Kind, service.ErrSelectionNotFound):
			response.FailWithDetails(c, http.StatusNotFound, response.ErrSelectionNotFound, gin.H{"missing_ids": ce.IDs})
		case errors.Is(ce.Kind, service.ErrAlreadyPurchased):
			response.FailWithDetails(c, http.StatusBadRequest, response.ErrAlreadyPurchased, gin.H{"conflicts": ce.Conflicts})
		case errors.Is(ce.Kind, service.ErrScheduleFull):
			response.FailWithDetails(c, http.StatusConflict, response.ErrScheduleFull, gin.H{"conflicts": ce.Conflicts})
		default:
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		}
		return
	}

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
	case errors.Is(err, service.ErrPaymentMethodUnavailable):
		response.Fail(c, http.StatusBadRequest, response.ErrPaymentMethodInvalid)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// ListInvoices godoc
// GET /api/v1/invoices?page=&per_page=
// Admin listing of every invoice, newest first.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	page, perPage := pageParams(c)

	invoices, pagination, err := h.invoiceService.ListAll(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"invoices": invoices}, pagination)
}

// ListUserInvoices godoc
// GET /api/v1/invoices/users/:user_id
// Non-admins may only list their own invoices.
func (h *InvoiceHandler) ListUserInvoices(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	userID, ok := paramID(c, "user_id")
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListByUser(c.Request.Context(), claims, userID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoices": invoices})
}

// GetInvoice godoc
// GET /api/v1/invoices/:id
// Returns the invoice with its purchased courses.
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.invoiceService.GetDetail(c.Request.Context(), claims, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"invoice": detail})
}

func (h *InvoiceHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvoiceForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, service.ErrInvoiceNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrInvoiceNotFound)
	case errors.Is(err, service.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
