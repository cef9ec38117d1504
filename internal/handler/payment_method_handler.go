package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/response"
	"github.com/soupclass/soup-backend/internal/service"
	"github.com/soupclass/soup-backend/internal/validator"
)

// PaymentMethodHandler handles payment method endpoints.
type PaymentMethodHandler struct {
	paymentService *service.PaymentMethodService
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler.
func NewPaymentMethodHandler(paymentService *service.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{paymentService: paymentService}
}

// ListPaymentMethods godoc
// GET /api/v1/payment-methods?active=true
func (h *PaymentMethodHandler) ListPaymentMethods(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	methods, err := h.paymentService.GetAll(c.Request.Context(), activeOnly)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment_methods": methods})
}

// GetPaymentMethod godoc
// GET /api/v1/payment-methods/:id
func (h *PaymentMethodHandler) GetPaymentMethod(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	method, err := h.paymentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment_method": method})
}

// CreatePaymentMethod godoc
// POST /api/v1/payment-methods
// Multipart form with an optional "logo" file.
func (h *PaymentMethodHandler) CreatePaymentMethod(c *gin.Context) {
	var form model.PaymentMethodForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	logo, err := optionalFile(c, "logo")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	method, err := h.paymentService.Create(c.Request.Context(), &form, logo)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"payment_method": method})
}

// UpdatePaymentMethod godoc
// PUT /api/v1/payment-methods/:id
func (h *PaymentMethodHandler) UpdatePaymentMethod(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var form model.PaymentMethodForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	logo, err := optionalFile(c, "logo")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	method, err := h.paymentService.Update(c.Request.Context(), id, &form, logo)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment_method": method})
}

// DeletePaymentMethod godoc
// DELETE /api/v1/payment-methods/:id
func (h *PaymentMethodHandler) DeletePaymentMethod(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.NoContent(c)
}

func (h *PaymentMethodHandler) fail(c *gin.Context, err error) {
	if failMedia(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrPaymentMethodNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrPaymentNotFound)
	case errors.Is(err, service.ErrPaymentMethodExists):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
