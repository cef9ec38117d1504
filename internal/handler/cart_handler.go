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

// CartHandler handles the per-user shopping cart.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart godoc
// GET /api/v1/cart
// Returns the cart items with current prices and the running total.
func (h *CartHandler) GetCart(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// AddItem godoc
// POST /api/v1/cart/items
// Adding an item already in the cart is a no-op.
func (h *CartHandler) AddItem(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CartItemRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.cartService.Add(c.Request.Context(), claims.UserID, req.CourseScheduleID); err != nil {
		if errors.Is(err, service.ErrCourseScheduleNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrCourseSchedNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"ms_id": req.CourseScheduleID})
}

// RemoveItem godoc
// DELETE /api/v1/cart/items/:ms_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	msID, ok := paramID(c, "ms_id")
	if !ok {
		return
	}

	if err := h.cartService.RemoveItems(c.Request.Context(), claims.UserID, msID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.NoContent(c)
}

// ClearCart godoc
// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.NoContent(c)
}
