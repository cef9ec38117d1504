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

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories godoc
// GET /api/v1/categories
// Lists every category with its course count.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.GetAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

// GetCategory godoc
// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"category": category})
}

// CreateCategory godoc
// POST /api/v1/categories
// Creates a category from multipart form data with an optional "image" file.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var form model.CategoryForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	image, err := optionalFile(c, "image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &form, image)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory godoc
// PUT /api/v1/categories/:id
// A new image replaces the stored one.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var form model.CategoryForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	image, err := optionalFile(c, "image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &form, image)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"category": category})
}

// DeleteCategory godoc
// DELETE /api/v1/categories/:id
// Fails with 409 while menu courses still reference the category.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.NoContent(c)
}

func (h *CategoryHandler) fail(c *gin.Context, err error) {
	if failMedia(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrCategoryNotFound)
	case errors.Is(err, service.ErrCategoryInUse):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
