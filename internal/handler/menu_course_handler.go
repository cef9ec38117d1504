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

// MenuCourseHandler handles menu course endpoints.
type MenuCourseHandler struct {
	courseService   *service.MenuCourseService
	scheduleService *service.CourseScheduleService
}

// NewMenuCourseHandler creates a new MenuCourseHandler.
func NewMenuCourseHandler(courseService *service.MenuCourseService, scheduleService *service.CourseScheduleService) *MenuCourseHandler {
	return &MenuCourseHandler{courseService: courseService, scheduleService: scheduleService}
}

// ListMenuCourses godoc
// GET /api/v1/menu-courses?category_id=
func (h *MenuCourseHandler) ListMenuCourses(c *gin.Context) {
	var filter model.MenuCourseFilter
	if fields := validator.BindQuery(c, &filter); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var categoryID *int
	if filter.CategoryID > 0 {
		categoryID = &filter.CategoryID
	}

	courses, err := h.courseService.GetAll(c.Request.Context(), categoryID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"menu_courses": courses})
}

// GetMenuCourse godoc
// GET /api/v1/menu-courses/:id
func (h *MenuCourseHandler) GetMenuCourse(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"menu_course": course})
}

// ListMenuCourseSchedules godoc
// GET /api/v1/menu-courses/:id/schedules
// Returns every course schedule offered for the course.
func (h *MenuCourseHandler) ListMenuCourseSchedules(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	schedules, err := h.scheduleService.ListByMenuCourse(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course_schedules": schedules})
}

// CreateMenuCourse godoc
// POST /api/v1/menu-courses
// Creates a course from multipart form data with an optional "image" file.
func (h *MenuCourseHandler) CreateMenuCourse(c *gin.Context) {
	var form model.MenuCourseForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	image, err := optionalFile(c, "image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &form, image)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"menu_course": course})
}

// UpdateMenuCourse godoc
// PUT /api/v1/menu-courses/:id
func (h *MenuCourseHandler) UpdateMenuCourse(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var form model.MenuCourseForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	image, err := optionalFile(c, "image")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, &form, image)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"menu_course": course})
}

// DeleteMenuCourse godoc
// DELETE /api/v1/menu-courses/:id
func (h *MenuCourseHandler) DeleteMenuCourse(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.NoContent(c)
}

func (h *MenuCourseHandler) fail(c *gin.Context, err error) {
	if failMedia(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrMenuCourseNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
	case errors.Is(err, service.ErrCategoryNotFound):
		// Refers to the submitted category_id, so it is a bad request.
		response.Fail(c, http.StatusBadRequest, response.ErrCategoryNotFound)
	case errors.Is(err, service.ErrInvalidPrice):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"price": "price must be a number greater than 0",
		})
	case errors.Is(err, service.ErrMenuCourseInUse):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
