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

// CourseScheduleHandler handles the course-to-schedule assignments.
type CourseScheduleHandler struct {
	csService *service.CourseScheduleService
}

// NewCourseScheduleHandler creates a new CourseScheduleHandler.
func NewCourseScheduleHandler(csService *service.CourseScheduleService) *CourseScheduleHandler {
	return &CourseScheduleHandler{csService: csService}
}

// GetCourseSchedule godoc
// GET /api/v1/course-schedules/:id
func (h *CourseScheduleHandler) GetCourseSchedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cs, err := h.csService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course_schedule": cs})
}

// CreateCourseSchedule godoc
// POST /api/v1/course-schedules
// Assigns a menu course to a schedule with an initial slot count.
func (h *CourseScheduleHandler) CreateCourseSchedule(c *gin.Context) {
	var req model.CreateCourseScheduleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cs, err := h.csService.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course_schedule": cs})
}

// UpdateCourseSchedule godoc
// PUT /api/v1/course-schedules/:id
// Only the slot counter and status can change.
func (h *CourseScheduleHandler) UpdateCourseSchedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateCourseScheduleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	cs, err := h.csService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course_schedule": cs})
}

// DeleteCourseSchedule godoc
// DELETE /api/v1/course-schedules/:id
func (h *CourseScheduleHandler) DeleteCourseSchedule(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.csService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	response.NoContent(c)
}

func (h *CourseScheduleHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseScheduleNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrCourseSchedNotFound)
	case errors.Is(err, service.ErrMenuCourseNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrCourseNotFound)
	case errors.Is(err, service.ErrScheduleNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrScheduleNotFound)
	case errors.Is(err, service.ErrCourseScheduleExists):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrCourseScheduleInUse):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
