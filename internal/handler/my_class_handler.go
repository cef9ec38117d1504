package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soupclass/soup-backend/internal/middleware"
	"github.com/soupclass/soup-backend/internal/response"
	"github.com/soupclass/soup-backend/internal/service"
)

// MyClassHandler lists the classes a user has bought.
type MyClassHandler struct {
	myClassService *service.MyClassService
}

// NewMyClassHandler creates a new MyClassHandler.
func NewMyClassHandler(myClassService *service.MyClassService) *MyClassHandler {
	return &MyClassHandler{myClassService: myClassService}
}

// ListMyClasses godoc
// GET /api/v1/my-classes
// Returns the current user's purchased course schedules ordered by date.
func (h *MyClassHandler) ListMyClasses(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	classes, err := h.myClassService.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"my_classes": classes})
}
