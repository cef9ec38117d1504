package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/soupclass/soup-backend/internal/middleware"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/soupclass/soup-backend/internal/response"
	"github.com/soupclass/soup-backend/internal/service"
	"github.com/soupclass/soup-backend/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// asUser injects claims the way RequireJWT would.
func asUser(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyClaims, &service.Claims{UserID: 3, Role: role, Status: model.StatusActive})
		c.Next()
	}
}

func TestParamID(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			return
		}
		response.Success(c, http.StatusOK, gin.H{"id": id})
	})

	for _, raw := range []string{"abc", "0", "-4", "1.5"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+raw, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
		assert.Equal(t, response.ErrInvalidID, decode(t, w).Error.Code, raw)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/12", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"id": float64(12)}, decode(t, w).Data)
}

func TestOptionalFile(t *testing.T) {
	var got *multipart.FileHeader
	var gotErr error
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		got, gotErr = optionalFile(c, "image")
		c.Status(http.StatusNoContent)
	})

	t.Run("json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(httptest.NewRecorder(), req)
		assert.NoError(t, gotErr)
		assert.Nil(t, got)
	})

	t.Run("multipart without file", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("name", "Asian"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		r.ServeHTTP(httptest.NewRecorder(), req)
		assert.NoError(t, gotErr)
		assert.Nil(t, got)
	})

	t.Run("multipart with file", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("image", "tomyum.png")
		require.NoError(t, err)
		_, _ = fw.Write([]byte("png"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		r.ServeHTTP(httptest.NewRecorder(), req)
		require.NoError(t, gotErr)
		require.NotNil(t, got)
		assert.Equal(t, "tomyum.png", got.Filename)
	})
}

func TestFailMedia(t *testing.T) {
	tests := []struct {
		err     error
		handled bool
		code    response.ErrCode
	}{
		{fmt.Errorf("upload: %w", service.ErrUnsupportedFileType), true, response.ErrUnsupportedFile},
		{service.ErrFileTooLarge, true, response.ErrFileTooLarge},
		{errors.New("disk full"), false, ""},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		handled := failMedia(c, tt.err)

		assert.Equal(t, tt.handled, handled)
		if tt.handled {
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode(t, w).Error.Code)
		}
	}
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		query        string
		page, perPag int
	}{
		{"", 1, 10},
		{"?page=3&per_page=25", 3, 25},
		{"?page=0&per_page=1000", 1, 100},
		{"?page=x&per_page=y", 1, 10},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)

		page, perPage := pageParams(c)
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.perPag, perPage, tt.query)
	}
}

func TestFailCheckout(t *testing.T) {
	conflicts := []model.CourseConflict{{CourseScheduleID: 4, CourseName: "Tom Yum Thailand"}}

	tests := []struct {
		name       string
		err        error
		status     int
		code       response.ErrCode
		detailsKey string
	}{
		{"empty", &service.CheckoutError{Kind: service.ErrNoCourseSelected}, http.StatusBadRequest, response.ErrNoCourseSelected, ""},
		{"duplicates", &service.CheckoutError{Kind: service.ErrDuplicateSelection, IDs: []int{2}}, http.StatusBadRequest, response.ErrDuplicateSelection, "duplicate_ids"},
		{"missing", &service.CheckoutError{Kind: service.ErrSelectionNotFound, IDs: []int{99}}, http.StatusNotFound, response.ErrSelectionNotFound, "missing_ids"},
		{"purchased", &service.CheckoutError{Kind: service.ErrAlreadyPurchased, Conflicts: conflicts}, http.StatusBadRequest, response.ErrAlreadyPurchased, "conflicts"},
		{"full", fmt.Errorf("tx: %w", &service.CheckoutError{Kind: service.ErrScheduleFull, Conflicts: conflicts}), http.StatusConflict, response.ErrScheduleFull, "conflicts"},
		{"user gone", service.ErrUserNotFound, http.StatusNotFound, response.ErrUserNotFound, ""},
		{"payment method", service.ErrPaymentMethodUnavailable, http.StatusBadRequest, response.ErrPaymentMethodInvalid, ""},
		{"payment method from tx", fmt.Errorf("tx: %w", service.ErrPaymentMethodUnavailable), http.StatusBadRequest, response.ErrPaymentMethodInvalid, ""},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, response.ErrInternal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			failCheckout(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			if tt.detailsKey != "" {
				details, ok := body.Error.Details.(map[string]interface{})
				require.True(t, ok)
				assert.Contains(t, details, tt.detailsKey)
			}
		})
	}
}

func TestCheckout_RejectsBeforeReachingService(t *testing.T) {
	h := NewInvoiceHandler(nil)

	t.Run("anonymous", func(t *testing.T) {
		r := gin.New()
		r.POST("/invoices", h.Checkout)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid ids", func(t *testing.T) {
		r := gin.New()
		r.POST("/invoices", asUser(model.RoleUser), h.Checkout)

		req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(`{"ms_ids":[1,0]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, response.ErrValidation, body.Error.Code)
		assert.NotEmpty(t, body.Error.Fields)
	})
}

func TestCategoryHandler_Validation(t *testing.T) {
	h := NewCategoryHandler(nil)
	r := gin.New()
	r.GET("/categories/:id", h.GetCategory)
	r.POST("/categories", h.CreateCategory)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories/nope", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.ErrInvalidID, decode(t, w).Error.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Asian 2"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/categories", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, response.ErrValidation, body.Error.Code)
	assert.Contains(t, body.Error.Fields, "name")
}

func TestUserHandler_ListUsersRejectsUnknownStatus(t *testing.T) {
	r := gin.New()
	r.GET("/users", NewUserHandler(nil).ListUsers)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users?status=Banned", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error.Fields, "status")
}

func TestCartHandler_AddItemValidation(t *testing.T) {
	r := gin.New()
	r.POST("/cart/items", asUser(model.RoleUser), NewCartHandler(nil).AddItem)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error.Fields, "ms_id")
}

func TestDashboardHandler_RejectsBadTop(t *testing.T) {
	r := gin.New()
	r.GET("/admin/dashboard", NewDashboardHandler(nil).GetDashboardData)

	for _, q := range []string{"x", "-1", "21"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard?top="+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Contains(t, decode(t, w).Error.Fields, "top", q)
	}
}
