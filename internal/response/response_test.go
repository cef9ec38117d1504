package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", h)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess_WrapsDataAndMetadata(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"name": "Asian"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))

	body := decode(t, w)
	assert.Nil(t, body.Error)
	assert.Equal(t, "req-123", body.Metadata.RequestID)
	assert.NotEmpty(t, body.Metadata.Timestamp)
	assert.Equal(t, map[string]interface{}{"name": "Asian"}, body.Data)
}

func TestRequestIDMiddleware_GeneratesWhenMissingOrOversized(t *testing.T) {
	r := newRouter(func(c *gin.Context) { Success(c, http.StatusOK, nil) })

	for _, header := range []string{"", strings.Repeat("x", maxRequestIDLen+1)} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(HeaderRequestID, header)
		}
		r.ServeHTTP(w, req)

		id := w.Header().Get(HeaderRequestID)
		assert.Len(t, id, 36)
		assert.Equal(t, id, decode(t, w).Metadata.RequestID)
	}
}

func TestFailWithFields(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{"name": "name is required"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrValidation, body.Error.Code)
	assert.Equal(t, GetMessage(ErrValidation), body.Error.Message)
	assert.Equal(t, "name is required", body.Error.Fields["name"])
	assert.Nil(t, body.Data)
}

func TestFailWithDetails(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		FailWithDetails(c, http.StatusBadRequest, ErrDuplicateSelection, gin.H{"duplicate_ids": []int{3, 7}})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	body := decode(t, w)
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrDuplicateSelection, body.Error.Code)
	assert.Equal(t, map[string]interface{}{"duplicate_ids": []interface{}{float64(3), float64(7)}}, body.Error.Details)
}

func TestAbortFail_StopsChain(t *testing.T) {
	r := gin.New()
	reached := false
	r.GET("/", func(c *gin.Context) {
		AbortFail(c, http.StatusForbidden, ErrForbidden)
	}, func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, reached)
	assert.NotEmpty(t, decode(t, w).Metadata.RequestID)
}

func TestNormalizePageAndPagination(t *testing.T) {
	tests := []struct {
		name                  string
		page, perPage         int
		wantPage, wantPerPage int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative", -4, -1, 1, 10},
		{"capped", 3, 500, 3, 100},
		{"untouched", 2, 25, 2, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, pp := NormalizePage(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, p)
			assert.Equal(t, tt.wantPerPage, pp)
		})
	}

	pg := NewPagination(2, 10, 21)
	assert.Equal(t, 3, pg.TotalPages)
	assert.Equal(t, 21, pg.TotalItems)
	assert.Equal(t, 0, NewPagination(1, 10, 0).TotalPages)
}

func TestGetMessage_UnknownCode(t *testing.T) {
	assert.Equal(t, "Terjadi kesalahan yang tidak terduga.", GetMessage(ErrCode("NOPE")))
	assert.NotEqual(t, GetMessage(ErrCode("NOPE")), GetMessage(ErrScheduleFull))
}
