package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/opsdesk/portal/internal/types"
	"github.com/stretchr/testify/assert"
)

func newTestEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"request_id": types.GetRequestID(ctx),
			"user_id":    types.GetUserID(ctx),
		})
	})
	return r
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"any origin", nil, "https://ops.example.com", "*"},
		{"listed origin", []string{"https://ops.example.com"}, "https://ops.example.com", "https://ops.example.com"},
		{"unlisted origin", []string{"https://ops.example.com"}, "https://evil.example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestEngine(CORSMiddleware(tt.allowed))
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := newTestEngine(CORSMiddleware(nil))
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestAndUserContext(t *testing.T) {
	r := newTestEngine(RequestIDMiddleware, UserContextMiddleware, SentryScopeMiddleware)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(types.HeaderRequestID, "req-1")
	req.Header.Set(types.HeaderUserID, "user_42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-1", w.Header().Get(types.HeaderRequestID))
	assert.JSONEq(t, `{"request_id":"req-1","user_id":"user_42"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get(types.HeaderRequestID))
	assert.Contains(t, w.Body.String(), `"user_id":"`+types.DefaultUserID+`"`)
}
