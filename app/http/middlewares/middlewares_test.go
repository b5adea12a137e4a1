package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func get(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestSecurityHeadersAndCors(t *testing.T) {
	r := newEngine(SecurityHeaders(), Cors())

	w := get(r, http.MethodGet, "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")

	w = get(r, http.MethodOptions, "/ping")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery())

	w := get(r, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Internal server error"}`, w.Body.String())
}

func TestLogger_RequestID(t *testing.T) {
	r := newEngine(Logger())

	w := get(r, http.MethodGet, "/ping")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
}

func TestLimitIP_InMemory(t *testing.T) {
	r := newEngine(LimitIP("2-M"))

	assert.Equal(t, http.StatusOK, get(r, http.MethodGet, "/ping").Code)
	assert.Equal(t, http.StatusOK, get(r, http.MethodGet, "/ping").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, http.MethodGet, "/ping").Code)
}

func TestLimitIP_InvalidFormatPanics(t *testing.T) {
	assert.Panics(t, func() { LimitIP("ten per minute") })
}
