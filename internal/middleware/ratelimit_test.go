package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

func TestRateLimiterAllow(t *testing.T) {
	l := NewRateLimiter(0.001, 2)

	assert.Equal(t, true, l.Allow("1.1.1.1"))
	assert.Equal(t, true, l.Allow("1.1.1.1"))
	assert.Equal(t, false, l.Allow("1.1.1.1"))
	assert.Equal(t, true, l.Allow("2.2.2.2"))
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", NewRateLimiter(0.001, 1).Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
