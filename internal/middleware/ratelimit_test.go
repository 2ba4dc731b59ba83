package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimiter_RejectsBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewLoginRateLimiter(10, 3)
	router := gin.New()
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		req, _ := http.NewRequest("POST", "/login", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	// burst of 3 passes, the rest are throttled
	assert.Equal(t, http.StatusOK, statuses[0])
	assert.Equal(t, http.StatusOK, statuses[1])
	assert.Equal(t, http.StatusOK, statuses[2])
	assert.Equal(t, http.StatusTooManyRequests, statuses[3])
	assert.Equal(t, http.StatusTooManyRequests, statuses[4])
}

func TestLoginRateLimiter_Cleanup(t *testing.T) {
	limiter := NewLoginRateLimiter(10, 3)
	limiter.allow("1.2.3.4")

	// nothing is stale yet
	limiter.Cleanup()

	limiter.mu.Lock()
	remaining := len(limiter.clients)
	limiter.mu.Unlock()
	assert.Equal(t, 1, remaining)
}
