package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	c := testContext()
	c.Request.RemoteAddr = "10.0.0.1:4321"
	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
	c.Request.Header.Set("X-Real-IP", "198.51.100.9")
	assert.Equal(t, "203.0.113.7", clientIP(c))
}

func TestClientIPFallsBackToRealIP(t *testing.T) {
	c := testContext()
	c.Request.RemoteAddr = "10.0.0.1:4321"
	c.Request.Header.Set("X-Real-IP", " 198.51.100.9 ")
	assert.Equal(t, "198.51.100.9", clientIP(c))
}

func TestClientIPStripsPortFromRemoteAddr(t *testing.T) {
	c := testContext()
	c.Request.RemoteAddr = "192.0.2.4:9999"
	assert.Equal(t, "192.0.2.4", clientIP(c))
}
