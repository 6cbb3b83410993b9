package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireServiceToken(svc), func(c *gin.Context) {
		subject, _ := c.Get("subject")
		c.JSON(http.StatusOK, gin.H{"subject": subject})
	})
	return r
}

func TestRequireServiceToken_RejectsMissingHeader(t *testing.T) {
	svc := NewService("test-secret")
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireServiceToken_RejectsInvalidToken(t *testing.T) {
	svc := NewService("test-secret")
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireServiceToken_AcceptsValidToken(t *testing.T) {
	svc := NewService("test-secret")
	token, err := svc.IssueToken("caller-1", time.Hour)
	require.NoError(t, err)

	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "caller-1")
}
