package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func sanitizedRouter(captured *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/echo", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		*captured = string(raw)
		c.Status(http.StatusOK)
	})
	return r
}

func TestSanitizeStripsMarkup(t *testing.T) {
	var captured string
	router := sanitizedRouter(&captured)

	body := `{"additional_info": "<script>alert(1)</script>please renew", "count": 3}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, captured, "<script>")
	assert.Contains(t, captured, "please renew")
	assert.Contains(t, captured, `"count":3`)
}

func TestSanitizeRejectsMalformedJSON(t *testing.T) {
	var captured string
	router := sanitizedRouter(&captured)

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("not-json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
