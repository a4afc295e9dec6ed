package notifications

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPusher struct {
	calls int
	err   error
}

func (s *stubPusher) NotifyExpiringPrescriptions() error {
	s.calls++
	return s.err
}

func notifyRouter(p Pusher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/notify", New(p).Notify)
	return r
}

func TestNotifySuccess(t *testing.T) {
	pusher := &stubPusher{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notify", nil)
	notifyRouter(pusher).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, pusher.calls)
}

func TestNotifyUpstreamFailure(t *testing.T) {
	pusher := &stubPusher{err: errors.New("onesignal down")}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notify", nil)
	notifyRouter(pusher).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
