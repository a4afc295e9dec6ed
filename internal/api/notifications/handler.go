package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pusher sends the expiring-prescriptions push campaign.
type Pusher interface {
	NotifyExpiringPrescriptions() error
}

type Handler struct {
	pusher Pusher
}

func New(pusher Pusher) *Handler {
	return &Handler{pusher: pusher}
}

// POST /api/v1/notify — staff only; triggered by the scheduler once a day.
func (h *Handler) Notify(c *gin.Context) {
	if err := h.pusher.NotifyExpiringPrescriptions(); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send notification"})
		return
	}
	c.Status(http.StatusNoContent)
}
