package onesignal

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ordopro-backend/database"
	"ordopro-backend/internal/domain/users"
)

type ProfileInput struct {
	SubscriptionID string `json:"subscription_id" binding:"required"`
}

func profilePayload(p users.OneSignalProfile) map[string]interface{} {
	return map[string]interface{}{
		"id":              p.ID,
		"subscription_id": p.SubscriptionID,
	}
}

// POST /api/v1/onesignal — registers (or re-registers) the caller's
// OneSignal player so push notifications can reach their device.
func RegisterProfile(c *gin.Context) {
	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	profile := users.OneSignalProfile{UserID: userID}
	if err := database.DB.Where("user_id = ?", userID).FirstOrCreate(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register device"})
		return
	}
	profile.SubscriptionID = input.SubscriptionID
	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register device"})
		return
	}
	c.JSON(http.StatusCreated, profilePayload(profile))
}

// GET /api/v1/onesignal — only the caller's own registrations.
func ListProfiles(c *gin.Context) {
	var profiles []users.OneSignalProfile
	err := database.DB.Where("user_id = ?", c.GetUint("user_id")).Find(&profiles).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load devices"})
		return
	}

	payload := make([]map[string]interface{}, 0, len(profiles))
	for _, p := range profiles {
		payload = append(payload, profilePayload(p))
	}
	c.JSON(http.StatusOK, payload)
}

// GET /api/v1/onesignal/:id
func GetProfile(c *gin.Context) {
	var profile users.OneSignalProfile
	err := database.DB.
		Where("user_id = ? AND id = ?", c.GetUint("user_id"), c.Param("id")).
		First(&profile).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}
	c.JSON(http.StatusOK, profilePayload(profile))
}
