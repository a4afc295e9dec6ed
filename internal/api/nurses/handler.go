package nurses

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ordopro-backend/database"
	"ordopro-backend/internal/domain/nursing"
)

type NurseInput struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
	ZipCode string `json:"zip_code"`
	City    string `json:"city"`
}

func ownNurse(c *gin.Context) (nursing.Nurse, error) {
	userID := c.GetUint("user_id")
	nurse := nursing.Nurse{UserID: &userID}
	err := database.DB.Preload("User").Where("user_id = ?", userID).FirstOrCreate(&nurse).Error
	return nurse, err
}

func nursePayload(n nursing.Nurse) map[string]interface{} {
	payload := map[string]interface{}{
		"id":       n.ID,
		"phone":    n.Phone,
		"address":  n.Address,
		"zip_code": n.ZipCode,
		"city":     n.City,
	}
	if n.User != nil {
		payload["firstname"] = n.User.Firstname
		payload["lastname"] = n.User.Lastname
		payload["email"] = n.User.Email
	}
	return payload
}

// GET /api/v1/nurse — a nurse only ever sees their own profile.
func ListNurses(c *gin.Context) {
	nurse, err := ownNurse(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load nurse profile"})
		return
	}
	c.JSON(http.StatusOK, []map[string]interface{}{nursePayload(nurse)})
}

// GET /api/v1/nurse/me
func GetNurse(c *gin.Context) {
	nurse, err := ownNurse(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load nurse profile"})
		return
	}
	c.JSON(http.StatusOK, nursePayload(nurse))
}

// PUT /api/v1/nurse/me
func UpdateNurse(c *gin.Context) {
	nurse, err := ownNurse(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load nurse profile"})
		return
	}

	var input NurseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nurse.Phone = input.Phone
	nurse.Address = input.Address
	nurse.ZipCode = input.ZipCode
	nurse.City = input.City
	if err := database.DB.Save(&nurse).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update nurse profile"})
		return
	}
	c.JSON(http.StatusOK, nursePayload(nurse))
}
