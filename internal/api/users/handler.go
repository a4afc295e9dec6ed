package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"ordopro-backend/database"
	"ordopro-backend/internal/domain/nursing"
	"ordopro-backend/internal/domain/users"
)

type UserInput struct {
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Password  string `json:"password"`
}

func currentUser(c *gin.Context) (users.User, bool) {
	var user users.User
	if err := database.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return users.User{}, false
	}
	return user, true
}

func userPayload(u users.User) map[string]interface{} {
	return map[string]interface{}{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"firstname": u.Firstname,
		"lastname":  u.Lastname,
		"is_staff":  u.IsStaff,
	}
}

// GET /api/v1/profile — the user together with their nurse profile.
func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var nurse nursing.Nurse
	payload := userPayload(user)
	if err := database.DB.Where("user_id = ?", user.ID).First(&nurse).Error; err == nil {
		payload["nurse"] = map[string]interface{}{
			"id":       nurse.ID,
			"phone":    nurse.Phone,
			"address":  nurse.Address,
			"zip_code": nurse.ZipCode,
			"city":     nurse.City,
		}
	}
	c.JSON(http.StatusOK, payload)
}

// GET /api/v1/user — the list only ever contains the caller.
func ListUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, []map[string]interface{}{userPayload(user)})
}

// GET /api/v1/user/:id — only "me" is addressable; a numeric pk is refused
// so users cannot probe each other's accounts.
func GetUser(c *gin.Context) {
	if c.Param("id") != "me" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, userPayload(user))
}

// PUT/PATCH /api/v1/user/:id
func UpdateUser(c *gin.Context) {
	if c.Param("id") != "me" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Firstname != "" {
		user.Firstname = input.Firstname
	}
	if input.Lastname != "" {
		user.Lastname = input.Lastname
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		h := string(hashed)
		user.Password = &h
	}

	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, userPayload(user))
}

// DELETE /api/v1/user/:id
func DeleteUser(c *gin.Context) {
	if c.Param("id") != "me" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := database.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.Status(http.StatusNoContent)
}
