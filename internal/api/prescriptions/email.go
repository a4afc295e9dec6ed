package prescriptions

import (
	"fmt"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"ordopro-backend/config"
	"ordopro-backend/database"
	"ordopro-backend/internal/domain/nursing"
	"ordopro-backend/internal/domain/users"
)

type renewalEmailInput struct {
	AdditionalInfo string `json:"additional_info"`
}

// POST /api/v1/prescription/:id/send-email — asks the prescribing doctor
// for a renewal. The nurse's own email goes in Reply-To so the doctor
// answers the nurse, not the platform.
func SendRenewalEmail(c *gin.Context) {
	pr, ok := ownedPrescription(c)
	if !ok {
		return
	}
	if pr.EmailDoctor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prescription has no doctor email"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, c.GetUint("user_id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}
	if user.Email == "" || user.Firstname == "" || user.Lastname == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Complete your profile (name and email) before contacting a doctor"})
		return
	}

	var input renewalEmailInput
	if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := renewalMessage(pr, user, input.AdditionalInfo)
	if err := sendMail(pr.EmailDoctor, message); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func renewalMessage(pr nursing.Prescription, nurse users.User, additionalInfo string) []byte {
	patientName := "un patient"
	if pr.Patient != nil {
		patientName = pr.Patient.Firstname + " " + pr.Patient.Lastname
	}

	subject := fmt.Sprintf("Demande de renouvellement d'ordonnance - %s", patientName)
	var body strings.Builder
	fmt.Fprintf(&body, "Bonjour Dr %s,\r\n\r\n", pr.PrescribingDoctor)
	fmt.Fprintf(&body, "L'ordonnance de %s arrive a expiration le %s.\r\n", patientName, pr.EndDate.Format("02/01/2006"))
	fmt.Fprintf(&body, "Pourriez-vous etablir un renouvellement ?\r\n")
	if info := strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(additionalInfo)); info != "" {
		fmt.Fprintf(&body, "\r\nInformations complementaires :\r\n%s\r\n", info)
	}
	fmt.Fprintf(&body, "\r\nCordialement,\r\n%s %s\r\nInfirmier(e)\r\n", nurse.Firstname, nurse.Lastname)

	return []byte("Subject: " + subject + "\r\n" +
		"From: " + config.SMTP_FROM + "\r\n" +
		"To: " + pr.EmailDoctor + "\r\n" +
		"Reply-To: " + nurse.Email + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body.String())
}

func sendMail(to string, message []byte) error {
	auth := smtp.PlainAuth("", config.SMTP_FROM, config.SMTP_PASS, config.SMTP_HOST)
	return smtp.SendMail(config.SMTP_HOST+":"+config.SMTP_PORT, auth, config.SMTP_FROM, []string{to}, message)
}
