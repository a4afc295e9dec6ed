package prescriptions

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"ordopro-backend/database"
	"ordopro-backend/internal/domain/nursing"
)

const uploadDir = "uploads/prescriptions"

// nurseForRequest resolves (or lazily creates) the Nurse row backing the
// authenticated user.
func nurseForRequest(c *gin.Context) (nursing.Nurse, error) {
	userID := c.GetUint("user_id")
	nurse := nursing.Nurse{UserID: &userID}
	err := database.DB.Where("user_id = ?", userID).FirstOrCreate(&nurse).Error
	return nurse, err
}

// nurseOwnsPatient reports whether the patient is attached to the nurse.
func nurseOwnsPatient(nurseID, patientID uint) bool {
	var count int64
	database.DB.Table("nurse_patients").
		Where("nurse_id = ? AND patient_id = ?", nurseID, patientID).
		Count(&count)
	return count > 0
}

// GET /api/v1/prescription — prescriptions of the nurse's patients, newest
// end date first.
func ListPrescriptions(c *gin.Context) {
	nurse, err := nurseForRequest(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load nurse profile"})
		return
	}

	var prescriptions []nursing.Prescription
	err = database.DB.Preload("Patient").
		Joins("JOIN nurse_patients ON nurse_patients.patient_id = prescriptions.patient_id").
		Where("nurse_patients.nurse_id = ?", nurse.ID).
		Order("end_date DESC").
		Find(&prescriptions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load prescriptions"})
		return
	}

	payload := make([]map[string]interface{}, 0, len(prescriptions))
	for _, pr := range prescriptions {
		payload = append(payload, prescriptionPayload(pr, pr.Patient))
	}
	c.JSON(http.StatusOK, payload)
}

// GET /api/v1/prescription/:id
func GetPrescription(c *gin.Context) {
	pr, ok := ownedPrescription(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, prescriptionPayload(pr, pr.Patient))
}

// POST /api/v1/prescription
func CreatePrescription(c *gin.Context) {
	nurse, err := nurseForRequest(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load nurse profile"})
		return
	}

	var input PrescriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, err := input.dates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !nurseOwnsPatient(nurse.ID, input.PatientID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Patient does not belong to you"})
		return
	}

	patientID := input.PatientID
	pr := nursing.Prescription{
		PrescribingDoctor: input.PrescribingDoctor,
		EmailDoctor:       input.EmailDoctor,
		StartDate:         start,
		EndDate:           end,
		AtRenew:           input.AtRenew,
		PatientID:         &patientID,
	}
	if err := database.DB.Create(&pr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prescription"})
		return
	}
	database.DB.Preload("Patient").First(&pr, pr.ID)
	c.JSON(http.StatusCreated, prescriptionPayload(pr, pr.Patient))
}

// PUT /api/v1/prescription/:id
func UpdatePrescription(c *gin.Context) {
	nurse, err := nurseForRequest(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load nurse profile"})
		return
	}
	pr, ok := ownedPrescription(c)
	if !ok {
		return
	}

	var input PrescriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, err := input.dates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !nurseOwnsPatient(nurse.ID, input.PatientID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Patient does not belong to you"})
		return
	}

	patientID := input.PatientID
	pr.PrescribingDoctor = input.PrescribingDoctor
	pr.EmailDoctor = input.EmailDoctor
	pr.StartDate = start
	pr.EndDate = end
	pr.AtRenew = input.AtRenew
	pr.PatientID = &patientID
	if err := database.DB.Save(&pr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prescription"})
		return
	}
	database.DB.Preload("Patient").First(&pr, pr.ID)
	c.JSON(http.StatusOK, prescriptionPayload(pr, pr.Patient))
}

// DELETE /api/v1/prescription/:id
func DeletePrescription(c *gin.Context) {
	pr, ok := ownedPrescription(c)
	if !ok {
		return
	}
	if err := database.DB.Delete(&pr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prescription"})
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /api/v1/prescription/:id/upload — multipart photo of the paper
// prescription; the stored path replaces any previous photo.
func UploadPrescriptionPhoto(c *gin.Context) {
	pr, ok := ownedPrescription(c)
	if !ok {
		return
	}

	file, err := c.FormFile("photo_prescription")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo_prescription file"})
		return
	}

	name := fmt.Sprintf("%d_%d%s", pr.ID, time.Now().UnixNano(), filepath.Ext(file.Filename))
	dst := filepath.Join(uploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	pr.PhotoPrescription = dst
	if err := database.DB.Save(&pr).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prescription"})
		return
	}
	c.JSON(http.StatusOK, prescriptionPayload(pr, pr.Patient))
}

// ownedPrescription loads the :id prescription and checks that its patient
// belongs to the logged-in nurse. It writes the error response itself.
func ownedPrescription(c *gin.Context) (nursing.Prescription, bool) {
	nurse, err := nurseForRequest(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load nurse profile"})
		return nursing.Prescription{}, false
	}

	var pr nursing.Prescription
	err = database.DB.Preload("Patient").
		Joins("JOIN nurse_patients ON nurse_patients.patient_id = prescriptions.patient_id").
		Where("nurse_patients.nurse_id = ? AND prescriptions.id = ?", nurse.ID, c.Param("id")).
		First(&pr).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		return nursing.Prescription{}, false
	}
	return pr, true
}
