package patients

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ordopro-backend/database"
	"ordopro-backend/internal/domain/nursing"
)

// nurseForRequest resolves (or lazily creates) the Nurse row backing the
// authenticated user.
func nurseForRequest(c *gin.Context) (nursing.Nurse, error) {
	userID := c.GetUint("user_id")
	nurse := nursing.Nurse{UserID: &userID}
	err := database.DB.Where("user_id = ?", userID).FirstOrCreate(&nurse).Error
	return nurse, err
}

// GET /api/v1/patient — only the patients associated to the logged-in nurse.
func ListPatients(c *gin.Context) {
	nurse, err := nurseForRequest(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load nurse profile"})
		return
	}

	var patients []nursing.Patient
	if err := database.DB.Model(&nurse).Association("Patients").Find(&patients); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load patients"})
		return
	}

	fields := fieldsParam(c)
	payload := make([]map[string]interface{}, 0, len(patients))
	for _, p := range patients {
		payload = append(payload, filterFields(patientPayload(p), fields))
	}
	c.JSON(http.StatusOK, payload)
}

// GET /api/v1/patient/:id
func GetPatient(c *gin.Context) {
	patient, ok := ownedPatient(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, filterFields(patientPayload(patient), fieldsParam(c)))
}

// POST /api/v1/patient — creates the patient and attaches it to the nurse.
func CreatePatient(c *gin.Context) {
	nurse, err := nurseForRequest(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load nurse profile"})
		return
	}

	var input PatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient := input.toModel()
	if err := database.DB.Create(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create patient"})
		return
	}
	if err := database.DB.Model(&nurse).Association("Patients").Append(&patient); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach patient"})
		return
	}

	c.JSON(http.StatusCreated, patientPayload(patient))
}

// PUT /api/v1/patient/:id
func UpdatePatient(c *gin.Context) {
	patient, ok := ownedPatient(c)
	if !ok {
		return
	}

	var input PatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input.apply(&patient)
	if err := database.DB.Save(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update patient"})
		return
	}
	c.JSON(http.StatusOK, patientPayload(patient))
}

// DELETE /api/v1/patient/:id
func DeletePatient(c *gin.Context) {
	patient, ok := ownedPatient(c)
	if !ok {
		return
	}
	if err := database.DB.Delete(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete patient"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ownedPatient loads the :id patient and enforces the nurse scope. It
// writes the error response itself when the lookup fails.
func ownedPatient(c *gin.Context) (nursing.Patient, bool) {
	nurse, err := nurseForRequest(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load nurse profile"})
		return nursing.Patient{}, false
	}

	var patient nursing.Patient
	err = database.DB.
		Joins("JOIN nurse_patients ON nurse_patients.patient_id = patients.id").
		Where("nurse_patients.nurse_id = ? AND patients.id = ?", nurse.ID, c.Param("id")).
		First(&patient).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return nursing.Patient{}, false
	}
	return patient, true
}
