package patients

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ordopro-backend/database"
	"ordopro-backend/internal/domain/nursing"
)

type PatientInput struct {
	Firstname        string     `json:"firstname" binding:"required"`
	Lastname         string     `json:"lastname" binding:"required"`
	Birthday         *time.Time `json:"birthday"`
	Address          string     `json:"address"`
	ZipCode          string     `json:"zip_code"`
	City             string     `json:"city"`
	Phone            string     `json:"phone"`
	HealthCardNumber string     `json:"health_card_number"`
	InsuranceFund    string     `json:"insurance_fund"`
}

func (in PatientInput) toModel() nursing.Patient {
	p := nursing.Patient{}
	in.apply(&p)
	return p
}

func (in PatientInput) apply(p *nursing.Patient) {
	p.Firstname = in.Firstname
	p.Lastname = in.Lastname
	p.Birthday = in.Birthday
	p.Address = in.Address
	p.ZipCode = in.ZipCode
	p.City = in.City
	p.Phone = in.Phone
	p.HealthCardNumber = in.HealthCardNumber
	p.InsuranceFund = in.InsuranceFund
}

// patientPayload mirrors the API shape: the patient plus its
// prescriptions, newest end date first, and the subset expiring soon.
func patientPayload(p nursing.Patient) map[string]interface{} {
	var prescriptions []nursing.Prescription
	database.DB.Where("patient_id = ?", p.ID).Order("end_date DESC").Find(&prescriptions)

	var expiringSoon []nursing.Prescription
	database.DB.Scopes(nursing.ExpiringSoon(nursing.DefaultExpiryWindowDays)).
		Where("patient_id = ?", p.ID).Order("end_date DESC").Find(&expiringSoon)

	return map[string]interface{}{
		"id":                        p.ID,
		"firstname":                 p.Firstname,
		"lastname":                  p.Lastname,
		"birthday":                  p.Birthday,
		"address":                   p.Address,
		"zip_code":                  p.ZipCode,
		"city":                      p.City,
		"phone":                     p.Phone,
		"health_card_number":        p.HealthCardNumber,
		"insurance_fund":            p.InsuranceFund,
		"prescriptions":             prescriptionSummaries(prescriptions),
		"expire_soon_prescriptions": prescriptionSummaries(expiringSoon),
	}
}

func prescriptionSummaries(prescriptions []nursing.Prescription) []map[string]interface{} {
	now := time.Now()
	out := make([]map[string]interface{}, 0, len(prescriptions))
	for _, pr := range prescriptions {
		out = append(out, map[string]interface{}{
			"id":                 pr.ID,
			"prescribing_doctor": pr.PrescribingDoctor,
			"email_doctor":       pr.EmailDoctor,
			"start_date":         pr.StartDate.Format("2006-01-02"),
			"end_date":           pr.EndDate.Format("2006-01-02"),
			"at_renew":           pr.AtRenew,
			"photo_prescription": pr.PhotoPrescription,
			"is_valid":           pr.IsValidAt(now),
			"expiring_soon":      pr.ExpiringSoonAt(now, nursing.DefaultExpiryWindowDays),
		})
	}
	return out
}

// fieldsParam reads the ?fields= projection list, e.g.
// GET /patient/?fields=id,firstname,lastname.
func fieldsParam(c *gin.Context) []string {
	raw := c.Query("fields")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// filterFields keeps only the requested keys; a nil request means all.
func filterFields(payload map[string]interface{}, fields []string) map[string]interface{} {
	if len(fields) == 0 {
		return payload
	}
	allowed := make(map[string]bool, len(fields))
	for _, f := range fields {
		allowed[strings.TrimSpace(f)] = true
	}
	filtered := make(map[string]interface{}, len(fields))
	for k, v := range payload {
		if allowed[k] {
			filtered[k] = v
		}
	}
	return filtered
}
