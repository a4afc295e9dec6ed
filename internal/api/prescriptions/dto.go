package prescriptions

import (
	"fmt"
	"time"

	"ordopro-backend/internal/domain/nursing"
)

const dateLayout = "2006-01-02"

type PrescriptionInput struct {
	PrescribingDoctor string `json:"prescribing_doctor" binding:"required"`
	EmailDoctor       string `json:"email_doctor"`
	StartDate         string `json:"start_date" binding:"required"`
	EndDate           string `json:"end_date" binding:"required"`
	AtRenew           bool   `json:"at_renew"`
	PatientID         uint   `json:"patient" binding:"required"`
}

func (in PrescriptionInput) dates() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err = time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid end_date: %w", err)
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("end_date before start_date")
	}
	return start, end, nil
}

// prescriptionPayload is the expanded shape: prescription fields plus the
// patient's names and the computed validity flags.
func prescriptionPayload(pr nursing.Prescription, patient *nursing.Patient) map[string]interface{} {
	now := time.Now()
	payload := map[string]interface{}{
		"id":                 pr.ID,
		"prescribing_doctor": pr.PrescribingDoctor,
		"email_doctor":       pr.EmailDoctor,
		"start_date":         pr.StartDate.Format(dateLayout),
		"end_date":           pr.EndDate.Format(dateLayout),
		"at_renew":           pr.AtRenew,
		"photo_prescription": pr.PhotoPrescription,
		"patient":            pr.PatientID,
		"is_valid":           pr.IsValidAt(now),
		"expiring_soon":      pr.ExpiringSoonAt(now, nursing.DefaultExpiryWindowDays),
	}
	if patient != nil {
		payload["patient_firstname"] = patient.Firstname
		payload["patient_lastname"] = patient.Lastname
	}
	return payload
}
