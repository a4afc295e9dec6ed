package nursing

import (
	"time"

	"gorm.io/gorm"
)

// DefaultExpiryWindowDays is how far ahead a prescription end date counts
// as "expiring soon" when no explicit window is given.
const DefaultExpiryWindowDays = 7

type Prescription struct {
	ID                uint      `gorm:"primaryKey"`
	PrescribingDoctor string    `gorm:"size:300;not null"`
	EmailDoctor       string    `gorm:"size:254"`
	StartDate         time.Time `gorm:"type:date;not null"`
	EndDate           time.Time `gorm:"type:date;not null"`
	AtRenew           bool      `gorm:"not null;default:false"`
	PhotoPrescription string    `gorm:"size:300"`
	PatientID         *uint
	Patient           *Patient

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidAt reports whether the prescription covers the given day.
func (p Prescription) IsValidAt(day time.Time) bool {
	d := truncateToDay(day)
	return !d.Before(truncateToDay(p.StartDate)) && !d.After(truncateToDay(p.EndDate))
}

// ExpiringSoonAt reports whether the prescription has started and ends
// within `days` days of the given day (inclusive on both bounds).
func (p Prescription) ExpiringSoonAt(day time.Time, days int) bool {
	d := truncateToDay(day)
	end := truncateToDay(p.EndDate)
	if truncateToDay(p.StartDate).After(d) {
		return false
	}
	return !end.Before(d) && !end.After(d.AddDate(0, 0, days))
}

// ExpiringSoon is a GORM scope selecting started prescriptions whose end
// date falls within `days` days of today.
func ExpiringSoon(days int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		today := truncateToDay(time.Now())
		limit := today.AddDate(0, 0, days)
		return db.Where(
			"start_date <= ? AND end_date >= ? AND end_date <= ?",
			today, today, limit,
		)
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
