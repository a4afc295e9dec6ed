package prescriptions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordopro-backend/internal/domain/nursing"
	"ordopro-backend/internal/domain/users"
)

func TestPrescriptionInputDates(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		in := PrescriptionInput{StartDate: "2026-01-01", EndDate: "2026-03-01"}
		start, end, err := in.dates()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("end before start", func(t *testing.T) {
		in := PrescriptionInput{StartDate: "2026-03-01", EndDate: "2026-01-01"}
		_, _, err := in.dates()
		assert.ErrorContains(t, err, "end_date before start_date")
	})

	t.Run("bad format", func(t *testing.T) {
		in := PrescriptionInput{StartDate: "01/03/2026", EndDate: "2026-03-01"}
		_, _, err := in.dates()
		assert.ErrorContains(t, err, "invalid start_date")
	})
}

func TestRenewalMessage(t *testing.T) {
	nurse := users.User{Firstname: "Marie", Lastname: "Curie", Email: "marie@example.com"}
	pr := nursing.Prescription{
		PrescribingDoctor: "House",
		EmailDoctor:       "house@example.com",
		EndDate:           time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Patient:           &nursing.Patient{Firstname: "John", Lastname: "Doe"},
	}

	msg := string(renewalMessage(pr, nurse, "<script>x</script>dose inchangee"))

	assert.Contains(t, msg, "To: house@example.com")
	assert.Contains(t, msg, "Reply-To: marie@example.com")
	assert.Contains(t, msg, "John Doe")
	assert.Contains(t, msg, "15/09/2026")
	assert.Contains(t, msg, "dose inchangee")
	assert.NotContains(t, msg, "<script>")
	assert.Contains(t, msg, "Marie Curie")
}

func TestRenewalMessageWithoutPatient(t *testing.T) {
	nurse := users.User{Firstname: "Marie", Lastname: "Curie", Email: "marie@example.com"}
	pr := nursing.Prescription{
		PrescribingDoctor: "House",
		EmailDoctor:       "house@example.com",
		EndDate:           time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	}

	msg := string(renewalMessage(pr, nurse, ""))
	assert.Contains(t, msg, "un patient")
	assert.NotContains(t, msg, "Informations complementaires")
}
