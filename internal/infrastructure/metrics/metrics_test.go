package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Booking(OutcomeCommitted)
		m.Prescription(ResultOutOfStock)
		m.Seeded("patients", 3)
		m.SourceError("fixture")
	})
}

func TestCounters(t *testing.T) {
	m := New()

	m.Booking(OutcomeCommitted)
	m.Booking(OutcomeCommitted)
	m.Booking(OutcomeFallbackCommitted)
	m.Seeded("medicines", 4)
	m.Seeded("medicines", 0)

	body := scrape(t, m)
	assert.Contains(t, body, `hospital_portal_appointment_bookings_total{outcome="committed"} 2`)
	assert.Contains(t, body, `hospital_portal_appointment_bookings_total{outcome="fallback_committed"} 1`)
	assert.Contains(t, body, `hospital_portal_seeded_records_total{collection="medicines"} 4`)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.Prescription(ResultPrescribed)

	assert.Contains(t, scrape(t, m), `hospital_portal_prescriptions_total{result="prescribed"} 1`)
}
