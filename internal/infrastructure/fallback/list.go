// Package fallback holds the secondary flat-list appointment backend used
// when the primary store cannot accept a booking.
package fallback

import (
	"context"

	"hospital-portal/internal/domain/entity"
)

// AppointmentList is an append-only list of appointments with no indexes and
// no transactions.
type AppointmentList interface {
	Load(ctx context.Context) ([]entity.Appointment, error)
	Append(ctx context.Context, appointment entity.Appointment) error
}
