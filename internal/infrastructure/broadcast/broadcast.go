// Package broadcast relays appointment notifications between sessions.
// Delivery is best effort; subscribers treat a notification as a hint to
// refresh.
package broadcast

import (
	"context"

	"hospital-portal/internal/domain/entity"
)

// DefaultChannel is the topic appointment notifications are published on.
const DefaultChannel = "appointments"

const TypeAppointmentCreated = "appointment:created"

type Notification struct {
	Type        string             `json:"type"`
	Appointment entity.Appointment `json:"appointment"`
	Fallback    bool               `json:"fallback,omitempty"`
}

type Broadcaster interface {
	Publish(ctx context.Context, n Notification) error
	// Subscribe streams notifications until ctx is done, then closes the
	// channel.
	Subscribe(ctx context.Context) (<-chan Notification, error)
}
