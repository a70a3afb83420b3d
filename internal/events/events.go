package events

import (
	"context"
	"time"
)

// Event names, also used as the MQTT topic suffix.
const (
	VehicleCreated       = "vehicle/created"
	VehicleStatusChanged = "vehicle/status"
	MaintenanceCreated   = "maintenance/created"
	MaintenanceToggled   = "maintenance/toggled"
	ReservationCreated   = "reservation/created"
	ReservationCancelled = "reservation/cancelled"
)

// Event is a lifecycle notification emitted after a successful write.
type Event struct {
	Name      string    `json:"event"`
	ID        int       `json:"id"`
	VehicleID int       `json:"idVehiculo,omitempty"`
	Status    string    `json:"estado,omitempty"`
	At        time.Time `json:"fecha"`
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close()
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close()                               {}
