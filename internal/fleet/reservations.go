package fleet

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-records/internal/events"
	"github.com/ukydev/fleet-records/internal/models"
)

const msgReservationNotFound = "Reserva no encontrada."

func reservationIndex(doc *models.Document, id int) int {
	for i := range doc.Reservations {
		if doc.Reservations[i].ID == id {
			return i
		}
	}
	return -1
}

// ListReservations returns every reservation, cancelled ones included.
func (s *Service) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var out []models.Reservation
	err := s.records.View(ctx, func(doc *models.Document) error {
		out = doc.Reservations
		return nil
	})
	return out, err
}

// GetReservation returns the reservation with id.
func (s *Service) GetReservation(ctx context.Context, id int) (models.Reservation, error) {
	var out models.Reservation
	err := s.records.View(ctx, func(doc *models.Document) error {
		i := reservationIndex(doc, id)
		if i < 0 {
			return notFound(msgReservationNotFound)
		}
		out = doc.Reservations[i]
		return nil
	})
	return out, err
}

// CreateReservation books an Active vehicle. The vehicle status is left as is.
// A rejected reservation does not consume an id.
func (s *Service) CreateReservation(ctx context.Context, r models.Reservation) (models.Reservation, error) {
	err := s.records.Update(ctx, func(doc *models.Document) error {
		i := vehicleIndex(doc, r.VehicleID)
		if i < 0 {
			return notFound(msgVehicleNotFound)
		}
		if !doc.Vehicles[i].Available() {
			return invalidState("El vehículo no está disponible para reservar.")
		}
		r.ID = nextID(doc.Reservations, func(r models.Reservation) int { return r.ID })
		r.Status = models.RecordActive
		doc.Reservations = append(doc.Reservations, r)
		return nil
	})
	if err != nil {
		return models.Reservation{}, err
	}
	log.WithFields(log.Fields{"id": r.ID, "vehicle": r.VehicleID}).Info("Reservation created")
	s.publish(ctx, events.Event{Name: events.ReservationCreated, ID: r.ID, VehicleID: r.VehicleID, Status: string(r.Status)})
	return r, nil
}

// CancelReservation marks the reservation inactive. The record is kept.
func (s *Service) CancelReservation(ctx context.Context, id int) (models.Reservation, error) {
	var out models.Reservation
	err := s.records.Update(ctx, func(doc *models.Document) error {
		i := reservationIndex(doc, id)
		if i < 0 {
			return notFound(msgReservationNotFound)
		}
		doc.Reservations[i].Status = models.RecordInactive
		out = doc.Reservations[i]
		return nil
	})
	if err != nil {
		return models.Reservation{}, err
	}
	s.publish(ctx, events.Event{Name: events.ReservationCancelled, ID: out.ID, VehicleID: out.VehicleID, Status: string(out.Status)})
	return out, nil
}
