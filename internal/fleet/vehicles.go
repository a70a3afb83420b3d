package fleet

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-records/internal/events"
	"github.com/ukydev/fleet-records/internal/models"
)

const msgVehicleNotFound = "Vehículo no encontrado."

// ListVehicles returns every vehicle, an empty slice when there are none.
func (s *Service) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var out []models.Vehicle
	err := s.records.View(ctx, func(doc *models.Document) error {
		out = doc.Vehicles
		return nil
	})
	return out, err
}

// GetVehicle returns the vehicle with id.
func (s *Service) GetVehicle(ctx context.Context, id int) (models.Vehicle, error) {
	var out models.Vehicle
	err := s.records.View(ctx, func(doc *models.Document) error {
		i := vehicleIndex(doc, id)
		if i < 0 {
			return notFound(msgVehicleNotFound)
		}
		out = doc.Vehicles[i]
		return nil
	})
	return out, err
}

// VehiclesByStatus returns the vehicles whose status matches ignoring case.
func (s *Service) VehiclesByStatus(ctx context.Context, status string) ([]models.Vehicle, error) {
	return s.filterVehicles(ctx, func(v models.Vehicle) bool {
		return strings.EqualFold(string(v.Status), status)
	}, fmt.Sprintf("No se encontraron vehículos con el estado: %s.", status))
}

// VehiclesByType returns the vehicles whose type matches ignoring case.
func (s *Service) VehiclesByType(ctx context.Context, vehicleType string) ([]models.Vehicle, error) {
	return s.filterVehicles(ctx, func(v models.Vehicle) bool {
		return v.HasType(vehicleType)
	}, fmt.Sprintf("No se encontraron vehículos del tipo: %s.", vehicleType))
}

func (s *Service) filterVehicles(ctx context.Context, match func(models.Vehicle) bool, missing string) ([]models.Vehicle, error) {
	var out []models.Vehicle
	err := s.records.View(ctx, func(doc *models.Document) error {
		for _, v := range doc.Vehicles {
			if match(v) {
				out = append(out, v)
			}
		}
		if len(out) == 0 {
			return notFound(missing)
		}
		return nil
	})
	return out, err
}

// CreateVehicle stores v as a new Active vehicle with the next id.
// Maintenance links and history start empty.
func (s *Service) CreateVehicle(ctx context.Context, v models.Vehicle) (models.Vehicle, error) {
	err := s.records.Update(ctx, func(doc *models.Document) error {
		v.ID = nextID(doc.Vehicles, func(v models.Vehicle) int { return v.ID })
		v.Status = models.VehicleActive
		v.MaintenanceIDs = nil
		v.History = nil
		doc.Vehicles = append(doc.Vehicles, v)
		return nil
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	log.WithFields(log.Fields{"id": v.ID, "type": v.Type}).Info("Vehicle created")
	s.publish(ctx, events.Event{Name: events.VehicleCreated, ID: v.ID, VehicleID: v.ID, Status: string(v.Status)})
	return v, nil
}

// UpdateVehicle merges patch into the vehicle with id.
func (s *Service) UpdateVehicle(ctx context.Context, id int, patch models.Patch) error {
	return s.records.Update(ctx, func(doc *models.Document) error {
		i := vehicleIndex(doc, id)
		if i < 0 {
			return notFound(msgVehicleNotFound)
		}
		if err := doc.Vehicles[i].Apply(patch); err != nil {
			return invalidArgument(err.Error())
		}
		return nil
	})
}

// SetVehicleStatus moves the vehicle to status and records the change in its history.
// An unknown vehicle is reported before an invalid status.
func (s *Service) SetVehicleStatus(ctx context.Context, id int, status string) (models.Vehicle, error) {
	var out models.Vehicle
	err := s.records.Update(ctx, func(doc *models.Document) error {
		i := vehicleIndex(doc, id)
		if i < 0 {
			return notFound(msgVehicleNotFound)
		}
		next, ok := models.ParseVehicleStatus(status)
		if !ok {
			return invalidArgument("Estado inválido.")
		}
		v := &doc.Vehicles[i]
		v.Status = next
		v.RecordChange("Estado cambiado a "+string(next), s.now().UTC())
		out = *v
		return nil
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	s.publish(ctx, events.Event{Name: events.VehicleStatusChanged, ID: id, VehicleID: id, Status: string(out.Status)})
	return out, nil
}
