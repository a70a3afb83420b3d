package fleet

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-records/internal/events"
	"github.com/ukydev/fleet-records/internal/models"
)

const msgMaintenanceNotFound = "Mantenimiento no encontrado."

func maintenanceIndex(doc *models.Document, id int) int {
	for i := range doc.Maintenance {
		if doc.Maintenance[i].ID == id {
			return i
		}
	}
	return -1
}

// ListMaintenance returns every maintenance order.
func (s *Service) ListMaintenance(ctx context.Context) ([]models.MaintenanceOrder, error) {
	var out []models.MaintenanceOrder
	err := s.records.View(ctx, func(doc *models.Document) error {
		out = doc.Maintenance
		return nil
	})
	return out, err
}

// GetMaintenance returns the order with id.
func (s *Service) GetMaintenance(ctx context.Context, id int) (models.MaintenanceOrder, error) {
	var out models.MaintenanceOrder
	err := s.records.View(ctx, func(doc *models.Document) error {
		i := maintenanceIndex(doc, id)
		if i < 0 {
			return notFound(msgMaintenanceNotFound)
		}
		out = doc.Maintenance[i]
		return nil
	})
	return out, err
}

// MaintenanceBySupplier returns the orders placed with supplier, matched exactly ignoring case.
func (s *Service) MaintenanceBySupplier(ctx context.Context, supplier string) ([]models.MaintenanceOrder, error) {
	var out []models.MaintenanceOrder
	err := s.records.View(ctx, func(doc *models.Document) error {
		for _, m := range doc.Maintenance {
			if m.FromSupplier(supplier) {
				out = append(out, m)
			}
		}
		if len(out) == 0 {
			return notFound("No se encontraron mantenimientos para el proveedor especificado.")
		}
		return nil
	})
	return out, err
}

// CreateMaintenance opens an order against an Active vehicle and moves the
// vehicle to maintenance. Both changes land in the same document write.
func (s *Service) CreateMaintenance(ctx context.Context, req models.MaintenanceRequest) (models.MaintenanceOrder, error) {
	var order models.MaintenanceOrder
	err := s.records.Update(ctx, func(doc *models.Document) error {
		i := vehicleIndex(doc, req.VehicleID)
		if i < 0 {
			return notFound(msgVehicleNotFound)
		}
		v := &doc.Vehicles[i]
		if !v.Available() {
			return invalidState("El vehículo no está disponible para mantenimiento.")
		}

		order = models.MaintenanceOrder{
			ID:          nextID(doc.Maintenance, func(m models.MaintenanceOrder) int { return m.ID }),
			VehicleID:   req.VehicleID,
			Supplier:    req.Supplier,
			Description: req.Description,
			CreatedAt:   s.now().UTC(),
			Status:      models.RecordActive,
		}
		doc.Maintenance = append(doc.Maintenance, order)

		v.Status = models.VehicleInMaintenance
		v.MaintenanceIDs = append(v.MaintenanceIDs, order.ID)
		return nil
	})
	if err != nil {
		return models.MaintenanceOrder{}, err
	}
	log.WithFields(log.Fields{
		"id":       order.ID,
		"vehicle":  order.VehicleID,
		"supplier": order.Supplier,
	}).Info("Maintenance order created")
	s.publish(ctx, events.Event{Name: events.MaintenanceCreated, ID: order.ID, VehicleID: order.VehicleID, Status: string(order.Status)})
	return order, nil
}

// ToggleMaintenanceStatus flips the order between active and inactive.
func (s *Service) ToggleMaintenanceStatus(ctx context.Context, id int) (models.MaintenanceOrder, error) {
	var out models.MaintenanceOrder
	err := s.records.Update(ctx, func(doc *models.Document) error {
		i := maintenanceIndex(doc, id)
		if i < 0 {
			return notFound(msgMaintenanceNotFound)
		}
		doc.Maintenance[i].Status = doc.Maintenance[i].Status.Toggle()
		out = doc.Maintenance[i]
		return nil
	})
	if err != nil {
		return models.MaintenanceOrder{}, err
	}
	s.publish(ctx, events.Event{Name: events.MaintenanceToggled, ID: out.ID, VehicleID: out.VehicleID, Status: string(out.Status)})
	return out, nil
}
