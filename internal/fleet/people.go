package fleet

import (
	"context"

	"github.com/ukydev/fleet-records/internal/models"
)

// ListDrivers returns every driver.
func (s *Service) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	var out []models.Driver
	err := s.records.View(ctx, func(doc *models.Document) error {
		out = doc.Drivers
		return nil
	})
	return out, err
}

// GetDriver returns the driver with id.
func (s *Service) GetDriver(ctx context.Context, id int) (models.Driver, error) {
	var out models.Driver
	err := s.records.View(ctx, func(doc *models.Document) error {
		for _, d := range doc.Drivers {
			if d.ID == id {
				out = d
				return nil
			}
		}
		return notFound("Conductor no encontrado.")
	})
	return out, err
}

// CreateDriver stores d with the next id.
func (s *Service) CreateDriver(ctx context.Context, d models.Driver) (models.Driver, error) {
	err := s.records.Update(ctx, func(doc *models.Document) error {
		d.ID = nextID(doc.Drivers, func(d models.Driver) int { return d.ID })
		doc.Drivers = append(doc.Drivers, d)
		return nil
	})
	if err != nil {
		return models.Driver{}, err
	}
	return d, nil
}

// UpdateClient merges patch into the client with id. Clients have no other operation.
func (s *Service) UpdateClient(ctx context.Context, id int, patch models.Patch) error {
	return s.records.Update(ctx, func(doc *models.Document) error {
		for i := range doc.Clients {
			if doc.Clients[i].ID != id {
				continue
			}
			if err := doc.Clients[i].Apply(patch); err != nil {
				return invalidArgument(err.Error())
			}
			return nil
		}
		return notFound("Cliente no encontrado.")
	})
}
