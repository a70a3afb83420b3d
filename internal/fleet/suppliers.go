package fleet

import (
	"context"

	"github.com/ukydev/fleet-records/internal/models"
)

const msgSupplierNotFound = "Proveedor no encontrado."

func supplierIndex(doc *models.Document, id int) int {
	for i := range doc.Suppliers {
		if doc.Suppliers[i].ID == id {
			return i
		}
	}
	return -1
}

// ListSuppliers returns every supplier.
func (s *Service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var out []models.Supplier
	err := s.records.View(ctx, func(doc *models.Document) error {
		out = doc.Suppliers
		return nil
	})
	return out, err
}

// SuppliersByName returns the suppliers whose name contains part, ignoring case.
func (s *Service) SuppliersByName(ctx context.Context, part string) ([]models.Supplier, error) {
	var out []models.Supplier
	err := s.records.View(ctx, func(doc *models.Document) error {
		for _, sup := range doc.Suppliers {
			if sup.NameContains(part) {
				out = append(out, sup)
			}
		}
		if len(out) == 0 {
			return notFound(msgSupplierNotFound)
		}
		return nil
	})
	return out, err
}

// GetSupplier returns the supplier with id.
func (s *Service) GetSupplier(ctx context.Context, id int) (models.Supplier, error) {
	var out models.Supplier
	err := s.records.View(ctx, func(doc *models.Document) error {
		i := supplierIndex(doc, id)
		if i < 0 {
			return notFound(msgSupplierNotFound)
		}
		out = doc.Suppliers[i]
		return nil
	})
	return out, err
}

// CreateSupplier stores sup with the next id.
func (s *Service) CreateSupplier(ctx context.Context, sup models.Supplier) (models.Supplier, error) {
	err := s.records.Update(ctx, func(doc *models.Document) error {
		sup.ID = nextID(doc.Suppliers, func(s models.Supplier) int { return s.ID })
		doc.Suppliers = append(doc.Suppliers, sup)
		return nil
	})
	if err != nil {
		return models.Supplier{}, err
	}
	return sup, nil
}

// UpdateSupplierServices replaces the supplier's services list wholesale.
func (s *Service) UpdateSupplierServices(ctx context.Context, id int, services []string) (models.Supplier, error) {
	if services == nil {
		return models.Supplier{}, invalidArgument("El campo servicios es obligatorio.")
	}
	var out models.Supplier
	err := s.records.Update(ctx, func(doc *models.Document) error {
		i := supplierIndex(doc, id)
		if i < 0 {
			return notFound(msgSupplierNotFound)
		}
		doc.Suppliers[i].Services = append([]string{}, services...)
		out = doc.Suppliers[i]
		return nil
	})
	if err != nil {
		return models.Supplier{}, err
	}
	return out, nil
}
