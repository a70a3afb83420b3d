package models

import (
	"strings"
	"time"
)

// MaintenanceOrder represents a maintenance job opened against a vehicle.
type MaintenanceOrder struct {
	ID          int          `json:"id"`
	VehicleID   int          `json:"idVehiculo"`
	Supplier    string       `json:"proveedor"`
	Description string       `json:"descripcion"`
	CreatedAt   time.Time    `json:"fecha"`
	Status      RecordStatus `json:"estado"` // "activo" or "inactivo"
}

// MaintenanceRequest is the body accepted when opening a maintenance order.
type MaintenanceRequest struct {
	VehicleID   int    `json:"idVehiculo"`
	Supplier    string `json:"proveedor"`
	Description string `json:"descripcion"`
}

// FromSupplier reports whether the order was placed with the named supplier, ignoring case.
func (m MaintenanceOrder) FromSupplier(name string) bool {
	return strings.EqualFold(m.Supplier, name)
}
