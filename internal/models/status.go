package models

import "strings"

// VehicleStatus is the lifecycle state of a vehicle.
type VehicleStatus string

const (
	VehicleActive        VehicleStatus = "activo"
	VehicleInactive      VehicleStatus = "inactivo"
	VehicleInMaintenance VehicleStatus = "En mantenimiento"
	VehicleUnderRepair   VehicleStatus = "En reparación"
)

// VehicleStatuses lists every accepted vehicle status.
var VehicleStatuses = []VehicleStatus{
	VehicleActive,
	VehicleInactive,
	VehicleInMaintenance,
	VehicleUnderRepair,
}

// ParseVehicleStatus matches s case-insensitively against the accepted
// statuses and returns the canonical spelling.
func ParseVehicleStatus(s string) (VehicleStatus, bool) {
	for _, status := range VehicleStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, true
		}
	}
	return "", false
}

// Is reports whether two statuses are equal ignoring case.
func (s VehicleStatus) Is(other VehicleStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

// RecordStatus is the soft-delete flag shared by maintenance orders and reservations.
type RecordStatus string

const (
	RecordActive   RecordStatus = "activo"
	RecordInactive RecordStatus = "inactivo"
)

// Toggle flips active to inactive; anything else becomes active.
func (s RecordStatus) Toggle() RecordStatus {
	if strings.EqualFold(string(s), string(RecordActive)) {
		return RecordInactive
	}
	return RecordActive
}
