package models

import (
	"strings"
	"time"
)

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID             int            `json:"id"`
	Type           string         `json:"TipoVehiculo"` // "van", "camion", "sedan", ...
	Plate          string         `json:"placa,omitempty"`
	Brand          string         `json:"marca,omitempty"`
	Model          string         `json:"modelo,omitempty"`
	Year           int            `json:"anio,omitempty"`
	Status         VehicleStatus  `json:"estado"`
	MaintenanceIDs []int          `json:"mantenimientos,omitempty"` // ids of the orders opened against it
	History        []HistoryEntry `json:"historial,omitempty"`
	Extra          Attributes     `json:"-"`
}

// HistoryEntry is one audit note on a vehicle.
type HistoryEntry struct {
	Change string    `json:"cambio"`
	At     time.Time `json:"fecha"`
}

var vehicleKeys = []string{"id", "TipoVehiculo", "placa", "marca", "modelo", "anio", "estado", "mantenimientos", "historial"}

type vehicleJSON Vehicle

// MarshalJSON flattens the freeform attributes next to the typed fields.
func (v Vehicle) MarshalJSON() ([]byte, error) {
	return marshalFlat(vehicleJSON(v), v.Extra, vehicleKeys)
}

// UnmarshalJSON keeps unknown keys in Extra.
func (v *Vehicle) UnmarshalJSON(data []byte) error {
	var typed vehicleJSON
	extra, err := unmarshalFlat(data, &typed, vehicleKeys)
	if err != nil {
		return err
	}
	*v = Vehicle(typed)
	v.Extra = extra
	return nil
}

// Available reports whether the vehicle can be reserved or sent to maintenance.
func (v Vehicle) Available() bool {
	return v.Status.Is(VehicleActive)
}

// HasType reports whether the vehicle type matches t ignoring case.
func (v Vehicle) HasType(t string) bool {
	return strings.EqualFold(v.Type, t)
}

// Apply merges p into the vehicle. Identity, status, maintenance links and
// history are not patchable and are skipped. On error the vehicle is unchanged.
func (v *Vehicle) Apply(p Patch) error {
	next := *v
	next.Extra = v.Extra.Clone()
	for key, raw := range p {
		var err error
		switch canonicalKey(key, vehicleKeys) {
		case "id", "estado", "mantenimientos", "historial":
			continue
		case "TipoVehiculo":
			err = decodeField(key, raw, &next.Type)
		case "placa":
			err = decodeField(key, raw, &next.Plate)
		case "marca":
			err = decodeField(key, raw, &next.Brand)
		case "modelo":
			err = decodeField(key, raw, &next.Model)
		case "anio":
			err = decodeField(key, raw, &next.Year)
		default:
			next.Extra.set(key, raw)
		}
		if err != nil {
			return err
		}
	}
	*v = next
	return nil
}

// RecordChange appends an audit entry to the vehicle history.
func (v *Vehicle) RecordChange(change string, at time.Time) {
	v.History = append(v.History, HistoryEntry{Change: change, At: at})
}
