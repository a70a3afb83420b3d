package models

import (
	"encoding/json"
	"fmt"
)

// Collection keys of the persisted document.
const (
	CollectionVehicles     = "vehiculos"
	CollectionMaintenance  = "mantenimiento"
	CollectionSuppliers    = "proveedores"
	CollectionDrivers      = "conductores"
	CollectionClients      = "clientes"
	CollectionReservations = "reservas"
)

// Collections lists the document collections in persisted order.
var Collections = []string{
	CollectionVehicles,
	CollectionMaintenance,
	CollectionSuppliers,
	CollectionDrivers,
	CollectionClients,
	CollectionReservations,
}

// Document is the whole datastore: six named collections.
type Document struct {
	Vehicles     []Vehicle          `json:"vehiculos"`
	Maintenance  []MaintenanceOrder `json:"mantenimiento"`
	Suppliers    []Supplier         `json:"proveedores"`
	Drivers      []Driver           `json:"conductores"`
	Clients      []Client           `json:"clientes"`
	Reservations []Reservation      `json:"reservas"`
}

// NewDocument returns a document with every collection present and empty.
func NewDocument() *Document {
	d := &Document{}
	d.Normalize()
	return d
}

// Normalize replaces absent collections with empty ones so they persist as [].
func (d *Document) Normalize() {
	if d.Vehicles == nil {
		d.Vehicles = []Vehicle{}
	}
	if d.Maintenance == nil {
		d.Maintenance = []MaintenanceOrder{}
	}
	if d.Suppliers == nil {
		d.Suppliers = []Supplier{}
	}
	if d.Drivers == nil {
		d.Drivers = []Driver{}
	}
	if d.Clients == nil {
		d.Clients = []Client{}
	}
	if d.Reservations == nil {
		d.Reservations = []Reservation{}
	}
}

// Bucket returns a pointer to the named collection slice.
func (d *Document) Bucket(name string) (any, error) {
	switch name {
	case CollectionVehicles:
		return &d.Vehicles, nil
	case CollectionMaintenance:
		return &d.Maintenance, nil
	case CollectionSuppliers:
		return &d.Suppliers, nil
	case CollectionDrivers:
		return &d.Drivers, nil
	case CollectionClients:
		return &d.Clients, nil
	case CollectionReservations:
		return &d.Reservations, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", name)
	}
}

// EncodeBuckets marshals each collection separately, keyed by collection name.
func (d *Document) EncodeBuckets() (map[string][]byte, error) {
	d.Normalize()
	out := make(map[string][]byte, len(Collections))
	for _, name := range Collections {
		target, err := d.Bucket(name)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(target)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		out[name] = data
	}
	return out, nil
}

// DecodeBuckets builds a document from per-collection payloads.
// Unknown bucket names are ignored; missing ones stay empty.
func DecodeBuckets(buckets map[string][]byte) (*Document, error) {
	d := &Document{}
	for name, payload := range buckets {
		if len(payload) == 0 {
			continue
		}
		target, err := d.Bucket(name)
		if err != nil {
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
	}
	d.Normalize()
	return d, nil
}
