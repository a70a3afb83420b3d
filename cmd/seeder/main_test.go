package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-records/internal/db"
	"github.com/ukydev/fleet-records/internal/fleet"
	"github.com/ukydev/fleet-records/internal/handlers"
)

func newTestAPI(t *testing.T) (*httptest.Server, *db.Records) {
	t.Helper()
	records := db.NewRecords(db.NewMemoryStore(), true)
	router := mux.NewRouter()
	handlers.NewFleetHandler(fleet.NewService(records), "0").Register(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, records
}

func TestRandomVehicle(t *testing.T) {
	s := NewSeeder("http://example.invalid")
	for i := 1; i <= 20; i++ {
		v := s.randomVehicle(i)
		require.Contains(t, catalog, v.Type)
		assert.Contains(t, catalog[v.Type], v.Brand)
		assert.Contains(t, catalog[v.Type][v.Brand], v.Model)
		assert.GreaterOrEqual(t, v.Year, 2018)
		assert.LessOrEqual(t, v.Year, 2024)
	}
	assert.Equal(t, "FLT-007", s.randomVehicle(7).Plate)
}

func TestSeeder_Run(t *testing.T) {
	srv, records := newTestAPI(t)

	res, err := NewSeeder(srv.URL+"/").Run(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, len(sampleSuppliers), res.Suppliers)
	assert.Equal(t, len(sampleDrivers), res.Drivers)
	require.Len(t, res.Vehicles, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{res.Vehicles[0].ID, res.Vehicles[1].ID, res.Vehicles[2].ID})
	assert.Equal(t, 1, res.Maintenance)
	assert.Equal(t, 1, res.Reservations)

	doc, err := records.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "En mantenimiento", string(doc.Vehicles[0].Status))
	assert.Equal(t, "activo", string(doc.Vehicles[1].Status))
	require.Len(t, doc.Reservations, 1)
	assert.Equal(t, 2, doc.Reservations[0].VehicleID)
}

func TestSeeder_NoVehicles(t *testing.T) {
	srv, _ := newTestAPI(t)
	res, err := NewSeeder(srv.URL).Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, res.Vehicles)
	assert.Zero(t, res.Maintenance)
}

func TestSeeder_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewSeeder(srv.URL).Run(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
