package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ukydev/fleet-records/internal/models"
)

type vehicleStatusRequest struct {
	Status string `json:"estado"`
}

type vehicleStatusResponse struct {
	Message string         `json:"message"`
	Vehicle models.Vehicle `json:"vehiculo"`
}

// ListVehicles handles GET /ListarVehiculos
func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.ListVehicles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// GetVehicle handles GET /BuscarVehiculo/{id}
func (h *FleetHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	vehicle, err := h.service.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// VehiclesByStatus handles GET /BuscarVehiculosPorEstado/{estado}
func (h *FleetHandler) VehiclesByStatus(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.VehiclesByStatus(r.Context(), mux.Vars(r)["estado"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// VehiclesByType handles GET /BuscarVehiculosPorTipo/{tipo}
func (h *FleetHandler) VehiclesByType(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.VehiclesByType(r.Context(), mux.Vars(r)["tipo"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// CreateVehicle handles POST /SubirVehiculo
func (h *FleetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if !decodeBody(w, r, &vehicle) {
		return
	}
	created, err := h.service.CreateVehicle(r.Context(), vehicle)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// UpdateVehicle handles PUT /ActualizarVehiculo/{id}
func (h *FleetHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.Patch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := h.service.UpdateVehicle(r.Context(), id, patch); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Vehículo actualizado")
}

// SetVehicleStatus handles DELETE /EstadoVehiculo/{id}
func (h *FleetHandler) SetVehicleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req vehicleStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	vehicle, err := h.service.SetVehicleStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleStatusResponse{
		Message: fmt.Sprintf("Estado del vehículo cambiado a %s.", vehicle.Status),
		Vehicle: vehicle,
	})
}
