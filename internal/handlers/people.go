package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-records/internal/models"
)

type driverResponse struct {
	Message string        `json:"message"`
	Driver  models.Driver `json:"conductor"`
}

// ListDrivers handles GET /ListarConductores
func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.service.ListDrivers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, drivers)
}

// GetDriver handles GET /BuscarConductorPorId/{id}
func (h *FleetHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	driver, err := h.service.GetDriver(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

// CreateDriver handles POST /SubirConductor
func (h *FleetHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var driver models.Driver
	if !decodeBody(w, r, &driver) {
		return
	}
	created, err := h.service.CreateDriver(r.Context(), driver)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, driverResponse{Message: "Conductor registrado", Driver: created})
}

// UpdateClient handles PUT /ActualizarCliente/{id}
func (h *FleetHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch models.Patch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := h.service.UpdateClient(r.Context(), id, patch); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Cliente actualizado")
}
