package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ukydev/fleet-records/internal/models"
)

type maintenanceResponse struct {
	Message     string                  `json:"message"`
	Maintenance models.MaintenanceOrder `json:"mantenimiento"`
}

// ListMaintenance handles GET /ListarMantenimientos
func (h *FleetHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListMaintenance(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetMaintenance handles GET /Buscarmantenimiento/{id}
func (h *FleetHandler) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	order, err := h.service.GetMaintenance(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// MaintenanceBySupplier handles GET /Buscarmantenimiento/proveedor/{nombreProveedor}
func (h *FleetHandler) MaintenanceBySupplier(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.MaintenanceBySupplier(r.Context(), mux.Vars(r)["nombreProveedor"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// CreateMaintenance handles POST /SubirMantenimiento
func (h *FleetHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var req models.MaintenanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	order, err := h.service.CreateMaintenance(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, maintenanceResponse{Message: "Mantenimiento registrado.", Maintenance: order})
}

// ToggleMaintenanceStatus handles DELETE /EstadoMantenimiento/{id}
func (h *FleetHandler) ToggleMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	order, err := h.service.ToggleMaintenanceStatus(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, maintenanceResponse{
		Message:     fmt.Sprintf("Estado del mantenimiento cambiado a %s.", order.Status),
		Maintenance: order,
	})
}
