package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/ukydev/fleet-records/internal/models"
)

type supplierServicesRequest struct {
	Services []string `json:"servicios"`
}

type supplierResponse struct {
	Message  string          `json:"message"`
	Supplier models.Supplier `json:"proveedor"`
}

// ListSuppliers handles GET /ListarProveedores
func (h *FleetHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

// SuppliersByName handles GET /BuscarProveedorPorNombre/{nombre}
func (h *FleetHandler) SuppliersByName(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.SuppliersByName(r.Context(), mux.Vars(r)["nombre"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

// GetSupplier handles GET /BuscarProveedorPorId/{id}
func (h *FleetHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	supplier, err := h.service.GetSupplier(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, supplier)
}

// CreateSupplier handles POST /SubirProveedor
func (h *FleetHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var supplier models.Supplier
	if !decodeBody(w, r, &supplier) {
		return
	}
	created, err := h.service.CreateSupplier(r.Context(), supplier)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, supplierResponse{Message: "Proveedor registrado", Supplier: created})
}

// UpdateSupplierServices handles PUT /ActualizarServiciosProveedor/{id}
func (h *FleetHandler) UpdateSupplierServices(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req supplierServicesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	supplier, err := h.service.UpdateSupplierServices(r.Context(), id, req.Services)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, supplierResponse{Message: "Servicios del proveedor actualizados.", Supplier: supplier})
}
