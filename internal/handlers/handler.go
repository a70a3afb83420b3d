package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-records/internal/db"
	"github.com/ukydev/fleet-records/internal/fleet"
	"github.com/ukydev/fleet-records/internal/middleware"
)

// FleetHandler serves the fleet records API.
type FleetHandler struct {
	service *fleet.Service
	port    string
}

// NewFleetHandler creates a new fleet handler. port is only reported by the liveness route.
func NewFleetHandler(service *fleet.Service, port string) *FleetHandler {
	return &FleetHandler{
		service: service,
		port:    port,
	}
}

// Register mounts every fleet route on r.
func (h *FleetHandler) Register(r *mux.Router) {
	r.HandleFunc("/", h.Root).Methods(http.MethodGet)

	// Vehicles
	r.HandleFunc("/ListarVehiculos", h.ListVehicles).Methods(http.MethodGet)
	r.HandleFunc("/BuscarVehiculo/{id}", h.GetVehicle).Methods(http.MethodGet)
	r.HandleFunc("/BuscarVehiculosPorEstado/{estado}", h.VehiclesByStatus).Methods(http.MethodGet)
	r.HandleFunc("/BuscarVehiculosPorTipo/{tipo}", h.VehiclesByType).Methods(http.MethodGet)
	r.HandleFunc("/SubirVehiculo", h.CreateVehicle).Methods(http.MethodPost)
	r.HandleFunc("/ActualizarVehiculo/{id}", h.UpdateVehicle).Methods(http.MethodPut)
	r.HandleFunc("/EstadoVehiculo/{id}", h.SetVehicleStatus).Methods(http.MethodDelete)

	// Maintenance
	r.HandleFunc("/ListarMantenimientos", h.ListMaintenance).Methods(http.MethodGet)
	r.HandleFunc("/Buscarmantenimiento/proveedor/{nombreProveedor}", h.MaintenanceBySupplier).Methods(http.MethodGet)
	r.HandleFunc("/Buscarmantenimiento/{id}", h.GetMaintenance).Methods(http.MethodGet)
	r.HandleFunc("/SubirMantenimiento", h.CreateMaintenance).Methods(http.MethodPost)
	r.HandleFunc("/EstadoMantenimiento/{id}", h.ToggleMaintenanceStatus).Methods(http.MethodDelete)

	// Suppliers
	r.HandleFunc("/ListarProveedores", h.ListSuppliers).Methods(http.MethodGet)
	r.HandleFunc("/BuscarProveedorPorNombre/{nombre}", h.SuppliersByName).Methods(http.MethodGet)
	r.HandleFunc("/BuscarProveedorPorId/{id}", h.GetSupplier).Methods(http.MethodGet)
	r.HandleFunc("/SubirProveedor", h.CreateSupplier).Methods(http.MethodPost)
	r.HandleFunc("/ActualizarServiciosProveedor/{id}", h.UpdateSupplierServices).Methods(http.MethodPut)

	// Drivers and clients
	r.HandleFunc("/ListarConductores", h.ListDrivers).Methods(http.MethodGet)
	r.HandleFunc("/BuscarConductorPorId/{id}", h.GetDriver).Methods(http.MethodGet)
	r.HandleFunc("/SubirConductor", h.CreateDriver).Methods(http.MethodPost)
	r.HandleFunc("/ActualizarCliente/{id}", h.UpdateClient).Methods(http.MethodPut)

	// Reservations
	r.HandleFunc("/ListarReservas", h.ListReservations).Methods(http.MethodGet)
	r.HandleFunc("/BuscarReserva/{id}", h.GetReservation).Methods(http.MethodGet)
	r.HandleFunc("/eliminarReserva/{id}", h.CancelReservation).Methods(http.MethodDelete)
	r.HandleFunc("/SubirReserva", h.CreateReservation).Methods(http.MethodPost)
}

// Root is the liveness route.
func (h *FleetHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "API escuchando en el puerto %s", h.port)
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps domain and store errors onto HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "Error interno del servidor."
	switch {
	case errors.Is(err, fleet.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, fleet.ErrInvalidArgument), errors.Is(err, fleet.ErrInvalidState):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, db.ErrStoreWrite), errors.Is(err, db.ErrStoreRead):
		msg = "No se pudieron guardar los datos."
	}
	if status == http.StatusInternalServerError {
		requestID, _ := middleware.GetRequestID(r.Context())
		log.WithError(err).WithFields(log.Fields{
			"path":       r.URL.Path,
			"request_id": requestID,
		}).Error("Request failed")
	}
	writeMessage(w, status, msg)
}

// pathID parses the {id} route variable.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "El id debe ser un número entero.")
		return 0, false
	}
	return id, true
}

// decodeBody reads the request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}
