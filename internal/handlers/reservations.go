package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-records/internal/models"
)

type reservationResponse struct {
	Message     string             `json:"message"`
	Reservation models.Reservation `json:"reserva"`
}

// ListReservations handles GET /ListarReservas
func (h *FleetHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.ListReservations(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

// GetReservation handles GET /BuscarReserva/{id}
func (h *FleetHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	reservation, err := h.service.GetReservation(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

// CreateReservation handles POST /SubirReserva
func (h *FleetHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var reservation models.Reservation
	if !decodeBody(w, r, &reservation) {
		return
	}
	created, err := h.service.CreateReservation(r.Context(), reservation)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservationResponse{Message: "Reserva registrada", Reservation: created})
}

// CancelReservation handles DELETE /eliminarReserva/{id}
func (h *FleetHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, err := h.service.CancelReservation(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Reserva marcada como inactiva")
}
