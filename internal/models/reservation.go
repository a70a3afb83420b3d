package models

// Reservation represents a booking of a vehicle by a client.
type Reservation struct {
	ID        int          `json:"id"`
	VehicleID int          `json:"idVehiculo"`
	ClientID  int          `json:"idCliente,omitempty"`
	Start     string       `json:"fechaInicio,omitempty"`
	End       string       `json:"fechaFin,omitempty"`
	Status    RecordStatus `json:"estado"`
	Extra     Attributes   `json:"-"`
}

var reservationKeys = []string{"id", "idVehiculo", "idCliente", "fechaInicio", "fechaFin", "estado"}

type reservationJSON Reservation

func (r Reservation) MarshalJSON() ([]byte, error) {
	return marshalFlat(reservationJSON(r), r.Extra, reservationKeys)
}

func (r *Reservation) UnmarshalJSON(data []byte) error {
	var typed reservationJSON
	extra, err := unmarshalFlat(data, &typed, reservationKeys)
	if err != nil {
		return err
	}
	*r = Reservation(typed)
	r.Extra = extra
	return nil
}
