package models

// Driver represents a fleet driver.
type Driver struct {
	ID      int        `json:"id"`
	Name    string     `json:"nombre,omitempty"`
	License string     `json:"licencia,omitempty"`
	Phone   string     `json:"telefono,omitempty"`
	Extra   Attributes `json:"-"`
}

var driverKeys = []string{"id", "nombre", "licencia", "telefono"}

type driverJSON Driver

func (d Driver) MarshalJSON() ([]byte, error) {
	return marshalFlat(driverJSON(d), d.Extra, driverKeys)
}

func (d *Driver) UnmarshalJSON(data []byte) error {
	var typed driverJSON
	extra, err := unmarshalFlat(data, &typed, driverKeys)
	if err != nil {
		return err
	}
	*d = Driver(typed)
	d.Extra = extra
	return nil
}
