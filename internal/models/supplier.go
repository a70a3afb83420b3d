package models

import "strings"

// Supplier represents a maintenance provider.
type Supplier struct {
	ID       int        `json:"id"`
	Name     string     `json:"nombre"`
	Services []string   `json:"servicios"`
	Contact  string     `json:"contacto,omitempty"`
	Extra    Attributes `json:"-"`
}

var supplierKeys = []string{"id", "nombre", "servicios", "contacto"}

type supplierJSON Supplier

func (s Supplier) MarshalJSON() ([]byte, error) {
	return marshalFlat(supplierJSON(s), s.Extra, supplierKeys)
}

func (s *Supplier) UnmarshalJSON(data []byte) error {
	var typed supplierJSON
	extra, err := unmarshalFlat(data, &typed, supplierKeys)
	if err != nil {
		return err
	}
	*s = Supplier(typed)
	s.Extra = extra
	return nil
}

// NameContains reports whether the supplier name contains part, ignoring case.
func (s Supplier) NameContains(part string) bool {
	return strings.Contains(strings.ToLower(s.Name), strings.ToLower(part))
}
