package models

// Client represents a customer renting fleet vehicles.
type Client struct {
	ID    int        `json:"id"`
	Name  string     `json:"nombre,omitempty"`
	Email string     `json:"email,omitempty"`
	Phone string     `json:"telefono,omitempty"`
	Extra Attributes `json:"-"`
}

var clientKeys = []string{"id", "nombre", "email", "telefono"}

type clientJSON Client

func (c Client) MarshalJSON() ([]byte, error) {
	return marshalFlat(clientJSON(c), c.Extra, clientKeys)
}

func (c *Client) UnmarshalJSON(data []byte) error {
	var typed clientJSON
	extra, err := unmarshalFlat(data, &typed, clientKeys)
	if err != nil {
		return err
	}
	*c = Client(typed)
	c.Extra = extra
	return nil
}

// Apply merges p into the client; the id is never overwritten.
// On error the client is unchanged.
func (c *Client) Apply(p Patch) error {
	next := *c
	next.Extra = c.Extra.Clone()
	for key, raw := range p {
		var err error
		switch canonicalKey(key, clientKeys) {
		case "id":
			continue
		case "nombre":
			err = decodeField(key, raw, &next.Name)
		case "email":
			err = decodeField(key, raw, &next.Email)
		case "telefono":
			err = decodeField(key, raw, &next.Phone)
		default:
			next.Extra.set(key, raw)
		}
		if err != nil {
			return err
		}
	}
	*c = next
	return nil
}
