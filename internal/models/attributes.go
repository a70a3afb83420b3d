package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Attributes holds the freeform keys of a record that have no typed field.
// Values are kept as raw JSON so they round-trip verbatim.
type Attributes map[string]json.RawMessage

// Patch is a merge-patch body: only the keys present overwrite a record.
type Patch map[string]json.RawMessage

// Clone returns a copy of the attribute map.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// set stores a freeform value, allocating the map on first use.
func (a *Attributes) set(key string, raw json.RawMessage) {
	if *a == nil {
		*a = make(Attributes)
	}
	(*a)[key] = append(json.RawMessage(nil), raw...)
}

// marshalFlat encodes typed and lays the extra keys next to the typed ones.
// An extra key that folds to a known key is never written, even when the
// typed field is omitted, since decoding would read it back into that field.
func marshalFlat(typed any, extra Attributes, known []string) ([]byte, error) {
	data, err := json.Marshal(typed)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if isKnownKey(k, known) {
			continue
		}
		if _, taken := fields[k]; !taken {
			fields[k] = v
		}
	}
	return json.Marshal(fields)
}

// unmarshalFlat decodes data into typed and returns every key not listed in
// known. Keys match known ones ignoring case, as encoding/json does.
func unmarshalFlat(data []byte, typed any, known []string) (Attributes, error) {
	if err := json.Unmarshal(data, typed); err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k := range fields {
		if isKnownKey(k, known) {
			delete(fields, k)
		}
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return Attributes(fields), nil
}

// canonicalKey maps key to the known key it folds to, or returns it unchanged.
func canonicalKey(key string, known []string) string {
	for _, k := range known {
		if strings.EqualFold(key, k) {
			return k
		}
	}
	return key
}

func isKnownKey(key string, known []string) bool {
	for _, k := range known {
		if strings.EqualFold(key, k) {
			return true
		}
	}
	return false
}

// decodeField unmarshals one patch value into dst, naming the key on failure.
func decodeField(key string, raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}
