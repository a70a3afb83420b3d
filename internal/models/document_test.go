package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_PersistsEmptyCollections(t *testing.T) {
	out, err := json.Marshal(NewDocument())
	require.NoError(t, err)
	assert.JSONEq(t, `{"vehiculos":[],"mantenimiento":[],"proveedores":[],"conductores":[],"clientes":[],"reservas":[]}`, string(out))
}

func TestDocument_Buckets(t *testing.T) {
	doc := NewDocument()
	doc.Vehicles = append(doc.Vehicles, Vehicle{ID: 1, Type: "van", Status: VehicleActive})
	doc.Suppliers = append(doc.Suppliers, Supplier{ID: 1, Name: "Acme", Services: []string{"aceite"}})

	buckets, err := doc.EncodeBuckets()
	require.NoError(t, err)
	assert.Len(t, buckets, len(Collections))
	assert.JSONEq(t, `[]`, string(buckets[CollectionReservations]))

	decoded, err := DecodeBuckets(buckets)
	require.NoError(t, err)
	assert.Equal(t, doc, decoded)
}

func TestDecodeBuckets_IgnoresUnknownAndMissing(t *testing.T) {
	decoded, err := DecodeBuckets(map[string][]byte{
		"telemetria":       []byte(`[{"x":1}]`),
		CollectionDrivers: []byte(`[{"id":2,"nombre":"Luis"}]`),
	})
	require.NoError(t, err)
	require.Len(t, decoded.Drivers, 1)
	assert.Equal(t, "Luis", decoded.Drivers[0].Name)
	assert.NotNil(t, decoded.Vehicles)
	assert.Empty(t, decoded.Vehicles)
}

func TestDecodeBuckets_BadPayload(t *testing.T) {
	_, err := DecodeBuckets(map[string][]byte{CollectionVehicles: []byte(`{not json`)})
	assert.Error(t, err)
}

func TestDocument_BucketUnknown(t *testing.T) {
	_, err := NewDocument().Bucket("telemetria")
	assert.Error(t, err)
}
