package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicle_JSONKeepsFreeformAttributes(t *testing.T) {
	raw := `{"id":3,"TipoVehiculo":"van","estado":"activo","color":"rojo","capacidad":{"kg":900}}`

	var v Vehicle
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	assert.Equal(t, 3, v.ID)
	assert.Equal(t, "van", v.Type)
	assert.Equal(t, VehicleActive, v.Status)
	require.Len(t, v.Extra, 2)
	assert.JSONEq(t, `"rojo"`, string(v.Extra["color"]))

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestVehicle_JSONTypedKeyWinsOverExtra(t *testing.T) {
	v := Vehicle{ID: 1, Type: "van", Status: VehicleActive, Extra: Attributes{"id": json.RawMessage(`99`)}}
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"TipoVehiculo":"van","estado":"activo"}`, string(out))
}

func TestVehicle_JSONCaseVariantKeysNeverBecomeExtra(t *testing.T) {
	raw := `{"id":2,"TipoVehiculo":"van","estado":"activo","Mantenimientos":[7,8],"HISTORIAL":[{"cambio":"x"}],"color":"rojo"}`

	var v Vehicle
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	assert.Equal(t, Attributes{"color": json.RawMessage(`"rojo"`)}, v.Extra)

	v.MaintenanceIDs = nil
	v.History = nil
	v.Extra["Mantenimientos"] = json.RawMessage(`[9]`)
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"TipoVehiculo":"van","estado":"activo","color":"rojo"}`, string(out))

	var back Vehicle
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Empty(t, back.MaintenanceIDs)
	assert.Empty(t, back.History)
}

func TestVehicle_ApplyFoldsKeyCase(t *testing.T) {
	v := Vehicle{ID: 4, Type: "van", Status: VehicleActive}
	err := v.Apply(Patch{
		"Historial":      json.RawMessage(`[{"cambio":"x"}]`),
		"MANTENIMIENTOS": json.RawMessage(`[99]`),
		"ID":             json.RawMessage(`12`),
		"Placa":          json.RawMessage(`"XYZ-987"`),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, v.ID)
	assert.Equal(t, "XYZ-987", v.Plate)
	assert.Empty(t, v.MaintenanceIDs)
	assert.Empty(t, v.History)
	assert.Empty(t, v.Extra)
}

func TestVehicle_Apply(t *testing.T) {
	base := func() Vehicle {
		return Vehicle{
			ID:             7,
			Type:           "van",
			Plate:          "ABC-123",
			Status:         VehicleInMaintenance,
			MaintenanceIDs: []int{2},
		}
	}

	t.Run("replaces only supplied fields", func(t *testing.T) {
		v := base()
		err := v.Apply(Patch{"placa": json.RawMessage(`"XYZ-987"`), "anio": json.RawMessage(`2021`)})
		require.NoError(t, err)
		assert.Equal(t, "XYZ-987", v.Plate)
		assert.Equal(t, 2021, v.Year)
		assert.Equal(t, "van", v.Type)
		assert.Equal(t, []int{2}, v.MaintenanceIDs)
	})

	t.Run("unknown keys become attributes", func(t *testing.T) {
		v := base()
		require.NoError(t, v.Apply(Patch{"color": json.RawMessage(`"azul"`)}))
		assert.JSONEq(t, `"azul"`, string(v.Extra["color"]))
	})

	t.Run("identity status and links are not patchable", func(t *testing.T) {
		v := base()
		err := v.Apply(Patch{
			"id":             json.RawMessage(`40`),
			"estado":         json.RawMessage(`"activo"`),
			"mantenimientos": json.RawMessage(`[]`),
			"historial":      json.RawMessage(`[]`),
		})
		require.NoError(t, err)
		assert.Equal(t, base(), v)
	})

	t.Run("bad value leaves vehicle untouched", func(t *testing.T) {
		v := base()
		v.Extra = Attributes{"color": json.RawMessage(`"gris"`)}
		err := v.Apply(Patch{"color": json.RawMessage(`"verde"`), "anio": json.RawMessage(`"dos mil"`)})
		assert.Error(t, err)
		assert.Equal(t, 0, v.Year)
		assert.JSONEq(t, `"gris"`, string(v.Extra["color"]))
	})
}

func TestVehicle_RecordChange(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var v Vehicle
	v.RecordChange("Estado cambiado a inactivo", at)
	v.RecordChange("Estado cambiado a activo", at.Add(time.Hour))

	require.Len(t, v.History, 2)
	assert.Equal(t, "Estado cambiado a inactivo", v.History[0].Change)
	assert.Equal(t, at.Add(time.Hour), v.History[1].At)
}

func TestClient_Apply(t *testing.T) {
	c := Client{ID: 4, Name: "Ana", Email: "ana@example.com"}
	err := c.Apply(Patch{
		"id":       json.RawMessage(`10`),
		"telefono": json.RawMessage(`"555-0101"`),
		"empresa":  json.RawMessage(`"Transportes Sur"`),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, c.ID)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, "555-0101", c.Phone)
	assert.JSONEq(t, `"Transportes Sur"`, string(c.Extra["empresa"]))
}

func TestClient_ApplyFoldsKeyCase(t *testing.T) {
	c := Client{ID: 3, Name: "Ana"}
	require.NoError(t, c.Apply(Patch{"Id": json.RawMessage(`8`), "NOMBRE": json.RawMessage(`"Eva"`)}))
	assert.Equal(t, 3, c.ID)
	assert.Equal(t, "Eva", c.Name)
	assert.Empty(t, c.Extra)
}

func TestSupplier_NameContains(t *testing.T) {
	s := Supplier{Name: "Talleres ACME"}
	assert.True(t, s.NameContains("acme"))
	assert.True(t, s.NameContains("TALLER"))
	assert.False(t, s.NameContains("bosch"))
}

func TestMaintenanceOrder_FromSupplier(t *testing.T) {
	m := MaintenanceOrder{Supplier: "Acme"}
	assert.True(t, m.FromSupplier("ACME"))
	assert.False(t, m.FromSupplier("Acm"))
}
