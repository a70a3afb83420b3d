package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-records/internal/models"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fleet.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Vehicles)

	doc := models.NewDocument()
	doc.Suppliers = append(doc.Suppliers, models.Supplier{ID: 1, Name: "Taller Sur"})
	doc.Reservations = append(doc.Reservations, models.Reservation{ID: 1, VehicleID: 2, ClientID: 3, Status: models.RecordActive})
	require.NoError(t, store.Save(ctx, doc))

	// second save updates rows in place
	doc.Suppliers[0].Name = "Taller Norte"
	require.NoError(t, store.Save(ctx, doc))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Suppliers, 1)
	assert.Equal(t, "Taller Norte", loaded.Suppliers[0].Name)
	require.Len(t, loaded.Reservations, 1)
	assert.Equal(t, models.RecordActive, loaded.Reservations[0].Status)

	var rows int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM state`).Scan(&rows))
	assert.Equal(t, len(models.Collections), rows)
	assert.Equal(t, path, store.path)
}
