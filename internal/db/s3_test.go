package db

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-records/internal/models"
)

type fakeObjects struct {
	objects map[string][]byte
	getErr  error
	putErr  error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}}
}

func (f *fakeObjects) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_MissingObjectIsEmpty(t *testing.T) {
	store := NewS3StoreWithClient(newFakeObjects(), "fleet", "datos.json")
	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Vehicles)
}

func TestS3Store_SaveAndLoad(t *testing.T) {
	objects := newFakeObjects()
	store := NewS3StoreWithClient(objects, "fleet", "datos.json")
	ctx := context.Background()

	doc := models.NewDocument()
	doc.Clients = append(doc.Clients, models.Client{ID: 4, Name: "Marta"})
	require.NoError(t, store.Save(ctx, doc))
	assert.Contains(t, string(objects.objects["fleet/datos.json"]), `"clientes"`)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Clients, 1)
	assert.Equal(t, 4, loaded.Clients[0].ID)
}

func TestS3Store_Faults(t *testing.T) {
	objects := newFakeObjects()
	objects.getErr = errors.New("timeout")
	objects.putErr = errors.New("denied")
	store := NewS3StoreWithClient(objects, "fleet", "datos.json")

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrStoreRead)
	assert.ErrorIs(t, store.Save(context.Background(), models.NewDocument()), ErrStoreWrite)
	assert.NoError(t, store.Close())
}
