package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ukydev/fleet-records/internal/config"
	"github.com/ukydev/fleet-records/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDocumentID is the _id of the single Mongo document holding the fleet records.
const mongoDocumentID = "fleet"

// ConnectMongo connects to MongoDB at uri and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// mongoDocument wraps the encoded fleet document. Keeping everything in one
// Mongo document makes every save a single atomic replace.
type mongoDocument struct {
	ID        string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps the fleet document in a MongoDB collection.
type MongoStore struct {
	Collection *mongo.Collection
	client     *mongo.Client
}

// NewMongoStore connects using cfg and returns a store on the configured collection.
func NewMongoStore(ctx context.Context, cfg config.MongoConfig) (*MongoStore, error) {
	client, err := ConnectMongo(ctx, cfg.URI)
	if err != nil {
		return nil, err
	}
	return &MongoStore{
		Collection: client.Database(cfg.Database).Collection(cfg.Collection),
		client:     client,
	}, nil
}

// Load fetches and decodes the fleet document.
func (s *MongoStore) Load(ctx context.Context) (*models.Document, error) {
	if s.Collection == nil {
		return nil, fmt.Errorf("%w: mongo collection is nil", ErrStoreRead)
	}
	var stored mongoDocument
	err := s.Collection.FindOne(ctx, bson.M{"_id": mongoDocumentID}).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	var doc models.Document
	if err := json.Unmarshal(stored.Payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrStoreRead, err)
	}
	doc.Normalize()
	return &doc, nil
}

// Save replaces the fleet document, creating it on first write.
func (s *MongoStore) Save(ctx context.Context, doc *models.Document) error {
	if s.Collection == nil {
		return fmt.Errorf("%w: mongo collection is nil", ErrStoreWrite)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrStoreWrite, err)
	}
	stored := mongoDocument{ID: mongoDocumentID, Payload: payload, UpdatedAt: time.Now().UTC()}
	_, err = s.Collection.ReplaceOne(ctx, bson.M{"_id": mongoDocumentID}, stored, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	return nil
}

// Close disconnects the client when the store owns one.
func (s *MongoStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}
