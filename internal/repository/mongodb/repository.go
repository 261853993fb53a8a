package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/railtools/internal/repository/kv"
)

type kvDocument struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// KVRepository implements kv.Store on a MongoDB collection keyed by _id.
type KVRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewKVRepository creates a new MongoDB backed key-value repository.
func NewKVRepository(ctx context.Context, uri string, dbName string) (*KVRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &KVRepository{
		client:   client,
		dbName:   dbName,
		collName: "kv_store",
	}, nil
}

func (r *KVRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// Get loads the value stored under key.
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var doc kvDocument
	err := r.collection().FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find key %q: %w", key, err)
	}
	return doc.Value, nil
}

// Set replaces or inserts the document for key.
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.collection().ReplaceOne(ctx,
		bson.M{"_id": key},
		kvDocument{Key: key, Value: value},
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert key %q: %w", key, err)
	}
	return nil
}

// Delete removes the document for key.
func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.collection().DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *KVRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
