package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB wraps the MongoDB client and the application database handle.
type DB struct {
	client   *mongo.Client
	Database *mongo.Database
}

// New connects to MongoDB and verifies the connection with a ping.
func New(uri, databaseName string) (*DB, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongodb connection string is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &DB{client: client, Database: client.Database(databaseName)}, nil
}

// HealthCheck verifies the connection is still alive.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
