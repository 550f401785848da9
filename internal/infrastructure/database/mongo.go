// Package database connects the blog API to MongoDB.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// MongoDBClient wraps the driver client so main can defer Disconnect.
type MongoDBClient struct {
	Client *mongo.Client
}

// NewMongoDBClient connects to uri and pings the primary.
func NewMongoDBClient(ctx context.Context, uri string) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoDBClient{Client: client}, nil
}

// Database returns the named database handle.
func (c *MongoDBClient) Database(name string) *mongo.Database {
	return c.Client.Database(name)
}

// Disconnect closes the connection pool.
func (c *MongoDBClient) Disconnect(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
