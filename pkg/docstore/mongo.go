// Package docstore owns the process-wide MongoDB client.
package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sbecerek/CatalogAPI/pkg/config"
)

// Client wraps mongo.Client bound to one database.
type Client struct {
	client   *mongo.Client
	database string
}

// Connect dials cfg.MongoURL and verifies the primary answers within 5s.
func Connect(ctx context.Context, cfg *config.Config) (*Client, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURL).
		SetAppName(cfg.ServiceName).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("docstore: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("docstore: ping: %w", err)
	}

	return &Client{client: client, database: cfg.MongoDatabase}, nil
}

// NewFromClient wraps an already connected client. Used by tests that own the connection.
func NewFromClient(client *mongo.Client, database string) *Client {
	return &Client{client: client, database: database}
}

// Collection returns a handle to name in the configured database.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.client.Database(c.database).Collection(name)
}

// Ping checks that the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("docstore: ping: %w", err)
	}
	return nil
}

// Close disconnects every pooled connection.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("docstore: disconnect: %w", err)
	}
	return nil
}
