package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tair/product-catalog/pkg/logger"
)

// Config holds MongoDB connection configuration
type Config struct {
	URI     string
	DBName  string
	Timeout time.Duration
}

// Connect establishes a new MongoDB client connection and verifies it
func Connect(cfg Config) (*mongo.Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		discCtx, discCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer discCancel()
		_ = client.Disconnect(discCtx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Logger.Info().
		Str("database", cfg.DBName).
		Msg("Connected to MongoDB")

	return client, nil
}

// Disconnect releases the MongoDB client connection
func Disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to disconnect MongoDB client")
	}
}
