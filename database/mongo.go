package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/rakeshranjan410/paperplane-api/config"
)

// ErrConfig is returned when a connection is requested before the MongoDB
// connection string has been configured.
var ErrConfig = errors.New("mongodb configuration incomplete")

// Mongo is the process-wide handle to the question collection. The client is
// dialed lazily on first use and memoized for the process lifetime, so the
// handle may be constructed before configuration is fully resolved.
type Mongo struct {
	cfg config.Provider

	mu     sync.Mutex
	client *mongo.Client
}

func NewMongo(cfg config.Provider) *Mongo {
	return &Mongo{cfg: cfg}
}

// Collection returns the configured question collection, connecting first if
// needed.
func (m *Mongo) Collection(ctx context.Context) (*mongo.Collection, error) {
	cfg := m.cfg()
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("%w: MONGODB_URI is not set", ErrConfig)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return nil, fmt.Errorf("connecting to mongodb: %w", err)
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("pinging mongodb: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Str("collection", cfg.Mongo.Collection).Msg("Connected to MongoDB")
		m.client = client
	}

	return m.client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection), nil
}

// Close disconnects the memoized client, if one was ever dialed.
func (m *Mongo) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	return err
}
