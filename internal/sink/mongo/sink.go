// Package mongo is the primary persistence sink: one enriched record per
// call, appended to the shape's collection. Append-only; nothing in the
// ingestion path updates or deletes.
package mongo

import (
	"context"
	"fmt"
	"log/slog"

	mdb "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/couchcryptid/weather-ingest/internal/domain"
)

// Sink appends enriched records to MongoDB collections. The driver's client
// is safe for concurrent use, so one Sink serves the whole worker pool.
type Sink struct {
	client   *mdb.Client
	database *mdb.Database
	logger   *slog.Logger
}

// NewSink connects to MongoDB and verifies the connection with a ping.
func NewSink(ctx context.Context, uri, database string, logger *slog.Logger) (*Sink, error) {
	client, err := mdb.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("mongodb connected", "database", database)
	return &Sink{
		client:   client,
		database: client.Database(database),
		logger:   logger,
	}, nil
}

// Persist appends one record to the named collection.
func (s *Sink) Persist(ctx context.Context, collection string, rec domain.Record) error {
	if _, err := s.database.Collection(collection).InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *Sink) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
