// Package kafka mirrors enriched records to a Kafka topic. The mirror is
// feature-flagged and best-effort: MongoDB remains the system of record, and
// a failed publish never fails the location.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/weather-ingest/internal/domain"
)

// Writer publishes enriched records to the mirror topic.
// It implements pipeline.Sink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the mirror topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Persist serializes and publishes one record, keyed by city so records for
// one location stay in one partition.
func (w *Writer) Persist(ctx context.Context, collection string, rec domain.Record) error {
	msg, err := serializeToMessage(collection, rec)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

// Close flushes and closes the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a record into a Kafka message with the target
// collection and ingestion time as headers.
func serializeToMessage(collection string, rec domain.Record) (kafkago.Message, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record: %w", err)
	}
	meta := rec.Meta()
	return kafkago.Message{
		Key:   []byte(meta.City),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "collection", Value: []byte(collection)},
			{Key: "inserted_at", Value: []byte(meta.InsertedAt.Format(time.RFC3339))},
		},
	}, nil
}
