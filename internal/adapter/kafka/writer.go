package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/weather-odds/internal/config"
	"github.com/couchcryptid/weather-odds/internal/outlook"
)

// Writer publishes completed assessments to a Kafka topic.
// It implements outlook.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates an asynchronous Kafka producer for the configured topic.
// Delivery failures are logged from the completion callback and never reach
// the request that produced the assessment.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(msgs []kafkago.Message, err error) {
			if err != nil {
				logger.Warn("assessment delivery failed", "messages", len(msgs), "error", err)
			}
		},
	}
	return &Writer{writer: w, logger: logger}
}

// Publish enqueues one assessment. With an async writer this returns once the
// message is buffered.
func (w *Writer) Publish(ctx context.Context, a outlook.Assessment) error {
	msg, err := serializeToMessage(a)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

// Close flushes buffered messages and releases the connection.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// messageKey groups assessments for the same place and calendar day onto one
// partition.
func messageKey(a outlook.Assessment) string {
	return fmt.Sprintf("%.4f,%.4f|%02d-%02d", a.Location.Latitude, a.Location.Longitude, a.Month, a.Day)
}

// serializeToMessage marshals an Assessment into a Kafka message.
func serializeToMessage(a outlook.Assessment) (kafkago.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(messageKey(a)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "dominant", Value: []byte(a.Report.Dominant)},
			{Key: "assessed_at", Value: []byte(a.AssessedAt.Format(time.RFC3339))},
		},
	}, nil
}
