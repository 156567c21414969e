package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eco-academy/ecoacademy/internal/waste"

	"github.com/segmentio/kafka-go"
)

// Config captures the runtime tunables for consuming the waste-record topic.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// message is the wire shape published by district collection partners. Year
// and month are numeric; the measures arrive as raw text, same as CSV import.
type message struct {
	District   string `json:"district"`
	School     string `json:"school"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Enrollment string `json:"enrollment"`
	RecycleLbs string `json:"recycle_lbs"`
	CompostLbs string `json:"compost_lbs"`
	ReportedBy string `json:"reported_by,omitempty"`
}

// Consumer reads waste-record events from Kafka and writes them through the
// store. Malformed messages are logged and skipped; a bad producer must not
// stall the partition, mirroring the engine's degrade-to-zero posture.
type Consumer struct {
	reader *kafka.Reader
	store  waste.Store
	logger *slog.Logger
}

func NewConsumer(cfg Config, store waste.Store, logger *slog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		MinBytes:       1,
		MaxBytes:       1 << 20,
		CommitInterval: time.Second,
	})
	return &Consumer{reader: reader, store: store, logger: logger}
}

// Run blocks until ctx is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		c.processMessage(ctx, m)
	}
}

// processMessage validates one Kafka message and upserts it as a record.
// Delivery is at-least-once, so the record ID must be a function of the
// message: a redelivery then lands on the same row instead of inserting a
// duplicate that would inflate every trend, KPI and leaderboard sum.
func (c *Consumer) processMessage(ctx context.Context, m kafka.Message) {
	var msg message
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		c.logger.Warn("record_message_malformed",
			slog.Int64("offset", m.Offset),
			slog.String("err", err.Error()))
		return
	}
	if msg.School == "" || msg.Month < 1 || msg.Month > 12 {
		c.logger.Warn("record_message_invalid",
			slog.Int64("offset", m.Offset),
			slog.String("school", msg.School),
			slog.Int("month", msg.Month))
		return
	}

	rec := waste.Record{
		ID:          recordID(m),
		District:    msg.District,
		School:      msg.School,
		Year:        msg.Year,
		Month:       msg.Month,
		Enrollment:  msg.Enrollment,
		RecycleLbs:  msg.RecycleLbs,
		CompostLbs:  msg.CompostLbs,
		SubmittedBy: msg.ReportedBy,
	}
	if err := c.store.PutRecord(ctx, rec); err != nil {
		c.logger.Error("record_store_failed",
			slog.Int64("offset", m.Offset),
			slog.String("err", err.Error()))
		return
	}
	c.logger.Info("record_ingested",
		slog.String("district", rec.District),
		slog.String("school", rec.School),
		slog.Int("year", rec.Year),
		slog.Int("month", rec.Month))
}

// recordID pins row identity to the message. Producers that set a key own
// the identity (and can republish corrections); otherwise the partition
// coordinates stand in, which are stable across redeliveries.
func recordID(m kafka.Message) string {
	if len(m.Key) > 0 {
		return string(m.Key)
	}
	return fmt.Sprintf("%s-%d-%d", m.Topic, m.Partition, m.Offset)
}
