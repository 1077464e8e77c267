// Package kafka carries the two event streams: executed searches for
// analytics and accepted registrations for the enrichment worker.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/config"
	"github.com/vidalocal/discovery/internal/models"
)

type Producer struct {
	searchWriter       *kafka.Writer
	registrationWriter *kafka.Writer
	logger             *zap.Logger
}

func NewProducer(cfg config.KafkaConfig, logger *zap.Logger) *Producer {
	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchSize:    cfg.BatchSize,
			BatchTimeout: cfg.BatchTimeout,
			MaxAttempts:  cfg.MaxRetries,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		}
	}

	logger.Info("kafka producer created",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("search_topic", cfg.TopicSearchLogs),
		zap.String("registration_topic", cfg.TopicRegistrations),
	)

	return &Producer{
		searchWriter:       newWriter(cfg.TopicSearchLogs),
		registrationWriter: newWriter(cfg.TopicRegistrations),
		logger:             logger,
	}
}

// PublishSearchLog records one executed search. Keyed by query so that
// repeats of the same term land on the same partition.
func (p *Producer) PublishSearchLog(ctx context.Context, event *models.SearchLogEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling search log event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Query),
		Value: data,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
			{Key: "city_id", Value: []byte(strconv.Itoa(event.CityID))},
		},
	}

	if err := p.searchWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publishing search log event: %w", err)
	}

	return nil
}

// PublishRegistration hands an accepted registration to the enrichment
// worker. Keyed by registration id so re-publishes stay ordered.
func (p *Producer) PublishRegistration(ctx context.Context, event *models.RegistrationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling registration event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.RegistrationID),
		Value: data,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "city_id", Value: []byte(strconv.Itoa(event.CityID))},
		},
	}

	if err := p.registrationWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publishing registration event: %w", err)
	}

	return nil
}

func (p *Producer) Close() error {
	var errs []error
	if err := p.searchWriter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing search writer: %w", err))
	}
	if err := p.registrationWriter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing registration writer: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("producer close errors: %v", errs)
	}
	return nil
}
