package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"live-reservation/internal/config"
	"live-reservation/internal/logger"
	"live-reservation/internal/models"
)

// Producer streams reservation lifecycle events. In mock mode messages
// are logged instead of written, so the service runs without a broker.
type Producer struct {
	Writer   *kafka.Writer
	Topics   config.TopicConfig
	MockMode bool
	Logger   *logger.Logger
}

func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	var writer *kafka.Writer
	if !cfg.MockMode {
		writer = &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Balancer: &kafka.LeastBytes{},
		}
	}
	return &Producer{
		Writer:   writer,
		Topics:   cfg.Topics,
		MockMode: cfg.MockMode,
		Logger:   log,
	}
}

func (p *Producer) Publish(topic string, key string, value []byte) error {
	if p.MockMode {
		p.Logger.Info("KAFKA", fmt.Sprintf("[mock] %s key=%s %s", topic, key, string(value)))
		return nil
	}
	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: value,
		},
	)
}

// PublishReservationCreated streams a new booking to Kafka
func (p *Producer) PublishReservationCreated(res models.Reservation) error {
	return p.publishReservation(p.Topics.ReservationCreated, res)
}

// PublishReservationMerged streams a merged booking to Kafka
func (p *Producer) PublishReservationMerged(res models.Reservation) error {
	return p.publishReservation(p.Topics.ReservationMerged, res)
}

// PublishReservationCancelled streams a deleted booking to Kafka
func (p *Producer) PublishReservationCancelled(res models.Reservation) error {
	return p.publishReservation(p.Topics.ReservationCancelled, res)
}

func (p *Producer) publishReservation(topic string, res models.Reservation) error {
	msgBytes, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return p.Publish(topic, fmt.Sprintf("%d", res.ID), msgBytes)
}

func (p *Producer) Close() error {
	if p.Writer != nil {
		return p.Writer.Close()
	}
	return nil
}

// NoopPublisher satisfies the publisher contract when Kafka is
// disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishReservationCreated(models.Reservation) error   { return nil }
func (NoopPublisher) PublishReservationMerged(models.Reservation) error    { return nil }
func (NoopPublisher) PublishReservationCancelled(models.Reservation) error { return nil }
