package events

import (
	"context"
	"fmt"
	"time"

	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// WriterPublisher publishes through a segmentio/kafka-go Writer.
type WriterPublisher struct {
	w     messageWriter
	topic string
}

var _ Publisher = (*WriterPublisher)(nil)

func NewWriterPublisher(cfg config.KafkaConfig, writeTimeout time.Duration) *WriterPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: writeTimeout,
		Transport:    &kafka.Transport{ClientID: cfg.ClientID},
	}
	return &WriterPublisher{w: w, topic: cfg.Topic}
}

func (p *WriterPublisher) Publish(ctx context.Context, e PatientEvent) error {
	payload, err := e.Encode()
	if err != nil {
		return err
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Key()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("writing %s to %s: %w", e.Type, p.topic, err)
	}
	return nil
}

func (p *WriterPublisher) Close() error {
	return p.w.Close()
}
