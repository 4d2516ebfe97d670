package events

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
)

// NewSaramaConfig builds the client configuration shared by the producer and
// the topic admin.
func NewSaramaConfig(cfg config.KafkaConfig, publishTimeout time.Duration) (*sarama.Config, error) {
	sc := sarama.NewConfig()
	sc.ClientID = cfg.ClientID
	sc.Version = sarama.V2_8_0_0

	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Partitioner = sarama.NewHashPartitioner
	sc.Producer.Return.Successes = true
	sc.Producer.Retry.Max = 3
	if publishTimeout > 0 {
		sc.Producer.Timeout = publishTimeout
	}

	if cfg.SASLMechanism == "" {
		return sc, nil
	}

	sc.Net.SASL.Enable = true
	sc.Net.SASL.Handshake = true
	sc.Net.SASL.User = cfg.SASLUser
	sc.Net.SASL.Password = cfg.SASLPassword

	switch sarama.SASLMechanism(cfg.SASLMechanism) {
	case sarama.SASLTypePlaintext:
		sc.Net.SASL.Mechanism = sarama.SASLTypePlaintext
	case sarama.SASLTypeSCRAMSHA256:
		sc.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
		sc.Net.SASL.SCRAMClientGeneratorFunc = func() sarama.SCRAMClient {
			return &XDGSCRAMClient{HashGeneratorFcn: SHA256}
		}
	case sarama.SASLTypeSCRAMSHA512:
		sc.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA512
		sc.Net.SASL.SCRAMClientGeneratorFunc = func() sarama.SCRAMClient {
			return &XDGSCRAMClient{HashGeneratorFcn: SHA512}
		}
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism %q", cfg.SASLMechanism)
	}

	return sc, nil
}

// SaramaPublisher writes events with a synchronous producer so that a
// publish only succeeds once all in-sync replicas have the record.
type SaramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

var _ Publisher = (*SaramaPublisher)(nil)

func NewSaramaPublisher(producer sarama.SyncProducer, topic string) *SaramaPublisher {
	return &SaramaPublisher{producer: producer, topic: topic}
}

func DialSarama(cfg config.KafkaConfig, sc *sarama.Config) (*SaramaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}
	return NewSaramaPublisher(producer, cfg.Topic), nil
}

func (p *SaramaPublisher) Publish(ctx context.Context, e PatientEvent) error {
	payload, err := e.Encode()
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.Key()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(e.Type)},
		},
	}

	// SendMessage takes no context. errc is buffered so the send can finish
	// after ctx has expired.
	errc := make(chan error, 1)
	go func() {
		_, _, err := p.producer.SendMessage(msg)
		errc <- err
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("sending %s to %s: %w", e.Type, p.topic, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sending %s to %s: %w", e.Type, p.topic, ctx.Err())
	}
}

func (p *SaramaPublisher) Close() error {
	return p.producer.Close()
}
