package events

import (
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/dmehra2102/prod-golang-projects/patient-service/internal/config"
	"go.uber.org/zap"
)

type topicAdmin interface {
	CreateTopic(topic string, detail *sarama.TopicDetail, validateOnly bool) error
	Close() error
}

// EnsureTopic creates the event topic if it does not exist yet.
func EnsureTopic(cfg config.KafkaConfig, sc *sarama.Config, log *zap.Logger) error {
	admin, err := sarama.NewClusterAdmin(cfg.Brokers, sc)
	if err != nil {
		return fmt.Errorf("creating kafka cluster admin: %w", err)
	}
	return ensureTopic(admin, cfg, log)
}

func ensureTopic(admin topicAdmin, cfg config.KafkaConfig, log *zap.Logger) error {
	defer admin.Close()

	err := admin.CreateTopic(cfg.Topic, &sarama.TopicDetail{
		NumPartitions:     int32(cfg.Partitions),
		ReplicationFactor: int16(cfg.ReplicationFactor),
	}, false)

	var topicErr *sarama.TopicError
	switch {
	case err == nil:
		log.Info("kafka topic created",
			zap.String("topic", cfg.Topic),
			zap.Int("partitions", cfg.Partitions),
			zap.Int("replication_factor", cfg.ReplicationFactor),
		)
		return nil
	case errors.Is(err, sarama.ErrTopicAlreadyExists),
		errors.As(err, &topicErr) && topicErr.Err == sarama.ErrTopicAlreadyExists:
		log.Debug("kafka topic already exists", zap.String("topic", cfg.Topic))
		return nil
	default:
		return fmt.Errorf("creating kafka topic %s: %w", cfg.Topic, err)
	}
}
