package handler

import (
	"context"
	"encoding/json"

	"github.com/AakashSorathiya/carrental-service/pkg/kafka"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type storeEvent func(ctx context.Context, event kafka.GatewayEvent) error

// Consumer drains gateway events from Kafka into the gateway_logs table.
type Consumer struct {
	store storeEvent
	log   *zap.Logger
	ready chan bool
}

func NewConsumer(store storeEvent, log *zap.Logger) *Consumer {
	return &Consumer{
		store: store,
		log:   log.Named("consumer"),
		ready: make(chan bool),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	// Mark the consumer as ready
	close(consumer.ready)
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var event kafka.GatewayEvent
			if err := json.Unmarshal(message.Value, &event); err != nil {
				consumer.log.Error("unmarshal gateway event", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if err := consumer.store(context.Background(), event); err != nil {
				consumer.log.Error("store gateway event", zap.Error(err))
				continue
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
