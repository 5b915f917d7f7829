package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"
)

const (
	GatewayLogTopic      = "gateway-logs"
	GatewayConsumerGroup = "carrental-gateway"
)

// Event types mirror the gateway_logs.event_type column.
const (
	EventStatusChange = "STATUS_CHANGE"
	EventTransaction  = "TRANSACTION"
	EventError        = "ERROR"
	EventMaintenance  = "MAINTENANCE"
)

// GatewayEvent is the payload published for every gateway-visible action and
// drained into the gateway_logs table by the consumer.
type GatewayEvent struct {
	Timestamp time.Time `json:"timestamp"`
	GatewayID string    `json:"gatewayId"`
	EventType string    `json:"eventType"`
	EventData string    `json:"eventData"`
}

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewAsyncProducer(cfg Config) (sarama.AsyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForLocal
	defaultCfg.Producer.Return.Successes = false

	return sarama.NewAsyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()
	defaultCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// Consume runs the consumer-group session loop until ctx is cancelled.
func Consume(ctx context.Context, consumer sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, topic string) {
	for {
		if err := consumer.Consume(ctx, []string{topic}, handler); err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}
