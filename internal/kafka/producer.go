package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/yourorg/trading-journal/internal/model"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes analytics events to Kafka topics
type Producer struct {
	writers  map[string]*kafka.Writer
	brokers  []string
	clientID string
	topic    string
	logger   *zap.Logger
}

// NewProducer creates a new Kafka producer. The topic is where compliance
// events are published.
func NewProducer(brokers []string, clientID string, topic string, logger *zap.Logger) *Producer {
	return &Producer{
		writers:  make(map[string]*kafka.Writer),
		brokers:  brokers,
		clientID: clientID,
		topic:    topic,
		logger:   logger,
	}
}

// getWriter returns a Kafka writer for the specified topic
func (p *Producer) getWriter(topic string) *kafka.Writer {
	if writer, exists := p.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		Transport: &kafka.Transport{
			ClientID: p.clientID,
		},
	}

	p.writers[topic] = writer
	return writer
}

// PublishComplianceEvent publishes a compliance violation event, retrying
// transient broker failures with exponential backoff
func (p *Producer) PublishComplianceEvent(ctx context.Context, event model.ComplianceEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal compliance event",
			zap.Int("accountID", event.AccountID),
			zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(event.AccountID)),
		Value: value,
		Time:  time.Now(),
	}

	writer := p.getWriter(p.topic)
	operation := func() error {
		return writer.WriteMessages(ctx, msg)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		p.logger.Error("Failed to publish compliance event",
			zap.String("topic", p.topic),
			zap.Int("accountID", event.AccountID),
			zap.Error(err))
		return err
	}

	p.logger.Debug("Compliance event published",
		zap.String("topic", p.topic),
		zap.Int("accountID", event.AccountID),
		zap.Int("violations", len(event.Violations)))

	return nil
}

// Close closes all Kafka writers
func (p *Producer) Close() error {
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil {
			p.logger.Error("Failed to close Kafka writer",
				zap.String("topic", topic),
				zap.Error(err))
		}
	}
	return nil
}
