package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	interfaces "github.com/yvan-sraka/tx-csv-001/internal/interfaces"
)

var _ interfaces.EventPublisher = (*Publisher)(nil)

// Publisher delivers ledger events to Kafka as JSON messages.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher connects a publisher to the given brokers. The topic is chosen
// per message at publish time.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish marshals event to JSON and writes it to topic.
func (p *Publisher) Publish(topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: marshaling event: %w", err)
	}

	err = p.writer.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("kafka: publishing to %q: %w", topic, err)
	}
	return nil
}

// Close flushes pending messages and releases the connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
