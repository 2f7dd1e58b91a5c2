// Package kafka carries the event stream connection. The service
// publishes to a single topic, so the producer is bound to its topic at
// construction rather than managing a writer per topic.
package kafka

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Config holds the broker addresses for the event stream.
type Config struct {
	Brokers []string
}

// Message is one record on the event stream. The key selects the
// partition, which is what keeps per-aggregate ordering.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer writes to one topic. The underlying writer is safe for
// concurrent use, so a single Producer serves the whole process.
type Producer struct {
	writer *kafkago.Writer
	topic  string
}

// NewProducer creates a Producer bound to the given topic. Keys are
// hashed to partitions so records sharing a key land in order.
func NewProducer(cfg Config, topic string) *Producer {
	return &Producer{
		topic: topic,
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafkago.RequireAll,
		},
	}
}

// Publish appends the records to the topic, waiting for full acks.
func (p *Producer) Publish(ctx context.Context, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	records := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		record := kafkago.Message{Key: msg.Key, Value: msg.Value}
		for k, v := range msg.Headers {
			record.Headers = append(record.Headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
		records = append(records, record)
	}
	if err := p.writer.WriteMessages(ctx, records...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes and closes the writer.
func (p *Producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("closing writer for topic %s: %w", p.topic, err)
	}
	return nil
}
