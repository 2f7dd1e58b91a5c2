// Package messaging publishes domain events to Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/finncap/origination/pkg/events"
	"github.com/finncap/origination/pkg/kafka"
)

// KafkaEventPublisher writes domain events to the event stream, keyed
// by aggregate id so per-aggregate ordering holds within a partition.
type KafkaEventPublisher struct {
	producer *kafka.Producer
}

// NewKafkaEventPublisher creates a KafkaEventPublisher.
func NewKafkaEventPublisher(producer *kafka.Producer) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer}
}

// Publish serializes and writes the events.
func (p *KafkaEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}
	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		payload, err := json.Marshal(events.NewEnvelope(evt))
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"aggregate_type": evt.AggregateType(),
			},
		})
	}
	return p.producer.Publish(ctx, messages...)
}
