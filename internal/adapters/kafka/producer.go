package kafkabus

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"hotel_search/internal/adapters/observability"
	"hotel_search/internal/domain"
)

type Producer struct {
	w *kafka.Writer
}

// NewProducer builds a synchronous writer for the topic. The Hash balancer
// routes by message key, so all records for one searchId land on the same
// partition and keep their publish order.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish blocks until every in-sync replica has the message or the context
// is done. Either failure surfaces as ErrPublish.
func (p *Producer) Publish(ctx context.Context, s domain.Search) error {
	b, err := encodeSearch(s)
	if err != nil {
		observability.ObserveBus("publish", "error")
		return fmt.Errorf("%w: %v", domain.ErrPublish, err)
	}
	if err := p.w.WriteMessages(ctx, kafka.Message{Key: []byte(s.SearchID), Value: b}); err != nil {
		observability.ObserveBus("publish", "error")
		return fmt.Errorf("%w: %v", domain.ErrPublish, err)
	}
	observability.ObserveBus("publish", "ok")
	return nil
}

func (p *Producer) Close() error { return p.w.Close() }
