package kafkabus

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"hotel_search/internal/adapters/observability"
	"hotel_search/internal/app"
)

type Consumer struct {
	r       *kafka.Reader
	persist *app.PersistService
}

func NewConsumer(brokers []string, topic, group string, persist *app.PersistService) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  group,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		persist: persist,
	}
}

// Run fetches messages until the context is canceled or the reader is
// closed. A message is committed only after it has been persisted; failed
// messages stay unacknowledged and re-present under the group's at-least-
// once delivery. Persistence is idempotent, so redelivery is harmless.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := c.handle(ctx, msg); err != nil {
			observability.ObserveBus("consume", "error")
			log.Warn().Err(err).
				Str("key", string(msg.Key)).
				Int64("offset", msg.Offset).
				Msg("message left unacknowledged")
			continue
		}
		if err := c.r.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Int64("offset", msg.Offset).Msg("commit failed")
			continue
		}
		observability.ObserveBus("consume", "ok")
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	rec, err := decodeSearch(msg.Value)
	if err != nil {
		return err
	}
	_, err = c.persist.SaveSearch(ctx, rec)
	return err
}

func (c *Consumer) Close() error { return c.r.Close() }
