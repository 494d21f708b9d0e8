package events

import (
	"context"
	"encoding/json"
	"log/slog"
)

// FeedInvalidator is notified whenever a change event arrives.
type FeedInvalidator interface {
	Invalidate(ctx context.Context)
}

// Consumer drains the change queue and kicks the live feeds. Events from
// this instance's own writes arrive here too; invalidation is idempotent
// so the duplicate kick is harmless.
type Consumer struct {
	mq     *RabbitMQ
	feeds  FeedInvalidator
	logger *slog.Logger
}

func NewConsumer(mq *RabbitMQ, feeds FeedInvalidator, logger *slog.Logger) *Consumer {
	return &Consumer{mq: mq, feeds: feeds, logger: logger}
}

// Run blocks until the context is cancelled or the delivery channel
// closes. Malformed events are logged and dropped.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.mq.channel.Consume(
		c.mq.queueName,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	c.logger.Info("consuming change events", "queue", c.mq.queueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				c.logger.Warn("delivery channel closed")
				return nil
			}

			var event ChangeEvent
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				c.logger.Error("malformed change event", "error", err)
				continue
			}

			c.logger.Debug("change event received",
				"article_id", event.ArticleID,
				"action", event.Action,
			)
			c.feeds.Invalidate(ctx)
		}
	}
}
