package pricefeed

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"cloud.google.com/go/pubsub"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
)

// StartPullWorker consumes the price feed over a pull subscription, for
// deployments where Pub/Sub cannot push into the service. Blocks until the
// context is cancelled.
func StartPullWorker(ctx context.Context, d *Dispatcher) error {
	logger := config.GetLogger()

	topicName := strings.TrimSpace(os.Getenv("PRICE_FEED_TOPIC"))
	if topicName == "" {
		topicName = "price-feed"
	}
	subName := strings.TrimSpace(os.Getenv("PRICE_FEED_SUBSCRIPTION"))
	if subName == "" {
		subName = topicName + "-cart"
	}

	client, err := config.GetClient(ctx)
	if err != nil {
		return err
	}

	topic, err := config.CreateTopicIfNotExists(client, topicName)
	if err != nil {
		return err
	}
	sub, err := config.CreateSubscriptionIfNotExists(client, subName, topic)
	if err != nil {
		return err
	}

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		var msg config.PriceUpdateMessage
		if err := json.Unmarshal(m.Data, &msg); err != nil {
			// Not a price update; drop it rather than poison the queue.
			m.Ack()
			return
		}
		if msg.BusinessId == "" || msg.ProductId <= 0 {
			m.Ack()
			return
		}
		if msg.CorrelationId == "" {
			msg.CorrelationId = m.ID
		}

		if err := d.Apply(ctx, msg); err != nil {
			if err == utils.ErrorRecordNotFound {
				m.Ack()
				return
			}
			config.LogError(logger, "pricefeed", "StartPullWorker", "apply price update", msg, err)
			m.Nack()
			return
		}
		m.Ack()
	})
}
