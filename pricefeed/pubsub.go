package pricefeed

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
)

// PushHandler receives Pub/Sub push deliveries for the price feed.
// Malformed payloads are acked with 204 so they are not redelivered
// forever; transient failures return 500 so Pub/Sub retries.
func PushHandler(d *Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !envBoolDefault("ENABLE_PRICE_FEED_PUSH_ENDPOINT", true) {
			c.Status(204)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(204)
			return
		}

		var envelope PubSubPushEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			c.Status(204)
			return
		}

		var msg config.PriceUpdateMessage
		if err := json.Unmarshal(envelope.Message.Data, &msg); err != nil {
			c.Status(204)
			return
		}
		if msg.BusinessId == "" || msg.ProductId <= 0 {
			c.Status(204)
			return
		}
		if msg.CorrelationId == "" {
			msg.CorrelationId = envelope.Message.ID
		}

		if err := d.Apply(c.Request.Context(), msg); err != nil {
			if err == utils.ErrorRecordNotFound {
				// Unknown product; redelivery would not help.
				c.Status(204)
				return
			}
			c.Status(500)
			return
		}
		c.Status(204)
	}
}

func envBoolDefault(key string, def bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "true", "1", "yes", "y", "on":
		return true
	case "false", "0", "no", "n", "off":
		return false
	default:
		return def
	}
}
