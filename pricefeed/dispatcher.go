package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/cart"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
	"github.com/katecvn/katecvn-kim-dang-client-sub001/models"
	"github.com/sirupsen/logrus"
)

// Dispatcher fans one catalog price update out to the catalog row and to
// every open cart session of the affected business.
type Dispatcher struct {
	registry *cart.Registry
}

func NewDispatcher(registry *cart.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Apply persists the new base price and reprices open sessions. Sessions
// holding a price override on the product keep their price; each open
// session still gets a notification so its screen can surface the change.
func (d *Dispatcher) Apply(ctx context.Context, msg config.PriceUpdateMessage) error {
	logger := config.GetLogger()

	if msg.BusinessId == "" || msg.ProductId <= 0 {
		return errors.New("business_id and product_id are required")
	}

	newPrice, err := ParseNewPrice(msg.NewPrice)
	if err != nil {
		return err
	}
	if !newPrice.IsPositive() {
		return errors.New("new_price must be positive")
	}

	// Best-effort lock against concurrent redelivery of the same update.
	// If redis is unavailable, continue; the row update is idempotent.
	redisLock := config.GetRedisLock()
	if redisLock != nil {
		lockKey := fmt.Sprintf("lock:pricefeed:%s:%d", msg.BusinessId, msg.ProductId)
		lock, lockErr := redisLock.Obtain(ctx, lockKey, 30*time.Second, nil)
		if lockErr == nil {
			defer lock.Release(context.Background())
		} else if lockErr != redislock.ErrNotObtained {
			logger.WithFields(logrus.Fields{
				"field":       "priceFeedDispatch",
				"business_id": msg.BusinessId,
				"product_id":  msg.ProductId,
			}).Warn("redis lock unavailable; proceeding without lock")
		}
	}

	if err := models.UpdateProductBasePrice(ctx, msg.BusinessId, msg.ProductId, newPrice); err != nil {
		config.LogError(logger, "pricefeed", "Apply", "update base price", msg, err)
		return err
	}

	occurredAt := msg.UpdatedAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	for _, session := range d.registry.ForBusiness(msg.BusinessId) {
		repriced := session.ApplyPriceUpdate(msg.ProductId, newPrice)
		notification := Notification{
			SessionId:   session.ID,
			ProductId:   msg.ProductId,
			ProductName: msg.ProductName,
			NewPrice:    newPrice,
			Repriced:    repriced,
			OccurredAt:  occurredAt,
		}
		if err := pushNotification(msg.BusinessId, notification); err != nil {
			config.LogError(logger, "pricefeed", "Apply", "push notification", notification, err)
		}
	}

	logger.WithFields(logrus.Fields{
		"field":          "priceFeedDispatch",
		"business_id":    msg.BusinessId,
		"product_id":     msg.ProductId,
		"new_price":      newPrice.String(),
		"correlation_id": msg.CorrelationId,
	}).Info("price update applied")
	return nil
}
