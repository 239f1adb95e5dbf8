package pricefeed

import (
	"encoding/json"
	"time"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/config"
	"github.com/shopspring/decimal"
)

const notificationListMax = 100

// Notification tells an open order screen that a product's price changed
// while the screen was live. Repriced reports whether a selected line
// actually moved; an overridden line keeps its price and Repriced is false.
type Notification struct {
	SessionId   string          `json:"session_id"`
	ProductId   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	NewPrice    decimal.Decimal `json:"new_price"`
	Repriced    bool            `json:"repriced"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

func notificationListKey(businessId string) string {
	return "PriceNotifications:" + businessId
}

func pushNotification(businessId string, n Notification) error {
	return config.PushRedisList(notificationListKey(businessId), n, notificationListMax)
}

// ListNotifications returns a business's most recent price notifications,
// newest first.
func ListNotifications(businessId string, limit int64) ([]Notification, error) {
	raw, err := config.GetRedisList(notificationListKey(businessId), limit)
	if err != nil {
		return nil, err
	}

	notifications := make([]Notification, 0, len(raw))
	for _, item := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}
