package pricefeed

import (
	"encoding/json"
	"errors"

	"github.com/katecvn/katecvn-kim-dang-client-sub001/utils"
	"github.com/shopspring/decimal"
)

type PubSubPushEnvelope struct {
	Message struct {
		Data []byte `json:"data"`
		ID   string `json:"messageId"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// ParseNewPrice accepts the price in either of the shapes the catalog
// service emits: a plain JSON number, or a quoted display string such
// as "VND 20,000".
func ParseNewPrice(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 {
		return decimal.Zero, errors.New("new_price is required")
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		return utils.ParseDecimal(num.String())
	}

	var formatted string
	if err := json.Unmarshal(raw, &formatted); err == nil {
		return utils.ParseFormattedDecimal(formatted)
	}
	return decimal.Zero, errors.New("new_price must be a number or a formatted string")
}
