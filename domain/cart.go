package domain

import "encoding/json"

// Quantity is a non-negative item count. Decoding clamps negative or
// non-numeric JSON values to zero instead of rejecting the request.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil || f < 0 {
		*q = 0
		return nil
	}
	*q = Quantity(int(f))
	return nil
}

type (
	CartItem struct {
		ID  string   `json:"id"`
		Qty Quantity `json:"qty"`
	}

	LineItem struct {
		ID           string  `json:"id"`
		Name         string  `json:"name"`
		UnitPriceUSD float64 `json:"unitPriceUSD"`
		Qty          int     `json:"qty"`
		LineTotalUSD float64 `json:"lineTotalUSD"`
	}

	Cart struct {
		Subtotal  float64    `json:"subtotal"`
		LineItems []LineItem `json:"lineItems"`
	}
)
