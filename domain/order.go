package domain

import "time"

type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderSuccess OrderStatus = "success"
	OrderFailed  OrderStatus = "failed"
)

// Order is recorded once, after settlement succeeds, and never mutated.
// Orders live for the lifetime of the process only.
type Order struct {
	OrderID   string      `json:"orderId"`
	Status    OrderStatus `json:"status"`
	Items     []LineItem  `json:"items"`
	TotalUSD  float64     `json:"totalUSD"`
	Network   string      `json:"network"`
	Token     string      `json:"token,omitempty"`
	TxHash    string      `json:"txHash,omitempty"`
	Payer     string      `json:"payer,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
