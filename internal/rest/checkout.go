package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"microMart/business/orders"
	"microMart/domain"
	"microMart/internal/paygate"
	"microMart/pkg/logger"
	"microMart/pkg/metrics"
)

type (
	// PaymentGate contract interface
	PaymentGate interface {
		Charge(c echo.Context, amountUSD float64, opts ...paygate.ChargeOption) (*paygate.Receipt, error)
		SettleWait() time.Duration
	}

	// CartService contract interface
	CartService interface {
		Calculate(items []domain.CartItem) domain.Cart
	}

	CheckoutHandler struct {
		validate      *validator.Validate
		cartService   CartService
		ordersService OrdersService
		gate          PaymentGate
		recipient     string
		network       string
	}

	CheckoutRequest struct {
		Items   []domain.CartItem `json:"items"`
		Network string            `json:"network" validate:"omitempty,oneof=base base-sepolia bsc bsc-testnet"`
		Token   string            `json:"token"`
	}

	PaymentResult struct {
		Status    string    `json:"status"`
		Network   string    `json:"network"`
		Recipient string    `json:"recipient"`
		Timestamp time.Time `json:"timestamp"`
	}

	CheckoutResponse struct {
		OK        bool              `json:"ok"`
		Subtotal  float64           `json:"subtotal"`
		LineItems []domain.LineItem `json:"lineItems"`
		Payment   PaymentResult     `json:"payment"`
	}
)

func NewCheckoutHandler(cartService CartService, ordersService OrdersService, gate PaymentGate, recipient, network string) *CheckoutHandler {
	return &CheckoutHandler{
		validate:      validator.New(),
		cartService:   cartService,
		ordersService: ordersService,
		gate:          gate,
		recipient:     recipient,
		network:       network,
	}
}

// Checkout handles POST /checkout: price the cart, gate on payment, report
// the settlement state. A zero subtotal bypasses the gate entirely.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var request CheckoutRequest

	if err := c.Bind(&request); err != nil {
		logger.Warn("invalid checkout body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}
	if request.Items == nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "items must be an array"})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	cart := h.cartService.Calculate(request.Items)

	if cart.Subtotal == 0 {
		return c.JSON(http.StatusOK, CheckoutResponse{
			OK:        true,
			Subtotal:  cart.Subtotal,
			LineItems: cart.LineItems,
			Payment: PaymentResult{
				Status:    "free",
				Network:   h.networkOrDefault(request.Network),
				Recipient: h.recipient,
				Timestamp: time.Now(),
			},
		})
	}

	receipt, err := h.gate.Charge(c, cart.Subtotal,
		paygate.WithNetwork(request.Network),
		paygate.WithToken(request.Token),
		paygate.WithDescription("microMart cart checkout"),
		paygate.WithMimeType(echo.MIMEApplicationJSON),
	)
	if err != nil {
		return chargeError(c, err)
	}

	status := "pending"
	settled, err := receipt.Settlement.Wait(h.gate.SettleWait())
	switch {
	case err == nil:
		status = "settled"
		paygate.ApplySettlementHeaders(c, settled)
	case errors.Is(err, paygate.ErrSettlementPending):
		// Proof verified; settlement keeps running in the background.
	default:
		return paymentFailure(c, err.Error())
	}

	return c.JSON(http.StatusOK, CheckoutResponse{
		OK:        true,
		Subtotal:  cart.Subtotal,
		LineItems: cart.LineItems,
		Payment: PaymentResult{
			Status:    status,
			Network:   receipt.Network,
			Recipient: h.recipient,
			Timestamp: time.Now(),
		},
	})
}

// CheckoutPage handles GET /checkout-page: same pricing and gating as
// Checkout, but on success it persists an Order and redirects to the receipt
// page (or returns the order as JSON when the client asks for it).
func (h *CheckoutHandler) CheckoutPage(c echo.Context) error {
	raw := c.QueryParam("items")
	var items []domain.CartItem
	if raw == "" || json.Unmarshal([]byte(raw), &items) != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "items must be a JSON array"})
	}

	network := c.QueryParam("network")
	token := c.QueryParam("token")
	cart := h.cartService.Calculate(items)

	if cart.Subtotal == 0 {
		return h.placeAndRespond(c, cart, h.networkOrDefault(network), token, "", "")
	}

	receipt, err := h.gate.Charge(c, cart.Subtotal,
		paygate.WithNetwork(network),
		paygate.WithToken(token),
		paygate.WithDescription("microMart cart checkout"),
	)
	if err != nil {
		return chargeError(c, err)
	}

	settled, err := receipt.Settlement.Wait(h.gate.SettleWait())
	if err != nil {
		reason := "settlement did not complete in time, your funds were not moved"
		var settleErr *paygate.SettleFailedError
		if errors.As(err, &settleErr) {
			reason = settleErr.Error()
		} else if !errors.Is(err, paygate.ErrSettlementPending) {
			reason = "settlement error, please retry"
		}
		return paymentFailure(c, reason)
	}

	paygate.ApplySettlementHeaders(c, settled)
	return h.placeAndRespond(c, cart, receipt.Network, token, settled.Transaction, receipt.Payer)
}

func (h *CheckoutHandler) placeAndRespond(c echo.Context, cart domain.Cart, network, token, txHash, payer string) error {
	order, err := h.ordersService.Place(orders.PlaceInput{
		Items:    cart.LineItems,
		TotalUSD: cart.Subtotal,
		Network:  network,
		Token:    token,
		TxHash:   txHash,
		Payer:    payer,
	})
	if err != nil {
		logger.Error("failed to record order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to record order")
	}
	metrics.OrdersCreated.Inc()

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, order)
	}

	return c.Redirect(http.StatusFound, "/order/"+order.OrderID)
}

func (h *CheckoutHandler) networkOrDefault(network string) string {
	if network != "" {
		return network
	}
	return h.network
}
