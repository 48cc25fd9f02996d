package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"microMart/business/orders"
	"microMart/domain"
	"microMart/internal/paygate"
)

// OrdersService contract interface
type OrdersService interface {
	Place(input orders.PlaceInput) (domain.Order, error)
	Get(orderID string) (domain.Order, error)
	Status(orderID string) domain.Order
}

type OrdersHandler struct {
	ordersService OrdersService
}

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
	}
}

// OrderPage feeds the receipt template.
type OrderPage struct {
	Order       domain.Order
	ExplorerURL string
}

// GetOrder handles GET /order/:orderId. Unknown ids are a 404 here; the JSON
// status route is the one that degrades gracefully.
func (h *OrdersHandler) GetOrder(c echo.Context) error {
	orderID := c.Param("orderId")

	order, err := h.ordersService.Get(orderID)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, order)
	}

	return c.Render(http.StatusOK, "order.html", OrderPage{
		Order:       order,
		ExplorerURL: paygate.ExplorerTxURL(order.Network, order.TxHash),
	})
}

// OrderStatus handles GET /api/order/:orderId/status. Ids the store has never
// seen come back as a synthesized pending record rather than an error.
func (h *OrdersHandler) OrderStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ordersService.Status(c.Param("orderId")))
}
