package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microMart/business/orders"
	"microMart/domain"
	"microMart/internal/repository/memory"
)

func newOrdersStack(t *testing.T) (*echo.Echo, *orders.Service) {
	t.Helper()
	ordersService := orders.NewService(memory.NewOrdersRepository())
	handler := NewOrdersHandler(ordersService)

	e := newTestEcho(t)
	e.GET("/order/:orderId", handler.GetOrder)
	e.GET("/api/order/:orderId/status", handler.OrderStatus)
	return e, ordersService
}

func placeTestOrder(t *testing.T, ordersService *orders.Service) domain.Order {
	t.Helper()
	order, err := ordersService.Place(orders.PlaceInput{
		Items: []domain.LineItem{
			{ID: "coffee", Name: "Single-Origin Coffee (12oz)", UnitPriceUSD: 0.50, Qty: 1, LineTotalUSD: 0.50},
		},
		TotalUSD: 0.50,
		Network:  "base-sepolia",
		TxHash:   "0xdeadbeef",
		Payer:    "0xpayer",
	})
	require.NoError(t, err)
	return order
}

func TestGetOrderUnknownIs404(t *testing.T) {
	e, _ := newOrdersStack(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/order/never-created", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderJSONIsStable(t *testing.T) {
	e, ordersService := newOrdersStack(t)
	order := placeTestOrder(t, ordersService)

	fetch := func() string {
		req := httptest.NewRequest(http.MethodGet, "/order/"+order.OrderID, nil)
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Body.String()
	}

	first := fetch()
	assert.Equal(t, first, fetch(), "stored orders must not change between reads")

	var got domain.Order
	require.NoError(t, json.Unmarshal([]byte(first), &got))
	assert.Equal(t, order.OrderID, got.OrderID)
	assert.Equal(t, domain.OrderSuccess, got.Status)
	assert.Equal(t, 0.50, got.TotalUSD)
	assert.Equal(t, "0xdeadbeef", got.TxHash)
}

func TestGetOrderRendersReceiptPage(t *testing.T) {
	e, ordersService := newOrdersStack(t)
	order := placeTestOrder(t, ordersService)

	req := httptest.NewRequest(http.MethodGet, "/order/"+order.OrderID, nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMETextHTML)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, order.OrderID)
	assert.Contains(t, body, "Single-Origin Coffee (12oz)")
	assert.Contains(t, body, "https://sepolia.basescan.org/tx/0xdeadbeef")
}

func TestOrderStatusSynthesizesPending(t *testing.T) {
	e, _ := newOrdersStack(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/order/never-created/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "never-created", got.OrderID)
	assert.Equal(t, domain.OrderPending, got.Status)
}

func TestOrderStatusReportsStoredOrder(t *testing.T) {
	e, ordersService := newOrdersStack(t)
	order := placeTestOrder(t, ordersService)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/order/"+order.OrderID+"/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"success"`)
}
