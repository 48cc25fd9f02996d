package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"microMart/internal/paygate"
	"microMart/internal/rest"
)

// Fixed prices for the gated data products.
const (
	PremiumWeatherUSD = 0.001
	PremiumMarketUSD  = 0.01
	PremiumAIUSD      = 0.05
)

func SetupStoreRoutes(e *echo.Echo, products *rest.ProductsHandler, checkout *rest.CheckoutHandler, orders *rest.OrdersHandler) {
	e.GET("/products", products.GetProducts)
	e.POST("/checkout", checkout.Checkout)
	e.GET("/checkout-page", checkout.CheckoutPage)
	e.GET("/order/:orderId", orders.GetOrder)
	e.GET("/api/order/:orderId/status", orders.OrderStatus)
}

func SetupPPVRoutes(e *echo.Echo, ppv *rest.PPVHandler) {
	e.GET("/ppv/:contentId", ppv.Unlock)
	e.GET("/api/ppv", ppv.ListContents)
}

func SetupPremiumRoutes(e *echo.Echo, premium *rest.PremiumHandler, gate *paygate.Gate) {
	e.GET("/weather", premium.Weather)

	api := e.Group("/api/premium")
	api.GET("/weather", premium.Weather, gate.Middleware(PremiumWeatherUSD,
		paygate.WithDescription("Premium weather report"),
		paygate.WithMimeType(echo.MIMEApplicationJSON)))
	api.GET("/market", premium.Market, gate.Middleware(PremiumMarketUSD,
		paygate.WithDescription("Live market snapshot"),
		paygate.WithMimeType(echo.MIMEApplicationJSON)))
	api.GET("/ai", premium.AI, gate.Middleware(PremiumAIUSD,
		paygate.WithDescription("AI completion"),
		paygate.WithMimeType(echo.MIMEApplicationJSON)))
}

func SetupMetaRoutes(e *echo.Echo, meta *rest.MetaHandler) {
	e.GET("/api/config", meta.Config)
	e.GET("/healthz", meta.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
