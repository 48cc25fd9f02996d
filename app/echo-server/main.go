package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"microMart/app/echo-server/router"
	"microMart/business/cart"
	"microMart/business/catalog"
	"microMart/business/orders"
	"microMart/business/premium"
	"microMart/internal/middleware"
	"microMart/internal/paygate"
	"microMart/internal/repository/memory"
	"microMart/internal/rest"
	"microMart/internal/view"
	"microMart/pkg/config"
	"microMart/pkg/logger"
	"microMart/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting microMart",
		"network", cfg.Payment.Network,
		"facilitator", cfg.Payment.FacilitatorURL,
	)

	metrics.Init()

	// Payment gate over the x402 facilitator
	gate := paygate.New(paygate.Config{
		PayTo:          cfg.Payment.Address,
		FacilitatorURL: cfg.Payment.FacilitatorURL,
		DefaultNetwork: cfg.Payment.Network,
		ResourceRoot:   cfg.App.BaseURL,
		SettleWait:     time.Duration(cfg.Payment.SettleWaitSeconds) * time.Second,
	})

	// Init repo
	ordersRepo := memory.NewOrdersRepository()

	// Init service
	catalogService := catalog.NewService(catalog.DefaultProducts(), catalog.DefaultContents())
	cartService := cart.NewService(catalogService)
	ordersService := orders.NewService(ordersRepo)
	premiumService := premium.NewService()

	// Init handler
	productsHandler := rest.NewProductsHandler(catalogService)
	checkoutHandler := rest.NewCheckoutHandler(cartService, ordersService, gate, cfg.Payment.Address, cfg.Payment.Network)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	ppvHandler := rest.NewPPVHandler(catalogService, gate)
	premiumHandler := rest.NewPremiumHandler(premiumService)
	metaHandler := rest.NewMetaHandler(cfg.Payment.Network, cfg.Payment.Address, cfg.Payment.FacilitatorURL)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to parse templates", "error", err)
	}
	e.Renderer = renderer

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-PAYMENT"},
	}))

	// Setup routes
	router.SetupStoreRoutes(e, productsHandler, checkoutHandler, ordersHandler)
	router.SetupPPVRoutes(e, ppvHandler)
	router.SetupPremiumRoutes(e, premiumHandler, gate)
	router.SetupMetaRoutes(e, metaHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
