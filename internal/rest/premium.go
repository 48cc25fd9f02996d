package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"microMart/business/premium"
)

// PremiumService contract interface
type PremiumService interface {
	Weather() premium.WeatherReport
	Market() premium.MarketSnapshot
	AI() premium.AICompletion
}

// PremiumHandler serves the simulated data products. The same weather payload
// backs both the free /weather endpoint and the gated premium route; gating
// is applied at registration time, not in here.
type PremiumHandler struct {
	premiumService PremiumService
}

func NewPremiumHandler(premiumService PremiumService) *PremiumHandler {
	return &PremiumHandler{
		premiumService: premiumService,
	}
}

func (h *PremiumHandler) Weather(c echo.Context) error {
	return c.JSON(http.StatusOK, h.premiumService.Weather())
}

func (h *PremiumHandler) Market(c echo.Context) error {
	return c.JSON(http.StatusOK, h.premiumService.Market())
}

func (h *PremiumHandler) AI(c echo.Context) error {
	return c.JSON(http.StatusOK, h.premiumService.AI())
}
