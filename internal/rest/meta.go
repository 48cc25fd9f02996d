package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MetaHandler exposes the public payment configuration clients need before
// their first 402: which network we settle on and who gets paid.
type MetaHandler struct {
	network        string
	recipient      string
	facilitatorURL string
}

func NewMetaHandler(network, recipient, facilitatorURL string) *MetaHandler {
	return &MetaHandler{
		network:        network,
		recipient:      recipient,
		facilitatorURL: facilitatorURL,
	}
}

func (h *MetaHandler) Config(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"network":     h.network,
		"recipient":   h.recipient,
		"facilitator": h.facilitatorURL,
	})
}

func (h *MetaHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}
