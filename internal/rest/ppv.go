package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"microMart/domain"
	"microMart/internal/paygate"
)

type PPVHandler struct {
	catalog Catalog
	gate    PaymentGate
}

func NewPPVHandler(catalog Catalog, gate PaymentGate) *PPVHandler {
	return &PPVHandler{
		catalog: catalog,
		gate:    gate,
	}
}

// UnlockPage feeds the unlock template.
type UnlockPage struct {
	Content     domain.Content
	PriceLabel  string
	TxHash      string
	ExplorerURL string
	Pending     bool
}

func (h *PPVHandler) ListContents(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"contents": h.catalog.Contents(),
	})
}

// Unlock handles GET /ppv/:contentId. The content is revealed as soon as the
// payment proof verifies; settlement is reported best-effort and a timeout
// only downgrades the transaction label to "Pending".
func (h *PPVHandler) Unlock(c echo.Context) error {
	content, ok := h.catalog.Content(c.Param("contentId"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "content not found")
	}

	receipt, err := h.gate.Charge(c, content.PriceUSD,
		paygate.WithNetwork(c.QueryParam("network")),
		paygate.WithToken(c.QueryParam("token")),
		paygate.WithDescription("Unlock "+content.Name),
		paygate.WithMimeType(echo.MIMETextHTML),
	)
	if err != nil {
		return chargeError(c, err)
	}

	page := UnlockPage{
		Content:    content,
		PriceLabel: receipt.PriceLabel,
	}

	if !receipt.Free {
		page.Pending = true
		if settled, err := receipt.Settlement.Wait(h.gate.SettleWait()); err == nil {
			page.Pending = false
			page.TxHash = settled.Transaction
			page.ExplorerURL = paygate.ExplorerTxURL(settled.Network, settled.Transaction)
			paygate.ApplySettlementHeaders(c, settled)
		}
	}

	return c.Render(http.StatusOK, "unlock.html", page)
}
