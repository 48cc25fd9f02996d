package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"microMart/internal/paygate"
	"microMart/pkg/logger"
)

type ResponseError struct {
	Message string `json:"message"`
}

// FailurePage feeds the payment failure template. The remediation hints on
// the page are generic; the gate does not hand us a structured reason code.
type FailurePage struct {
	Reason string
}

func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), "application/json")
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}

// paymentFailure renders the user-facing failure response for a rejected or
// unconfirmed settlement: a friendly HTML page for browsers, plain JSON
// otherwise.
func paymentFailure(c echo.Context, reason string) error {
	if wantsHTML(c) {
		if err := c.Render(http.StatusPaymentRequired, "failure.html", FailurePage{Reason: reason}); err == nil {
			return nil
		}
	}

	return c.JSON(http.StatusPaymentRequired, ResponseError{Message: reason})
}

// chargeError maps errors out of Gate.Charge onto responses. A 402 has
// already been written when the gate says payment is required.
func chargeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, paygate.ErrPaymentRequired):
		return nil
	case errors.Is(err, paygate.ErrUnsupportedNetwork), errors.Is(err, paygate.ErrUnsupportedToken):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	default:
		logger.Error("payment gate failure", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "payment gate unavailable")
	}
}
