package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"microMart/pkg/logger"
)

// ErrorHandler is the echo HTTPErrorHandler: HTTPErrors keep their code and
// message, everything else becomes an opaque 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	} else {
		logger.Error("unhandled error", "error", err, "path", c.Request().URL.Path)
	}

	if err := c.JSON(code, echo.Map{"message": message}); err != nil {
		logger.Error("failed to write error response", "error", err)
	}
}
