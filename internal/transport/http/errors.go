package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/njprem/thirdplace_finder_web/internal/util"
)

// NewHTTPErrorHandler answers API routes with a JSON envelope and page routes
// with the error template.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok && m != "" {
				message = m
			} else {
				message = http.StatusText(status)
			}
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
		}

		var sendErr error
		switch {
		case c.Request().Method == http.MethodHead:
			sendErr = c.NoContent(status)
		case strings.HasPrefix(c.Request().URL.Path, "/api/"):
			sendErr = c.JSON(status, util.Error(message))
		default:
			sendErr = c.Render(status, "error", Page{
				Title: pageTitle("Error"),
				Data:  errorPage{Status: status, Message: message},
			})
			if sendErr != nil {
				sendErr = c.String(status, message)
			}
		}
		if sendErr != nil {
			logger.Warn("write error response", zap.Error(sendErr))
		}
	}
}
