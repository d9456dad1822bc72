package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/product-catalog/internal/models"
)

// ErrorPage renders a failed request for browsers.
type ErrorPage func(c echo.Context, resp *ResponseError) error

// ErrorHandler return custom http error handler. Requests under /api and
// requests without a page renderer get a JSON body.
func ErrorHandler(log Logger, page ErrorPage) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		resp := &ResponseError{
			Status:  http.StatusInternalServerError,
			Success: false,
			Err:     err,
		}

		var he *echo.HTTPError
		var re *ResponseError
		switch {
		case errors.As(err, &re):
			resp = re
		case errors.As(err, &he):
			resp.Status = he.Code
			resp.ErrorMessage = fmt.Sprint(he.Message)
		case errors.Is(err, models.ErrNotFound):
			resp.Status = http.StatusNotFound
			resp.ErrorCode = "not_found"
			resp.ErrorMessage = "product not found"
		case errors.Is(err, models.ErrValidation):
			resp.Status = http.StatusBadRequest
			resp.ErrorCode = "validation"
			resp.ErrorMessage = err.Error()
		case errors.Is(err, models.ErrNetwork), errors.Is(err, models.ErrMalformedPayload):
			resp.Status = http.StatusBadGateway
			resp.ErrorCode = "upstream"
			resp.ErrorMessage = "product service unavailable"
		case errors.Is(err, context.Canceled) && c.Request().Context().Err() == context.Canceled:
			// detect canceled request error
			resp.Status = 499
		}

		if resp.Status == http.StatusNotFound && isNotFoundHandler(c.Handler()) {
			resp.ErrorMessage = "no route matched"
		}
		if resp.ErrorMessage == "" {
			resp.ErrorMessage = http.StatusText(resp.Status)
		}

		if c.Request().Method == http.MethodHead {
			if err := c.NoContent(resp.Status); err != nil {
				log.Errorw("could not response", "code", resp.Status)
			}
			return
		}

		if page != nil && !strings.HasPrefix(c.Request().URL.Path, "/api/") {
			err := page(c, resp)
			if err == nil {
				return
			}
			log.Errorw("could not render error page", "code", resp.Status, "error", err)
		}

		if err := c.JSON(resp.Status, resp); err != nil {
			log.Errorw("could not response", "code", resp.Status, "response_body", resp)
		}
	}
}
