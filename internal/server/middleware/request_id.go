package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/product-catalog/pkg/logger/log"
)

const XRequestID = "x-request-id"

// GetRequestID returns the id assigned to the request, falling back to the
// incoming header.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(XRequestID).(string); ok && id != "" {
		return id
	}
	if id := log.RequestID(c.Request().Context()); id != "" {
		return id
	}
	return c.Request().Header.Get(XRequestID)
}

func GenerateRequestID() string {
	return uuid.NewString()
}

// RequestID reuses an incoming x-request-id or generates one, and exposes it
// on the echo context, the request context and the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := GetRequestID(c)
			if reqID == "" {
				reqID = GenerateRequestID()
			}
			c.SetRequest(c.Request().WithContext(log.WithRequestID(c.Request().Context(), reqID)))
			c.Set(XRequestID, reqID)
			c.Response().Header().Set(XRequestID, reqID)
			return next(c)
		}
	}
}
