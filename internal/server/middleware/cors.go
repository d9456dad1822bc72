package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

type CORSConfig struct {
	// Origins is matched against the Origin header.
	Origins *regexp.Regexp
	Methods []string
}

// CORS return echo middleware that handle cors with regexp pattern
func CORS(pattern *regexp.Regexp) echo.MiddlewareFunc {
	return CORSWithConfig(CORSConfig{Origins: pattern})
}

func CORSWithConfig(config CORSConfig) echo.MiddlewareFunc {
	if config.Origins == nil {
		panic("Origins is required to use CORS")
	}
	if len(config.Methods) == 0 {
		config.Methods = []string{http.MethodOptions, http.MethodGet, http.MethodHead}
	}
	methods := strings.Join(config.Methods, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			respHeader := c.Response().Header()
			respHeader.Add(echo.HeaderVary, echo.HeaderOrigin)
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if origin == "" || !config.Origins.MatchString(origin) {
				return next(c)
			}
			respHeader.Set(echo.HeaderAccessControlAllowOrigin, origin)
			if c.Request().Method == http.MethodOptions {
				respHeader.Set(echo.HeaderAccessControlAllowHeaders, "*")
				respHeader.Set(echo.HeaderAccessControlAllowMethods, methods)
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}
