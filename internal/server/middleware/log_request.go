package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/product-catalog/pkg/logger/log"
)

type (
	// LogRequestConfig store middleware configuration
	LogRequestConfig struct {
		Logger       Logger
		Enabled      func(c echo.Context) bool
		KeyAndValues func(c echo.Context) []any
	}
	bodyDumpWriter struct {
		io.Writer
		http.ResponseWriter
	}
)

// LogRequest logs one entry per request with its status, route, query and
// posted form. JSON responses are logged with their body.
func LogRequest(config LogRequestConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		panic("Logger is required to use LogRequest")
	}
	if config.Enabled == nil {
		config.Enabled = func(c echo.Context) bool {
			return true
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !config.Enabled(c) {
				return next(c)
			}

			start := time.Now()
			req := c.Request()
			res := c.Response()

			var resBuf bytes.Buffer
			res.Writer = &bodyDumpWriter{Writer: io.MultiWriter(res.Writer, &resBuf), ResponseWriter: res.Writer}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			args := []any{
				"status", res.Status,
				"method", req.Method,
				"uri", req.RequestURI,
				"latency_ms", time.Since(start).Milliseconds(),
				"real_ip", c.RealIP(),
				"user_agent", req.UserAgent(),
			}
			if path := c.Path(); path != "" {
				args = append(args, "route", path)
			}
			if query := c.QueryParams(); len(query) > 0 {
				args = append(args, "query", query)
			}
			if len(req.PostForm) > 0 {
				args = append(args, "form", req.PostForm)
			}
			if id := log.RequestID(c.Request().Context()); id != "" {
				args = append(args, "request_id", id)
			}
			if config.KeyAndValues != nil {
				args = append(args, config.KeyAndValues(c)...)
			}
			if strings.HasPrefix(res.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
				args = append(args, "response_body", json.RawMessage(resBuf.Bytes()))
			}

			switch {
			case res.Status >= 500:
				if err != nil {
					args = append(args, "error", err.Error())
				}
				config.Logger.Errorw("http request", args...)
			case res.Status >= 400:
				config.Logger.Warnw("http request", args...)
			default:
				config.Logger.Infow("http request", args...)
			}

			return err
		}
	}
}

func (w *bodyDumpWriter) WriteHeader(code int) {
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpWriter) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}
