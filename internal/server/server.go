package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
	pkgmdw "github.com/nguyentranbao-ct/product-catalog/internal/server/middleware"
	"github.com/nguyentranbao-ct/product-catalog/internal/state"
	"github.com/nguyentranbao-ct/product-catalog/pkg/logger"
	log "github.com/nguyentranbao-ct/product-catalog/pkg/logger/log"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	store *state.Store,
	handler Controller,
) error {
	e, err := NewEcho(conf, store, handler)
	if err != nil {
		return err
	}

	addr := conf.Server.Addr()
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(ctx, "starting HTTP server", "addr", addr)
				if err := e.Start(addr); !errors.Is(err, http.ErrServerClosed) {
					log.Errorw(ctx, "HTTP server stopped", "error", err)
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, conf.Server.ShutdownTimeout)
			defer cancel()
			return e.Shutdown(ctx)
		},
	})
	return nil
}

// NewEcho builds the web application with its middleware and routes.
func NewEcho(conf *config.Config, store *state.Store, handler Controller) (*echo.Echo, error) {
	renderer, err := newRenderer()
	if err != nil {
		return nil, err
	}
	origins, err := regexp.Compile(conf.Server.CORSOrigins)
	if err != nil {
		return nil, fmt.Errorf("cors origins: %w", err)
	}

	httpLog := logger.MustNamed("http")
	title := func() string {
		return state.Select(store, state.SelectHeaderTitle)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(httpLog, errorPageFunc(title))

	logConfig := pkgmdw.LogRequestConfig{
		Logger: httpLog,
		Enabled: func(c echo.Context) bool {
			uri := c.Request().RequestURI
			return uri != "/health" && uri != "/metrics"
		},
		KeyAndValues: func(c echo.Context) []any {
			if id := c.Param("id"); id != "" {
				return []any{"product_id", id}
			}
			return nil
		},
	}

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))

	e.GET("/health", handler.Health)
	if conf.Server.PprofEnabled {
		pkgmdw.PprofWrap(e)
	}

	e.GET("/", handler.ListProducts)
	e.POST("/", handler.ListAction)
	e.GET("/add-product", handler.NewProduct)
	e.POST("/add-product", handler.CreateProduct)
	e.GET("/products/:id", handler.EditProduct)
	e.POST("/products/:id", handler.UpdateProduct)
	e.POST("/products/:id/delete", handler.DeleteProduct)

	api := e.Group("/api", pkgmdw.CORS(origins))
	api.GET("/title", pkgmdw.WrapHandler(handler.GetTitle))

	return e, nil
}
