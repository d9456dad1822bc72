package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/nguyentranbao-ct/product-catalog/internal/config"
	"github.com/nguyentranbao-ct/product-catalog/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-catalog/internal/server"
	"github.com/nguyentranbao-ct/product-catalog/internal/state"
	"github.com/nguyentranbao-ct/product-catalog/pkg/logger"
)

func Invoke(funcs ...any) *fx.App {
	conf := config.MustLoad()
	if err := logger.Init(conf.Log.Level, conf.Log.Format); err != nil {
		panic(err)
	}
	log := logger.MustNamed("app")
	log.Desugar().Debug("config loaded", log.Reflect("config", conf))

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		Module(conf),
		fx.Invoke(funcs...),
	)
}

// Module provides the application graph for conf.
func Module(conf *config.Config) fx.Option {
	return fx.Options(
		fx.Provide(
			state.NewStore,
			productapi.NewClient,
			server.NewHandler,
		),
		fx.Supply(conf),
		fx.Invoke(LogTitleChanges),
	)
}

// LogTitleChanges follows the header state for the lifetime of the app.
func LogTitleChanges(lc fx.Lifecycle, store *state.Store) {
	log := logger.MustNamed("state")
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			updates := store.Subscribe(ctx)
			go func() {
				for s := range updates {
					log.Debugw("header title", "title", s.Title)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			// stderr may not support sync
			_ = logger.Sync()
			return nil
		},
	})
}
