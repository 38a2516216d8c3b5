// Package app assembles the CityFix server from its fx modules.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"cityfix-be/config"
	"cityfix-be/repositories"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Options is the full dependency graph of the HTTP server.
func Options() fx.Option {
	return fx.Options(
		Infra,
		Repositories,
		Services,
		Controllers,
		HTTP,
	)
}

// New builds the server application. Run it with (*fx.App).Run.
func New() *fx.App {
	return fx.New(
		Options(),
		fx.WithLogger(zapEventLogger),
	)
}

func zapEventLogger(log *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: log}
}

var Infra = fx.Module("infra",
	fx.Provide(
		config.Load,
		config.NewLogger,
		config.NewDatabase,
		config.NewRedisClient,
	),
)

var HTTP = fx.Module("http",
	fx.Provide(
		newRouter,
		newServer,
	),
	fx.Invoke(ensureIndexes),
	fx.Invoke(func(*http.Server) {}),
)

func ensureIndexes(lc fx.Lifecycle, db *mongo.Database, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := repositories.EnsureIndexes(ctx, db); err != nil {
				return err
			}
			log.Info("MongoDB indexes ready")
			return nil
		},
	})
}

func newServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("CityFix server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
