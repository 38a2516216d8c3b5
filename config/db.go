package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ConnectDB dials MongoDB and confirms the deployment answers a ping.
func ConnectDB(ctx context.Context, cfg *Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// NewDatabase provides the application database and ties the client to the
// fx lifecycle so it is disconnected on shutdown.
func NewDatabase(lc fx.Lifecycle, cfg *Config, log *zap.Logger) (*mongo.Database, error) {
	client, err := ConnectDB(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	log.Info("Connected to MongoDB", zap.String("db", cfg.DBName))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("Disconnecting MongoDB")
			return client.Disconnect(ctx)
		},
	})
	return client.Database(cfg.DBName), nil
}
