package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/modacart/commerce-api/internal/api"
	"github.com/modacart/commerce-api/internal/infrastructure/config"
	"github.com/modacart/commerce-api/internal/infrastructure/payment"
	"github.com/modacart/commerce-api/pkg/logger"

	mongodb "github.com/modacart/commerce-api/internal/infrastructure/db/mongo"
	redisdb "github.com/modacart/commerce-api/internal/infrastructure/db/redis"
)

func main() {
	// .env is optional, real deployments inject environment variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, !cfg.IsProduction())

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey)

	e := api.NewRouter(db, rdb, gateway, cfg, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting commerce API")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
