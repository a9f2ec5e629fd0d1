package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	kafkabus "hotel_search/internal/adapters/kafka"
	"hotel_search/internal/adapters/observability"
	redisad "hotel_search/internal/adapters/redis"
	"hotel_search/internal/app"
	"hotel_search/internal/shared"
	mongorepo "hotel_search/internal/storage/mongo"
)

func main() {
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	log.Info().
		Strs("brokers", cfg.BusBootstrap).
		Str("topic", cfg.BusTopic).
		Str("group", cfg.BusGroup).
		Msg("persister starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.StoreURI))
	if err != nil {
		log.Fatal().Err(err).Msg("mongo.Connect failed")
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("mongo ping failed")
	}
	log.Info().Msg("document store connection ok")

	repo := mongorepo.New(client.Database(cfg.StoreDB))
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	persist := app.NewPersistService(repo, cache)
	consumer := kafkabus.NewConsumer(cfg.BusBootstrap, cfg.BusTopic, cfg.BusGroup, persist)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		return consumer.Close()
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("persister failed")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Disconnect(shutCtx); err != nil {
		log.Warn().Err(err).Msg("mongo disconnect failed")
	}
	log.Info().Msg("persister stopped")
}
