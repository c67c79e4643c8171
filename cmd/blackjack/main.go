package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/layer-3/blackjack/adapters/events"
	"github.com/layer-3/blackjack/adapters/store"
	"github.com/layer-3/blackjack/adapters/tokenizer"
	"github.com/layer-3/blackjack/adapters/wallet"
	"github.com/layer-3/blackjack/config"
	"github.com/layer-3/blackjack/ports"
	"github.com/layer-3/blackjack/service"
	api "github.com/layer-3/blackjack/transport/http"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type scoreBackend interface {
	ports.Store
	ports.StatsStore
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "enable debug logs")
	flag.Parse()

	if err := run(*configPath, *debug); err != nil {
		log.Fatalf("blackjack: %v", err)
	}
}

func run(configPath string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := watermill.NewStdLogger(debug, false)

	signKey, err := tokenizer.LoadOrCreateSigningKey(cfg.Auth.SigningKeyFile)
	if err != nil {
		return err
	}

	var (
		backend     scoreBackend
		checks      []api.HealthCheck
		redisClient *redis.Client
	)
	if cfg.Redis.URL == "" {
		logger.Info("No Redis URL configured, keeping scores in memory", nil)
		backend = store.NewMemoryStore()
	} else {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return err
		}
		redisClient = redis.NewClient(opts)
		redisStore := store.NewRedisStore(redisClient, cfg.Redis.KeyPrefix)
		defer redisStore.Close()

		backend = redisStore
		checks = append(checks, redisStore.Ping)
	}

	var publisher ports.EventPublisher
	if cfg.Events.Enabled {
		streamPublisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisClient,
			},
			logger,
		)
		if err != nil {
			return err
		}
		defer streamPublisher.Close()

		publisher = events.NewWatermillPublisher(streamPublisher, cfg.Events.Topic)
	}

	authService := service.NewAuthService(
		tokenizer.NewJWTTokenizer(signKey),
		wallet.NewEthVerifier(),
		logger,
		cfg.Auth.TokenTTLDuration(),
	)
	gameService := service.NewGameService(backend, backend, publisher, logger, service.GameConfig{
		StoreTimeout: cfg.Redis.TimeoutDuration(),
		RetryBackoff: cfg.Redis.RetryBackoffDuration(),
		ScoreTTL:     cfg.Redis.ScoreTTLDuration(),
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.SetupRouter(authService, gameService, checks...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Listening", watermill.LogFields{"addr": server.Addr, "events": cfg.Events.Enabled})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
