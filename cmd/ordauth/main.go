package main

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/layer-3/ordauth/adapters/events"
	"github.com/layer-3/ordauth/adapters/store"
	"github.com/layer-3/ordauth/adapters/tokenizer"
	"github.com/layer-3/ordauth/internal/config"
	"github.com/layer-3/ordauth/internal/logger"
	"github.com/layer-3/ordauth/ports"
	"github.com/layer-3/ordauth/service"
	transport "github.com/layer-3/ordauth/transport/http"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init("ordauth", cfg.Debug)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("ordauth stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	signKey, err := loadSigningKey(cfg.JWTKeyPEM)
	if err != nil {
		return err
	}
	if cfg.JWTKeyPEM == "" {
		log.Warn().Msg("ORDAUTH_JWT_KEY_PEM not set, using a random challenge key")
	}

	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	var st ports.Store
	switch cfg.Store {
	case config.StoreRedis:
		rs := store.NewRedisStore(redisClient)
		if err := rs.Ping(ctx); err != nil {
			return err
		}
		st = rs
	default:
		st = store.NewMemoryStore()
	}

	var eventPub ports.EventPublisher = events.NoopPublisher{}
	if cfg.Events == config.EventsRedis {
		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisClient,
			},
			events.NewZerologAdapter(log),
		)
		if err != nil {
			return fmt.Errorf("failed to create Redis publisher: %w", err)
		}
		defer publisher.Close()
		eventPub = events.NewWatermillPublisher(publisher)
	}

	authService, err := service.NewAuthService(
		tokenizer.NewJWTTokenizer(signKey),
		st,
		eventPub,
		cfg.Service(),
		service.WithLogger(log),
	)
	if err != nil {
		return err
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := transport.SetupRouter(authService, transport.RouterOptions{
		Logger:      log,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.HTTP.Addr).
			Str("store", cfg.Store).
			Str("events", cfg.Events).
			Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited")
	return nil
}

func loadSigningKey(pemKey string) (*ecdsa.PrivateKey, error) {
	if pemKey == "" {
		return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	}

	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ORDAUTH_JWT_KEY_PEM: %w", err)
	}
	if key.Curve != elliptic.P256() {
		return nil, errors.New("ORDAUTH_JWT_KEY_PEM must be a P-256 key")
	}
	return key, nil
}
