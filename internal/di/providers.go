package di

import (
	"context"
	"fmt"
	"time"

	domrepo "FlipScout/internal/domain/repository"
	"FlipScout/internal/handler/api"
	internalrepo "FlipScout/internal/repository"
	"FlipScout/internal/usecase"
	"FlipScout/pkg/cache"
	"FlipScout/pkg/config"
	xhttp "FlipScout/pkg/http"
	pkgkafka "FlipScout/pkg/kafka"
	applogger "FlipScout/pkg/logger"
	"FlipScout/pkg/metrics"
	pkgpg "FlipScout/pkg/postgres"
	"FlipScout/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{
		Level:  "info",
		Format: format,
		Output: "stdout",
	})
}

// ProvidePostgresClient creates the pooled Postgres client.
func ProvidePostgresClient(cfg *config.Config) (*pkgpg.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := pkgpg.NewClient(ctx,
		pkgpg.WithDSN(cfg.DatabaseDSN()),
		pkgpg.WithPoolBounds(cfg.Postgres.MinConns, cfg.Postgres.MaxConns),
		pkgpg.WithDialTimeout(cfg.Postgres.DialTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres client: %w", err)
	}
	return client, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideCache creates the layered signal-read cache. The Redis layer is
// optional; without it reads are still cached in process.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	local := cache.NewMemoryCache()
	if !cfg.Cache.Redis.Enabled {
		return cache.NewLayeredCache(local, nil), nil
	}
	remote, err := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(local, remote), nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when publishing is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSignalStore creates the Postgres-backed signal store.
func ProvideSignalStore(client *pkgpg.Client, l *applogger.Logger) *internalrepo.PostgresSignalStore {
	store := internalrepo.NewPostgresSignalStore(client)
	store.SetLogger(l)
	return store
}

// ProvideCandidateSource exposes the store as the candidate source.
func ProvideCandidateSource(store *internalrepo.PostgresSignalStore) domrepo.CandidateSource {
	return store
}

// ProvideSignalStoreInterface exposes the store behind the domain interface.
func ProvideSignalStoreInterface(store *internalrepo.PostgresSignalStore) domrepo.SignalStore {
	return store
}

// ProvideSignalPublisher creates the Kafka publisher, or nil when disabled.
func ProvideSignalPublisher(producer *pkgkafka.Producer, cfg *config.Config) domrepo.SignalPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.Topic)
}

// ProvideScoreRunner creates the scoring orchestrator.
func ProvideScoreRunner(
	src domrepo.CandidateSource,
	store domrepo.SignalStore,
	pub domrepo.SignalPublisher,
	cacheSvc cache.Service,
	m domrepo.Metrics,
	l *applogger.Logger,
) *usecase.ScoreRunner {
	runner := usecase.NewScoreRunner(src, store, pub, cacheSvc, m)
	runner.SetLogger(l)
	return runner
}

// ProvideSignalReader creates the cached signal reader.
func ProvideSignalReader(store domrepo.SignalStore, cacheSvc cache.Service, cfg *config.Config) *usecase.SignalReader {
	return usecase.NewSignalReader(store, cacheSvc, cfg.Cache.TTL)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(cfg *config.Config, l *applogger.Logger, runner *usecase.ScoreRunner, reader *usecase.SignalReader) xhttp.Handler {
	window := time.Duration(cfg.Scoring.WindowHours) * time.Hour
	return api.NewScoringHandler(l, runner, reader, cfg.Auth.RunToken, window)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	client *pkgpg.Client,
	cacheSvc cache.Service,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, l, handler, client, cacheSvc, producer)
}
