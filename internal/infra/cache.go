package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/Alturino/shoppingcart/internal/config"
	"github.com/Alturino/shoppingcart/internal/log"
	"github.com/Alturino/shoppingcart/internal/otel"
)

// NewCacheClient connects to redis with tracing and metrics attached. The cart cache is optional,
// so callers decide whether an unreachable redis is fatal.
func NewCacheClient(c context.Context, cacheConfig config.Cache) (*redis.Client, error) {
	c, span := otel.Tracer.Start(c, "main NewCacheClient")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main NewCacheClient").
		Str(log.KeyProcess, "initializing redis client").
		Logger()

	logger.Info().Msg("initializing redis client")
	cache := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cacheConfig.Host, cacheConfig.Port),
		Password:     cacheConfig.Password,
		DB:           cacheConfig.Database,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	logger.Info().Msg("initialized redis client")

	logger = logger.With().Str(log.KeyProcess, "instrumenting redis client").Logger()
	logger.Info().Msg("instrumenting redis client")
	err := errors.Join(
		redisotel.InstrumentTracing(cache, redisotel.WithAttributes(semconv.DBSystemRedis)),
		redisotel.InstrumentMetrics(cache, redisotel.WithAttributes(semconv.DBSystemRedis)),
	)
	if err != nil {
		err = fmt.Errorf("failed instrumenting redis client with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, errors.Join(err, cache.Close())
	}
	logger.Info().Msg("instrumented redis client")

	logger = logger.With().Str(log.KeyProcess, "pinging connection to redis").Logger()
	logger.Info().Msg("pinging connection to redis")
	if err = cache.Ping(c).Err(); err != nil {
		err = fmt.Errorf("failed pinging redis with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, errors.Join(err, cache.Close())
	}
	logger.Info().Msg("pinged connection to redis")

	return cache, nil
}
