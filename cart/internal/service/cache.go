package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/shoppingcart/cart/internal/common/cache"
	"github.com/Alturino/shoppingcart/cart/internal/domain"
	"github.com/Alturino/shoppingcart/cart/pkg/response"
	"github.com/Alturino/shoppingcart/internal/log"
)

func cartGenerationKey(owner domain.Owner) string {
	return fmt.Sprintf(cache.KEY_CART_GENERATION, owner.String())
}

func cartCacheKey(owner domain.Owner, generation int64) string {
	return fmt.Sprintf(cache.KEY_CARTS_BY_OWNER, owner.String(), generation)
}

// cartGeneration returns the owner's cache generation, bumped by every write. It must be read
// before the store so a view is always filed under a generation no newer than its data. false
// means the cache is unusable for this request.
func (s *CartService) cartGeneration(c context.Context, owner domain.Owner) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	generationKey := cartGenerationKey(owner)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "finding cart generation").
		Str(log.KeyCacheKey, generationKey).
		Logger()

	generation, err := s.cache.Get(c, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		err = fmt.Errorf("failed finding cart generation with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		return 0, false
	}
	return generation, true
}

// cachedCart reports false on a miss and on any cache failure; the cache never fails a request.
func (s *CartService) cachedCart(
	c context.Context,
	owner domain.Owner,
	generation int64,
) ([]response.CartItemView, bool) {
	cacheKey := cartCacheKey(owner, generation)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "finding cart in cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger.Info().Msg("finding cart in cache")
	jsonCache, err := s.cache.Get(c, cacheKey).Result()
	if errors.Is(err, redis.Nil) {
		logger.Info().Msg("cart not found in cache")
		return nil, false
	}
	if err != nil {
		err = fmt.Errorf("failed finding cache with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		return nil, false
	}

	var views []response.CartItemView
	if err = json.Unmarshal([]byte(jsonCache), &views); err != nil {
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		logger.Warn().Err(err).Str(log.KeyJsonCache, jsonCache).Msg(err.Error())
		return nil, false
	}
	logger.Info().Msg("found cart in cache")
	return views, true
}

func (s *CartService) cacheCart(
	c context.Context,
	owner domain.Owner,
	generation int64,
	views []response.CartItemView,
) {
	cacheKey := cartCacheKey(owner, generation)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "inserting cache").
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	jsonCache, err := json.Marshal(views)
	if err != nil {
		err = fmt.Errorf("failed marshaling cache with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("inserting cache")
	if err = s.cache.Set(c, cacheKey, jsonCache, cache.TTL_CARTS_BY_OWNER).Err(); err != nil {
		err = fmt.Errorf("failed inserting cache with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("inserted cache")
}

// invalidateCart bumps the generation of every owner, orphaning views cached so far as well as
// views still being built from data read before the write.
func (s *CartService) invalidateCart(c context.Context, owners ...domain.Owner) {
	if s.cache == nil || len(owners) == 0 {
		return
	}
	keys := make([]string, 0, len(owners))
	for _, owner := range owners {
		keys = append(keys, cartGenerationKey(owner))
	}
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "bumping cart generation").
		Strs(log.KeyCacheKey, keys).
		Logger()

	logger.Info().Msg("bumping cart generation")
	_, err := s.cache.TxPipelined(c, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(c, key)
			pipe.Expire(c, key, cache.TTL_CART_GENERATION)
		}
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed bumping cart generation with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("bumped cart generation")
}
