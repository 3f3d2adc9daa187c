package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/Alturino/shoppingcart/cart/internal/common/otel"
	"github.com/Alturino/shoppingcart/cart/internal/domain"
	"github.com/Alturino/shoppingcart/cart/pkg/request"
	"github.com/Alturino/shoppingcart/cart/pkg/response"
	"github.com/Alturino/shoppingcart/internal/log"
	inOtel "github.com/Alturino/shoppingcart/internal/otel"
)

// ListCart returns the display rows of the owner's cart in storage order. Product data comes from
// one catalog lookup and a size without a price shows as zero.
func (s *CartService) ListCart(
	c context.Context,
	param request.FindCart,
) ([]response.CartItemView, error) {
	c, span := otel.Tracer.Start(c, "CartService ListCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ListCart").
		Str(log.KeyProcess, "resolving owner").
		Logger()

	owner, err := domain.OwnerFrom(param.PhoneCustomer, param.SessionID)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger = logger.With().Str(log.KeyOwner, owner.String()).Logger()
	c = logger.WithContext(c)

	generation, cacheable := s.cartGeneration(c, owner)
	if cacheable {
		if views, ok := s.cachedCart(c, owner, generation); ok {
			return views, nil
		}
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart items").Logger()
	logger.Info().Msg("finding cart items")
	lines, err := s.store.ListByOwner(c, owner)
	if err != nil {
		err = fmt.Errorf("failed finding cart items of owner=%s with error=%w", owner, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(log.KeyCartItemsCount, len(lines)).Msg("found cart items")

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.Variant.ProductID)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)
	logger.Info().Ints64("productIds", ids).Msg("finding products")
	products, err := s.catalog.FindProducts(c, ids)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("found products")

	logger = logger.With().Str(log.KeyProcess, "resolving prices").Logger()
	views := make([]response.CartItemView, 0, len(lines))
	for _, line := range lines {
		price, err := s.prices.UnitPrice(c, line.Variant.ProductID, line.Variant.Size)
		if err != nil {
			err = fmt.Errorf(
				"failed resolving price of productId=%d size=%s with error=%w",
				line.Variant.ProductID,
				line.Variant.Size,
				err,
			)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		product := products[line.Variant.ProductID]
		views = append(views, response.CartItemView{
			ID:        line.ID,
			Quantity:  line.Quantity,
			Size:      line.Variant.Size,
			Mood:      line.Variant.Mood,
			ProductID: line.Variant.ProductID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     price,
		})
	}
	logger.Info().Msg("resolved prices")

	if cacheable {
		s.cacheCart(c, owner, generation, views)
	}

	return views, nil
}
