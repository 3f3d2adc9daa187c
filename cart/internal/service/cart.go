package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alturino/shoppingcart/cart/internal/common/otel"
	"github.com/Alturino/shoppingcart/cart/internal/domain"
	"github.com/Alturino/shoppingcart/cart/internal/store"
	"github.com/Alturino/shoppingcart/cart/pkg/request"
	"github.com/Alturino/shoppingcart/cart/pkg/response"
	inErrors "github.com/Alturino/shoppingcart/internal/errors"
	"github.com/Alturino/shoppingcart/internal/log"
	inOtel "github.com/Alturino/shoppingcart/internal/otel"
)

// ownerChangeRetries bounds how often an update re-reads a line whose owner changed between the
// unlocked read and acquiring the owner lock, which only happens when a migration races it.
const ownerChangeRetries = 3

var errOwnerChanged = errors.New("cart item owner changed while locking")

type CartService struct {
	store       store.Store
	catalog     store.Catalog
	prices      store.PriceResolver
	cache       *redis.Client
	instruments otel.Instruments
}

// NewCartService wires the cart engines. cache may be nil, which disables the cart view cache.
func NewCartService(
	store store.Store,
	catalog store.Catalog,
	prices store.PriceResolver,
	cache *redis.Client,
) *CartService {
	return &CartService{
		store:       store,
		catalog:     catalog,
		prices:      prices,
		cache:       cache,
		instruments: otel.NewInstruments(),
	}
}

func addQuantity(current, delta int32) (int32, error) {
	if delta > 0 && current > math.MaxInt32-delta {
		return 0, fmt.Errorf(
			"%w: quantity %d + %d overflows",
			inErrors.ErrInvalidArgument,
			current,
			delta,
		)
	}
	return current + delta, nil
}

// AddCartItem accumulates quantity into the owner's line for the variant, creating the line on
// the first add.
func (s *CartService) AddCartItem(
	c context.Context,
	param request.AddCartItem,
) (response.CartItem, error) {
	c, span := otel.Tracer.Start(c, "CartService AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddCartItem").
		Int64(log.KeyProductID, param.ProductID).
		Str(log.KeyCartItemSize, param.Size).
		Str(log.KeyCartItemMood, param.Mood).
		Int32(log.KeyCartItemQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msgf("finding productId=%d", param.ProductID)
	_, err := s.catalog.FindProduct(c, param.ProductID)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%d with error=%w", param.ProductID, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartItem{}, err
	}
	logger.Info().Msgf("found productId=%d", param.ProductID)

	logger = logger.With().Str(log.KeyProcess, "resolving owner").Logger()
	owner, err := domain.OwnerFrom(param.PhoneCustomer, param.SessionID)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartItem{}, err
	}
	if param.Quantity <= 0 {
		err = fmt.Errorf("%w: quantity must be positive", inErrors.ErrInvalidArgument)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartItem{}, err
	}
	logger = logger.With().Str(log.KeyOwner, owner.String()).Logger()

	key := domain.LogicalKey{
		Owner:   owner,
		Variant: domain.Variant{ProductID: param.ProductID, Size: param.Size, Mood: param.Mood},
	}

	logger = logger.With().Str(log.KeyProcess, "consolidating cart item").Logger()
	logger.Info().Msg("consolidating cart item")
	var (
		line    domain.Line
		outcome = otel.OutcomeCreated
	)
	err = s.store.InTx(c, []domain.Owner{owner}, func(lines store.Lines) error {
		existing, err := lines.FindByKey(c, key)
		switch {
		case err == nil:
			existing.Quantity, err = addQuantity(existing.Quantity, param.Quantity)
			if err != nil {
				return err
			}
			outcome = otel.OutcomeAccumulated
			line, err = lines.Save(c, existing)
			return err
		case errors.Is(err, inErrors.ErrNotFound):
			line, err = lines.Insert(c, domain.Line{
				ID:       uuid.New(),
				Owner:    owner,
				Variant:  key.Variant,
				Quantity: param.Quantity,
			})
			return err
		default:
			return err
		}
	})
	if err != nil {
		err = fmt.Errorf("failed consolidating cart item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartItem{}, err
	}
	logger.Info().
		Str(log.KeyCartItemID, line.ID.String()).
		Str(otel.KeyOutcome, outcome.Value.AsString()).
		Msg("consolidated cart item")
	s.instruments.LinesAdded.Add(c, 1, metric.WithAttributes(outcome))

	c = logger.WithContext(c)
	s.invalidateCart(c, owner)

	return response.NewCartItem(line), nil
}

// UpdateCartItem replaces quantity, size and mood of a line. When the new size and mood collide
// with another line of the same owner, that line absorbs the quantity and the updated line is
// removed.
func (s *CartService) UpdateCartItem(
	c context.Context,
	param request.UpdateCartItem,
) (response.CartItem, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateCartItem").
		Str(log.KeyCartItemID, param.ID.String()).
		Logger()

	if param.Quantity <= 0 || strings.TrimSpace(param.Size) == "" ||
		strings.TrimSpace(param.Mood) == "" {
		err := fmt.Errorf(
			"%w: positive quantity, size and mood are required",
			inErrors.ErrInvalidArgument,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartItem{}, err
	}

	var (
		line   domain.Line
		merged bool
		err    error
	)
	for attempt := 0; attempt < ownerChangeRetries; attempt++ {
		logger = logger.With().Str(log.KeyProcess, "finding cart item").Logger()
		logger.Info().Msg("finding cart item")
		var current domain.Line
		current, err = s.store.FindByID(c, param.ID)
		if err != nil {
			err = fmt.Errorf("failed finding cartItemId=%s with error=%w", param.ID, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.CartItem{}, err
		}
		logger = logger.With().Str(log.KeyOwner, current.Owner.String()).Logger()
		logger.Info().Msg("found cart item")

		logger = logger.With().Str(log.KeyProcess, "updating cart item").Logger()
		logger.Info().Msg("updating cart item")
		err = s.store.InTx(c, []domain.Owner{current.Owner}, func(lines store.Lines) error {
			target, err := lines.FindByID(c, param.ID)
			if err != nil {
				return err
			}
			if target.Owner != current.Owner {
				return errOwnerChanged
			}
			target.Variant.Size = param.Size
			target.Variant.Mood = param.Mood

			other, err := lines.FindByKey(c, target.Key())
			switch {
			case err == nil && other.ID != target.ID:
				other.Quantity, err = addQuantity(other.Quantity, param.Quantity)
				if err != nil {
					return err
				}
				if line, err = lines.Save(c, other); err != nil {
					return err
				}
				merged = true
				_, err = lines.Delete(c, target.ID)
				return err
			case err == nil, errors.Is(err, inErrors.ErrNotFound):
				target.Quantity = param.Quantity
				line, err = lines.Save(c, target)
				return err
			default:
				return err
			}
		})
		if !errors.Is(err, errOwnerChanged) {
			break
		}
		logger.Warn().Int("attempt", attempt+1).Msg("cart item changed owner, retrying")
	}
	if err != nil {
		err = fmt.Errorf("failed updating cartItemId=%s with error=%w", param.ID, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.CartItem{}, err
	}
	logger.Info().
		Bool("merged", merged).
		Str(log.KeyCartItemID, line.ID.String()).
		Msg("updated cart item")

	c = logger.WithContext(c)
	s.invalidateCart(c, line.Owner)

	return response.NewCartItem(line), nil
}

func (s *CartService) RemoveCartItem(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartService RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCartItem").
		Str(log.KeyCartItemID, id.String()).
		Str(log.KeyProcess, "deleting cart item").
		Logger()

	logger.Info().Msg("deleting cart item")
	line, err := s.store.Delete(c, id)
	if err != nil {
		err = fmt.Errorf("failed deleting cartItemId=%s with error=%w", id, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Str(log.KeyOwner, line.Owner.String()).Msg("deleted cart item")

	c = logger.WithContext(c)
	s.invalidateCart(c, line.Owner)

	return nil
}

// ClearCart deletes every line of the owner named by param and returns that owner with the
// number of deleted lines. Clearing an empty cart succeeds.
func (s *CartService) ClearCart(
	c context.Context,
	param request.ClearCart,
) (domain.Owner, int64, error) {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeyProcess, "resolving owner").
		Logger()

	owner, err := domain.OwnerFrom(param.PhoneCustomer, param.SessionID)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.Owner{}, 0, err
	}

	logger = logger.With().
		Str(log.KeyOwner, owner.String()).
		Str(log.KeyProcess, "deleting cart items").
		Logger()
	logger.Info().Msg("deleting cart items")
	var deleted int64
	err = s.store.InTx(c, []domain.Owner{owner}, func(lines store.Lines) error {
		var err error
		deleted, err = lines.DeleteByOwner(c, owner)
		return err
	})
	if err != nil {
		err = fmt.Errorf("failed clearing cart of owner=%s with error=%w", owner, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.Owner{}, 0, err
	}
	logger.Info().Int64(log.KeyCartItemsCount, deleted).Msg("deleted cart items")

	c = logger.WithContext(c)
	s.invalidateCart(c, owner)

	return owner, deleted, nil
}
