package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Alturino/shoppingcart/cart/internal/common/otel"
	"github.com/Alturino/shoppingcart/cart/internal/domain"
	inErrors "github.com/Alturino/shoppingcart/internal/errors"
	"github.com/Alturino/shoppingcart/internal/log"
	inOtel "github.com/Alturino/shoppingcart/internal/otel"
	"github.com/Alturino/shoppingcart/internal/repository"
)

type Postgres struct {
	pgLines
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool, queries *repository.Queries) *Postgres {
	return &Postgres{pgLines: pgLines{queries: queries}, pool: pool}
}

func (s *Postgres) InTx(c context.Context, owners []domain.Owner, fn func(Lines) error) (err error) {
	c, span := otel.Tracer.Start(c, "Postgres InTx")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Postgres InTx").
		Str(log.KeyProcess, "initializing transaction").
		Logger()

	logger.Trace().Msg("initializing transaction")
	tx, err := s.pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		err = fmt.Errorf("failed initializing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer func() {
		rbErr := tx.Rollback(c)
		if rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			rbErr = fmt.Errorf("failed rolling back transaction with error=%w", rbErr)
			inOtel.RecordError(rbErr, span)
			logger.Error().Err(rbErr).Msg(rbErr.Error())
		}
	}()
	logger.Trace().Msg("initialized transaction")

	queries := s.queries.WithTx(tx)

	logger = logger.With().Str(log.KeyProcess, "locking owners").Logger()
	for _, key := range lockKeys(owners) {
		if err = queries.LockCartOwner(c, key); err != nil {
			err = fmt.Errorf("failed locking owner=%s with error=%w", key, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
	}
	logger.Trace().Int("owners", len(owners)).Msg("locked owners")

	if err = fn(pgLines{queries: queries}); err != nil {
		inOtel.RecordError(err, span)
		return err
	}

	logger = logger.With().Str(log.KeyProcess, "committing transaction").Logger()
	if err = tx.Commit(c); err != nil {
		err = fmt.Errorf("failed committing transaction with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("committed transaction")

	return nil
}

// lockKeys dedupes and sorts the owners so concurrent transactions take locks in one order.
func lockKeys(owners []domain.Owner) []string {
	keys := make([]string, 0, len(owners))
	for _, owner := range owners {
		if owner.IsZero() {
			continue
		}
		keys = append(keys, owner.String())
	}
	slices.Sort(keys)
	return slices.Compact(keys)
}

type pgLines struct {
	queries *repository.Queries
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), inErrors.ErrNotFound)
	}
	return fmt.Errorf("failed %s with error=%w", fmt.Sprintf(format, args...), err)
}

func (l pgLines) FindByID(c context.Context, id uuid.UUID) (domain.Line, error) {
	row, err := l.queries.FindCartItemById(c, id)
	if err != nil {
		return domain.Line{}, notFound(err, "finding cartItemId=%s", id)
	}
	return lineFromRow(row)
}

func (l pgLines) FindByKey(c context.Context, key domain.LogicalKey) (domain.Line, error) {
	var (
		row repository.CartItem
		err error
	)
	sessionID, phoneCustomer := ownerColumns(key.Owner)
	switch key.Owner.Kind() {
	case domain.OwnerSession:
		row, err = l.queries.FindCartItemBySessionVariant(
			c,
			repository.FindCartItemBySessionVariantParams{
				SessionID: sessionID,
				ProductID: key.Variant.ProductID,
				Size:      key.Variant.Size,
				Mood:      key.Variant.Mood,
			},
		)
	case domain.OwnerCustomer:
		row, err = l.queries.FindCartItemByCustomerVariant(
			c,
			repository.FindCartItemByCustomerVariantParams{
				PhoneCustomer: phoneCustomer,
				ProductID:     key.Variant.ProductID,
				Size:          key.Variant.Size,
				Mood:          key.Variant.Mood,
			},
		)
	default:
		return domain.Line{}, fmt.Errorf("%w: owner is required", inErrors.ErrInvalidArgument)
	}
	if err != nil {
		return domain.Line{}, notFound(err, "finding cart item of owner=%s", key.Owner)
	}
	return lineFromRow(row)
}

func (l pgLines) ListByOwner(c context.Context, owner domain.Owner) ([]domain.Line, error) {
	var (
		rows []repository.CartItem
		err  error
	)
	sessionID, phoneCustomer := ownerColumns(owner)
	switch owner.Kind() {
	case domain.OwnerSession:
		rows, err = l.queries.ListCartItemsBySession(c, sessionID)
	case domain.OwnerCustomer:
		rows, err = l.queries.ListCartItemsByCustomer(c, phoneCustomer)
	default:
		return nil, fmt.Errorf("%w: owner is required", inErrors.ErrInvalidArgument)
	}
	if err != nil {
		return nil, fmt.Errorf("failed listing cart items of owner=%s with error=%w", owner, err)
	}
	return linesFromRows(rows)
}

func (l pgLines) Insert(c context.Context, line domain.Line) (domain.Line, error) {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	sessionID, phoneCustomer := ownerColumns(line.Owner)
	row, err := l.queries.InsertCartItem(c, repository.InsertCartItemParams{
		ID:            line.ID,
		SessionID:     sessionID,
		PhoneCustomer: phoneCustomer,
		ProductID:     line.Variant.ProductID,
		Size:          line.Variant.Size,
		Mood:          line.Variant.Mood,
		Quantity:      line.Quantity,
	})
	if err != nil {
		return domain.Line{}, fmt.Errorf("failed inserting cart item with error=%w", err)
	}
	return lineFromRow(row)
}

func (l pgLines) Save(c context.Context, line domain.Line) (domain.Line, error) {
	sessionID, phoneCustomer := ownerColumns(line.Owner)
	row, err := l.queries.UpdateCartItem(c, repository.UpdateCartItemParams{
		ID:            line.ID,
		SessionID:     sessionID,
		PhoneCustomer: phoneCustomer,
		Size:          line.Variant.Size,
		Mood:          line.Variant.Mood,
		Quantity:      line.Quantity,
	})
	if err != nil {
		return domain.Line{}, notFound(err, "updating cartItemId=%s", line.ID)
	}
	return lineFromRow(row)
}

func (l pgLines) Delete(c context.Context, id uuid.UUID) (domain.Line, error) {
	row, err := l.queries.DeleteCartItemById(c, id)
	if err != nil {
		return domain.Line{}, notFound(err, "deleting cartItemId=%s", id)
	}
	return lineFromRow(row)
}

func (l pgLines) DeleteByOwner(c context.Context, owner domain.Owner) (int64, error) {
	var (
		affected int64
		err      error
	)
	sessionID, phoneCustomer := ownerColumns(owner)
	switch owner.Kind() {
	case domain.OwnerSession:
		affected, err = l.queries.DeleteCartItemsBySession(c, sessionID)
	case domain.OwnerCustomer:
		affected, err = l.queries.DeleteCartItemsByCustomer(c, phoneCustomer)
	default:
		return 0, fmt.Errorf("%w: owner is required", inErrors.ErrInvalidArgument)
	}
	if err != nil {
		return 0, fmt.Errorf("failed deleting cart items of owner=%s with error=%w", owner, err)
	}
	return affected, nil
}
