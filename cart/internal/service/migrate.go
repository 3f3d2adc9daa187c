package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alturino/shoppingcart/cart/internal/common/otel"
	"github.com/Alturino/shoppingcart/cart/internal/domain"
	"github.com/Alturino/shoppingcart/cart/internal/store"
	"github.com/Alturino/shoppingcart/cart/pkg/request"
	"github.com/Alturino/shoppingcart/cart/pkg/response"
	"github.com/Alturino/shoppingcart/internal/log"
	inOtel "github.com/Alturino/shoppingcart/internal/otel"
)

// MigrateCart moves every line of the session cart into the customer cart. A session line whose
// variant the customer already holds is merged into that line; any other line changes owner.
// Matching only considers customer lines that existed before the migration started. A second
// session line with an already handled variant is folded into the line the first one went to.
// Everything happens in one transaction holding both owners' locks, so a failure leaves both
// carts untouched and a retry is always safe.
func (s *CartService) MigrateCart(
	c context.Context,
	param request.MigrateCart,
) (response.Migration, error) {
	c, span := otel.Tracer.Start(c, "CartService MigrateCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService MigrateCart").
		Str(log.KeyProcess, "resolving owners").
		Logger()

	session, err := domain.SessionOwner(param.SessionID)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Migration{}, err
	}
	customer, err := domain.CustomerOwner(param.PhoneCustomer)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Migration{}, err
	}
	logger = logger.With().
		Str(log.KeySessionID, session.ID()).
		Str(log.KeyPhoneCustomer, customer.ID()).
		Str(log.KeyProcess, "migrating cart").
		Logger()

	logger.Info().Msg("migrating cart")
	var result response.Migration
	err = s.store.InTx(c, []domain.Owner{session, customer}, func(lines store.Lines) error {
		result = response.Migration{}
		return migrateLines(c, lines, session, customer, &result)
	})
	if err != nil {
		err = fmt.Errorf(
			"failed migrating cart of session=%s to customer=%s with error=%w",
			session.ID(),
			customer.ID(),
			err,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Migration{}, err
	}
	logger.Info().Any(log.KeyMigrationResult, result).Msg("migrated cart")

	s.recordMigration(c, result)
	c = logger.WithContext(c)
	s.invalidateCart(c, session, customer)

	return result, nil
}

func migrateLines(
	c context.Context,
	lines store.Lines,
	session, customer domain.Owner,
	result *response.Migration,
) error {
	sessionLines, err := lines.ListByOwner(c, session)
	if err != nil {
		return fmt.Errorf("failed listing session lines with error=%w", err)
	}
	customerLines, err := lines.ListByOwner(c, customer)
	if err != nil {
		return fmt.Errorf("failed listing customer lines with error=%w", err)
	}

	existing := make(map[domain.Variant]domain.Line, len(customerLines))
	for _, line := range customerLines {
		existing[line.Variant] = line
	}
	// landed holds, per variant, the customer line a session line of this run ended up in.
	landed := make(map[domain.Variant]domain.Line, len(sessionLines))

	absorb := func(target, from domain.Line) (domain.Line, error) {
		quantity, err := addQuantity(target.Quantity, from.Quantity)
		if err != nil {
			return domain.Line{}, err
		}
		target.Quantity = quantity
		saved, err := lines.Save(c, target)
		if err != nil {
			return domain.Line{}, fmt.Errorf(
				"failed saving cartItemId=%s with error=%w",
				target.ID,
				err,
			)
		}
		if _, err := lines.Delete(c, from.ID); err != nil {
			return domain.Line{}, fmt.Errorf(
				"failed deleting cartItemId=%s with error=%w",
				from.ID,
				err,
			)
		}
		return saved, nil
	}

	for _, line := range sessionLines {
		if target, ok := landed[line.Variant]; ok {
			if landed[line.Variant], err = absorb(target, line); err != nil {
				return err
			}
			result.Folded++
			continue
		}
		if target, ok := existing[line.Variant]; ok {
			if landed[line.Variant], err = absorb(target, line); err != nil {
				return err
			}
			result.Merged++
			continue
		}
		line.Owner = customer
		if landed[line.Variant], err = lines.Save(c, line); err != nil {
			return fmt.Errorf("failed transferring cartItemId=%s with error=%w", line.ID, err)
		}
		result.Transferred++
	}
	return nil
}

func (s *CartService) recordMigration(c context.Context, result response.Migration) {
	counts := []struct {
		outcome attribute.KeyValue
		count   int
	}{
		{otel.OutcomeMerged, result.Merged},
		{otel.OutcomeTransferred, result.Transferred},
		{otel.OutcomeFolded, result.Folded},
	}
	for _, count := range counts {
		if count.count > 0 {
			s.instruments.LinesMigrated.Add(
				c,
				int64(count.count),
				metric.WithAttributes(count.outcome),
			)
		}
	}
	s.instruments.Migrations.Add(c, 1)
}
