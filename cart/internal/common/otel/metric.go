package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/Alturino/shoppingcart/internal/constants"
)

const KeyOutcome = "outcome"

var (
	OutcomeCreated     = attribute.String(KeyOutcome, "created")
	OutcomeAccumulated = attribute.String(KeyOutcome, "accumulated")
	OutcomeMerged      = attribute.String(KeyOutcome, "merged")
	OutcomeTransferred = attribute.String(KeyOutcome, "transferred")
	OutcomeFolded      = attribute.String(KeyOutcome, "folded")
)

type Instruments struct {
	LinesAdded    metric.Int64Counter
	LinesMigrated metric.Int64Counter
	Migrations    metric.Int64Counter
}

// NewInstruments registers the cart instruments on the global meter provider, which stays a
// no-op until the otel sdk is initialized.
func NewInstruments() Instruments {
	instruments, err := newInstruments(otel.Meter(constants.APP_CART_SERVICE))
	if err != nil {
		instruments, _ = newInstruments(noop.NewMeterProvider().Meter(constants.APP_CART_SERVICE))
	}
	return instruments
}

func newInstruments(meter metric.Meter) (Instruments, error) {
	linesAdded, err := meter.Int64Counter(
		"cart.lines.added",
		metric.WithDescription("add-to-cart calls by whether a line was created or accumulated"),
	)
	if err != nil {
		return Instruments{}, err
	}
	linesMigrated, err := meter.Int64Counter(
		"cart.lines.migrated",
		metric.WithDescription("session lines moved into a customer cart by outcome"),
	)
	if err != nil {
		return Instruments{}, err
	}
	migrations, err := meter.Int64Counter(
		"cart.migrations",
		metric.WithDescription("completed session to customer migrations"),
	)
	if err != nil {
		return Instruments{}, err
	}
	return Instruments{
		LinesAdded:    linesAdded,
		LinesMigrated: linesMigrated,
		Migrations:    migrations,
	}, nil
}
