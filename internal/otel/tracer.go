package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Alturino/shoppingcart/internal/constants"
)

var Tracer = otel.Tracer(constants.APP_MAIN_CART)
