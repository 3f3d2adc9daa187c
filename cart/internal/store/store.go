// Package store persists cart lines and reads the product catalog the cart depends on.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/shoppingcart/cart/internal/domain"
)

// Lines is the durable set of cart lines. Lookups that match nothing return an error wrapping
// errors.ErrNotFound.
type Lines interface {
	FindByID(c context.Context, id uuid.UUID) (domain.Line, error)
	FindByKey(c context.Context, key domain.LogicalKey) (domain.Line, error)
	ListByOwner(c context.Context, owner domain.Owner) ([]domain.Line, error)
	Insert(c context.Context, line domain.Line) (domain.Line, error)
	Save(c context.Context, line domain.Line) (domain.Line, error)
	Delete(c context.Context, id uuid.UUID) (domain.Line, error)
	DeleteByOwner(c context.Context, owner domain.Owner) (int64, error)
}

type Store interface {
	Lines

	// InTx runs fn inside one transaction that holds an exclusive lock on every owner for its
	// whole duration. Nothing fn wrote survives when it returns an error.
	InTx(c context.Context, owners []domain.Owner, fn func(Lines) error) error
}

type Catalog interface {
	FindProduct(c context.Context, id int64) (domain.Product, error)
	// FindProducts omits ids that do not exist.
	FindProducts(c context.Context, ids []int64) (map[int64]domain.Product, error)
}

// PriceResolver returns decimal.Zero for a product size without a price.
type PriceResolver interface {
	UnitPrice(c context.Context, productID int64, size string) (decimal.Decimal, error)
}
