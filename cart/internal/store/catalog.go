package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Alturino/shoppingcart/cart/internal/domain"
	"github.com/Alturino/shoppingcart/internal/repository"
)

// PostgresCatalog reads products and their size prices. It implements Catalog and PriceResolver.
type PostgresCatalog struct {
	queries *repository.Queries
}

func NewPostgresCatalog(queries *repository.Queries) *PostgresCatalog {
	return &PostgresCatalog{queries: queries}
}

func (p *PostgresCatalog) FindProduct(c context.Context, id int64) (domain.Product, error) {
	row, err := p.queries.FindProductById(c, id)
	if err != nil {
		return domain.Product{}, notFound(err, "finding productId=%d", id)
	}
	return productFromRow(row), nil
}

func (p *PostgresCatalog) FindProducts(
	c context.Context,
	ids []int64,
) (map[int64]domain.Product, error) {
	products := make(map[int64]domain.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}
	rows, err := p.queries.FindProductsByIds(c, ids)
	if err != nil {
		return nil, fmt.Errorf("failed finding products with error=%w", err)
	}
	for _, row := range rows {
		products[row.ID] = productFromRow(row)
	}
	return products, nil
}

func (p *PostgresCatalog) UnitPrice(
	c context.Context,
	productID int64,
	size string,
) (decimal.Decimal, error) {
	price, err := p.queries.FindProductSizePrice(
		c,
		repository.FindProductSizePriceParams{ProductID: productID, SizeName: size},
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf(
			"failed finding price of productId=%d size=%s with error=%w",
			productID,
			size,
			err,
		)
	}
	return decimalFromNumeric(price), nil
}
