package store

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/Alturino/shoppingcart/cart/internal/domain"
	"github.com/Alturino/shoppingcart/internal/repository"
)

// ownerColumns collapses the owner into the nullable columns of cart_items.
func ownerColumns(owner domain.Owner) (sessionID pgtype.Text, phoneCustomer pgtype.Text) {
	if id, ok := owner.SessionID(); ok {
		sessionID = pgtype.Text{String: id, Valid: true}
	}
	if phone, ok := owner.Phone(); ok {
		phoneCustomer = pgtype.Text{String: phone, Valid: true}
	}
	return sessionID, phoneCustomer
}

func lineFromRow(row repository.CartItem) (domain.Line, error) {
	var (
		owner domain.Owner
		err   error
	)
	switch {
	case row.SessionID.Valid && !row.PhoneCustomer.Valid:
		owner, err = domain.SessionOwner(row.SessionID.String)
	case row.PhoneCustomer.Valid && !row.SessionID.Valid:
		owner, err = domain.CustomerOwner(row.PhoneCustomer.String)
	default:
		err = fmt.Errorf("cartItemId=%s does not have exactly one owner", row.ID)
	}
	if err != nil {
		return domain.Line{}, err
	}
	return domain.Line{
		ID:    row.ID,
		Owner: owner,
		Variant: domain.Variant{
			ProductID: row.ProductID,
			Size:      row.Size,
			Mood:      row.Mood,
		},
		Quantity: row.Quantity,
	}, nil
}

func linesFromRows(rows []repository.CartItem) ([]domain.Line, error) {
	lines := make([]domain.Line, 0, len(rows))
	for _, row := range rows {
		line, err := lineFromRow(row)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func productFromRow(row repository.Product) domain.Product {
	return domain.Product{ID: row.ID, Name: row.Name, Image: row.Image}
}

func decimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.NaN || n.Int == nil || n.InfinityModifier != pgtype.Finite {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
