package domain

import (
	"github.com/google/uuid"
)

// Variant is a product in a given size and mood, independent of owner and quantity.
type Variant struct {
	ProductID int64
	Size      string
	Mood      string
}

// LogicalKey identifies at most one line in storage.
type LogicalKey struct {
	Owner   Owner
	Variant Variant
}

type Line struct {
	ID       uuid.UUID
	Owner    Owner
	Variant  Variant
	Quantity int32
}

func (l Line) Key() LogicalKey {
	return LogicalKey{Owner: l.Owner, Variant: l.Variant}
}

type Product struct {
	ID    int64
	Name  string
	Image string
}
