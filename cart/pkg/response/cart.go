package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/shoppingcart/cart/internal/domain"
)

func init() {
	// prices go out as JSON numbers, e.g. "price":35000
	decimal.MarshalJSONWithoutQuotes = true
}

type CartItem struct {
	ID            uuid.UUID `json:"id"`
	SessionID     string    `json:"sessionId,omitempty"`
	PhoneCustomer string    `json:"phoneCustomer,omitempty"`
	ProductID     int64     `json:"productId"`
	Size          string    `json:"size"`
	Mood          string    `json:"mood"`
	Quantity      int32     `json:"quantity"`
}

func NewCartItem(line domain.Line) CartItem {
	item := CartItem{
		ID:        line.ID,
		ProductID: line.Variant.ProductID,
		Size:      line.Variant.Size,
		Mood:      line.Variant.Mood,
		Quantity:  line.Quantity,
	}
	if id, ok := line.Owner.SessionID(); ok {
		item.SessionID = id
	}
	if phone, ok := line.Owner.Phone(); ok {
		item.PhoneCustomer = phone
	}
	return item
}

// CartItemView is one display row of a cart.
type CartItemView struct {
	ID        uuid.UUID       `json:"id"`
	Quantity  int32           `json:"quantity"`
	Size      string          `json:"size"`
	Mood      string          `json:"mood"`
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
}

type Migration struct {
	Merged      int `json:"merged"`
	Transferred int `json:"transferred"`
	Folded      int `json:"folded"`
}
