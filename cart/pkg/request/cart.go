package request

import "github.com/google/uuid"

type AddCartItem struct {
	ProductID     int64  `validate:"required,gt=0"     json:"productId"`
	Size          string `validate:"required,max=32"   json:"size"`
	Mood          string `validate:"required,max=64"   json:"mood"`
	Quantity      int32  `validate:"required,gt=0"     json:"quantity"`
	PhoneCustomer string `validate:"omitempty,phone"   json:"phoneCustomer,omitempty"`
	SessionID     string `validate:"omitempty,max=128" json:"sessionId,omitempty"`
}

type UpdateCartItem struct {
	ID       uuid.UUID `validate:"-"               json:"-"`
	Quantity int32     `validate:"required,gt=0"   json:"quantity"`
	Size     string    `validate:"required,max=32" json:"size"`
	Mood     string    `validate:"required,max=64" json:"mood"`
}

// FindCart and ClearCart carry the optional owner query values; the service decides which one
// identifies the cart.
type FindCart struct {
	PhoneCustomer string `validate:"omitempty,phone"   json:"phoneCustomer"`
	SessionID     string `validate:"omitempty,max=128" json:"sessionId"`
}

type ClearCart struct {
	PhoneCustomer string `validate:"omitempty,phone"   json:"phoneCustomer"`
	SessionID     string `validate:"omitempty,max=128" json:"sessionId"`
}

type MigrateCart struct {
	SessionID     string `validate:"required,max=128" json:"sessionId"`
	PhoneCustomer string `validate:"required,phone"   json:"phoneCustomer"`
}
