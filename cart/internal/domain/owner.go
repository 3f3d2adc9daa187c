package domain

import (
	"fmt"
	"strings"

	inErrors "github.com/Alturino/shoppingcart/internal/errors"
)

type OwnerKind uint8

const (
	OwnerSession OwnerKind = iota + 1
	OwnerCustomer
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerSession:
		return "session"
	case OwnerCustomer:
		return "customer"
	default:
		return "unknown"
	}
}

// Owner is the identity a cart line belongs to: either an anonymous session or a customer
// identified by phone number. The zero value owns nothing.
type Owner struct {
	kind OwnerKind
	id   string
}

func SessionOwner(sessionID string) (Owner, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Owner{}, fmt.Errorf("%w: sessionId is required", inErrors.ErrInvalidArgument)
	}
	return Owner{kind: OwnerSession, id: sessionID}, nil
}

func CustomerOwner(phone string) (Owner, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Owner{}, fmt.Errorf("%w: phoneCustomer is required", inErrors.ErrInvalidArgument)
	}
	return Owner{kind: OwnerCustomer, id: phone}, nil
}

// OwnerFrom resolves the owner of a request carrying optional identities. The customer wins when
// both are present.
func OwnerFrom(phoneCustomer, sessionID string) (Owner, error) {
	if strings.TrimSpace(phoneCustomer) != "" {
		return CustomerOwner(phoneCustomer)
	}
	if strings.TrimSpace(sessionID) != "" {
		return SessionOwner(sessionID)
	}
	return Owner{}, fmt.Errorf(
		"%w: phoneCustomer or sessionId is required",
		inErrors.ErrInvalidArgument,
	)
}

func (o Owner) Kind() OwnerKind { return o.kind }

func (o Owner) ID() string { return o.id }

func (o Owner) IsZero() bool { return o.kind == 0 }

func (o Owner) IsSession() bool { return o.kind == OwnerSession }

func (o Owner) IsCustomer() bool { return o.kind == OwnerCustomer }

// SessionID returns the session id and true when o is a session owner.
func (o Owner) SessionID() (string, bool) {
	return o.id, o.kind == OwnerSession
}

// Phone returns the phone number and true when o is a customer owner.
func (o Owner) Phone() (string, bool) {
	return o.id, o.kind == OwnerCustomer
}

// String is stable and unique per owner; it keys locks and cache entries.
func (o Owner) String() string {
	return o.kind.String() + ":" + o.id
}
