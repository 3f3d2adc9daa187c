package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/shoppingcart/cart/internal/domain"
	"github.com/Alturino/shoppingcart/cart/internal/store/storetest"
	"github.com/Alturino/shoppingcart/cart/pkg/request"
	"github.com/Alturino/shoppingcart/cart/pkg/response"
	inErrors "github.com/Alturino/shoppingcart/internal/errors"
)

var (
	sweetM = domain.Variant{ProductID: 1, Size: "M", Mood: "sweet"}
	spicyL = domain.Variant{ProductID: 2, Size: "L", Mood: "spicy"}
	sweetL = domain.Variant{ProductID: 1, Size: "L", Mood: "sweet"}
)

func TestMigrateCart(t *testing.T) {
	tests := []struct {
		name               string
		seed               func(t *testing.T) []domain.Line
		param              request.MigrateCart
		expectedErr        error
		expectedResult     response.Migration
		expectedQuantities map[domain.Variant]int32
		expectedLines      int
	}{
		{
			name: "given matching customer line should merge quantities",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{
					{Owner: sessionOwner(t), Variant: sweetM, Quantity: 2},
					{Owner: customerOwner(t), Variant: sweetM, Quantity: 5},
				}
			},
			param:              request.MigrateCart{SessionID: testSession, PhoneCustomer: testCustomer},
			expectedResult:     response.Migration{Merged: 1},
			expectedQuantities: map[domain.Variant]int32{sweetM: 7},
			expectedLines:      1,
		},
		{
			name: "given no matching customer line should transfer the line",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{{Owner: sessionOwner(t), Variant: spicyL, Quantity: 1}}
			},
			param:              request.MigrateCart{SessionID: testSession, PhoneCustomer: testCustomer},
			expectedResult:     response.Migration{Transferred: 1},
			expectedQuantities: map[domain.Variant]int32{spicyL: 1},
			expectedLines:      1,
		},
		{
			name: "given mixed lines should merge, transfer and keep untouched customer lines",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{
					{Owner: sessionOwner(t), Variant: sweetM, Quantity: 2},
					{Owner: sessionOwner(t), Variant: spicyL, Quantity: 1},
					{Owner: customerOwner(t), Variant: sweetM, Quantity: 5},
					{Owner: customerOwner(t), Variant: sweetL, Quantity: 4},
				}
			},
			param:              request.MigrateCart{SessionID: testSession, PhoneCustomer: testCustomer},
			expectedResult:     response.Migration{Merged: 1, Transferred: 1},
			expectedQuantities: map[domain.Variant]int32{sweetM: 7, spicyL: 1, sweetL: 4},
			expectedLines:      3,
		},
		{
			name: "given empty session cart should change nothing",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{{Owner: customerOwner(t), Variant: sweetM, Quantity: 5}}
			},
			param:              request.MigrateCart{SessionID: testSession, PhoneCustomer: testCustomer},
			expectedResult:     response.Migration{},
			expectedQuantities: map[domain.Variant]int32{sweetM: 5},
			expectedLines:      1,
		},
		{
			name: "given duplicate session lines matching a customer line should fold into it",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{
					{Owner: sessionOwner(t), Variant: sweetM, Quantity: 2},
					{Owner: sessionOwner(t), Variant: sweetM, Quantity: 3},
					{Owner: customerOwner(t), Variant: sweetM, Quantity: 5},
				}
			},
			param:              request.MigrateCart{SessionID: testSession, PhoneCustomer: testCustomer},
			expectedResult:     response.Migration{Merged: 1, Folded: 1},
			expectedQuantities: map[domain.Variant]int32{sweetM: 10},
			expectedLines:      1,
		},
		{
			name: "given duplicate session lines without customer line should fold into the transferred one",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{
					{Owner: sessionOwner(t), Variant: spicyL, Quantity: 1},
					{Owner: sessionOwner(t), Variant: spicyL, Quantity: 2},
				}
			},
			param:              request.MigrateCart{SessionID: testSession, PhoneCustomer: testCustomer},
			expectedResult:     response.Migration{Transferred: 1, Folded: 1},
			expectedQuantities: map[domain.Variant]int32{spicyL: 3},
			expectedLines:      1,
		},
		{
			name:        "given empty session id should return invalid argument",
			param:       request.MigrateCart{PhoneCustomer: testCustomer},
			expectedErr: inErrors.ErrInvalidArgument,
		},
		{
			name:        "given empty phone should return invalid argument",
			param:       request.MigrateCart{SessionID: testSession},
			expectedErr: inErrors.ErrInvalidArgument,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := testContext()
			var seed []domain.Line
			if test.seed != nil {
				seed = test.seed(t)
			}
			memory, svc := setup(t)(c, seed...)

			result, err := svc.MigrateCart(c, test.param)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expectedResult, result)

			all := memory.All()
			assert.Empty(t, linesOf(all, sessionOwner(t)))
			customerLines := linesOf(all, customerOwner(t))
			assert.Len(t, customerLines, test.expectedLines)
			assert.Equal(t, test.expectedQuantities, quantities(customerLines))

			keys := map[domain.LogicalKey]struct{}{}
			for _, line := range customerLines {
				_, duplicate := keys[line.Key()]
				assert.False(t, duplicate, "duplicate logical key %v", line.Key())
				keys[line.Key()] = struct{}{}
			}
		})
	}
}

func TestMigrateCartKeepsTransferredLineID(t *testing.T) {
	c := testContext()
	memory, svc := setup(t)(c)
	seeded := memory.Seed(domain.Line{Owner: sessionOwner(t), Variant: spicyL, Quantity: 1})

	_, err := svc.MigrateCart(
		c,
		request.MigrateCart{SessionID: testSession, PhoneCustomer: testCustomer},
	)
	require.NoError(t, err)

	all := memory.All()
	require.Len(t, all, 1)
	assert.Equal(t, seeded[0].ID, all[0].ID)
	assert.Equal(t, customerOwner(t), all[0].Owner)
}

func TestMigrateCartIsIdempotent(t *testing.T) {
	c := testContext()
	memory, svc := setup(t)(
		c,
		domain.Line{Owner: sessionOwner(t), Variant: sweetM, Quantity: 2},
		domain.Line{Owner: customerOwner(t), Variant: sweetM, Quantity: 5},
	)
	param := request.MigrateCart{SessionID: testSession, PhoneCustomer: testCustomer}

	_, err := svc.MigrateCart(c, param)
	require.NoError(t, err)
	result, err := svc.MigrateCart(c, param)
	require.NoError(t, err)

	assert.Equal(t, response.Migration{}, result)
	assert.Equal(t, map[domain.Variant]int32{sweetM: 7}, quantities(memory.All()))
}

func TestMigrateCartRollback(t *testing.T) {
	tests := []struct {
		name string
		op   storetest.Op
		nth  int
	}{
		{name: "given failing merge save should roll back", op: storetest.OpSave, nth: 1},
		{name: "given failing merge delete should roll back", op: storetest.OpDelete, nth: 1},
		{name: "given failing later transfer should roll back earlier merge", op: storetest.OpSave, nth: 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := testContext()
			memory, svc := setup(t)(c)
			seeded := memory.Seed(
				domain.Line{Owner: sessionOwner(t), Variant: sweetM, Quantity: 2},
				domain.Line{Owner: sessionOwner(t), Variant: spicyL, Quantity: 1},
				domain.Line{Owner: customerOwner(t), Variant: sweetM, Quantity: 5},
			)
			memory.FailOn(test.op, test.nth, errors.New("connection reset"))

			_, err := svc.MigrateCart(
				c,
				request.MigrateCart{SessionID: testSession, PhoneCustomer: testCustomer},
			)

			assert.Error(t, err)
			assert.Equal(t, seeded, memory.All())
		})
	}
}
