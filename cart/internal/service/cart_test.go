package service

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/shoppingcart/cart/internal/domain"
	"github.com/Alturino/shoppingcart/cart/internal/store/storetest"
	"github.com/Alturino/shoppingcart/cart/pkg/request"
	inErrors "github.com/Alturino/shoppingcart/internal/errors"
)

func TestAddCartItem(t *testing.T) {
	tests := []struct {
		name             string
		seed             func(t *testing.T) []domain.Line
		adds             []request.AddCartItem
		expectedErr      error
		expectedLines    int
		expectedQuantity int32
	}{
		{
			name: "given empty cart should create one line",
			adds: []request.AddCartItem{
				{ProductID: 1, Size: "M", Mood: "sweet", Quantity: 2, SessionID: testSession},
			},
			expectedLines:    1,
			expectedQuantity: 2,
		},
		{
			name: "given same variant added twice should accumulate into one line",
			adds: []request.AddCartItem{
				{ProductID: 1, Size: "M", Mood: "sweet", Quantity: 2, SessionID: testSession},
				{ProductID: 1, Size: "M", Mood: "sweet", Quantity: 3, SessionID: testSession},
			},
			expectedLines:    1,
			expectedQuantity: 5,
		},
		{
			name: "given both owners should add to the customer cart",
			adds: []request.AddCartItem{
				{
					ProductID:     1,
					Size:          "M",
					Mood:          "sweet",
					Quantity:      1,
					SessionID:     testSession,
					PhoneCustomer: testCustomer,
				},
				{ProductID: 1, Size: "M", Mood: "sweet", Quantity: 1, PhoneCustomer: testCustomer},
			},
			expectedLines:    1,
			expectedQuantity: 2,
		},
		{
			name: "given missing product should return not found before checking owner",
			adds: []request.AddCartItem{
				{ProductID: 99, Size: "M", Mood: "sweet", Quantity: 1},
			},
			expectedErr: inErrors.ErrNotFound,
		},
		{
			name: "given no owner should return invalid argument",
			adds: []request.AddCartItem{
				{ProductID: 1, Size: "M", Mood: "sweet", Quantity: 1},
			},
			expectedErr: inErrors.ErrInvalidArgument,
		},
		{
			name: "given non positive quantity should return invalid argument",
			adds: []request.AddCartItem{
				{ProductID: 1, Size: "M", Mood: "sweet", Quantity: 0, SessionID: testSession},
			},
			expectedErr: inErrors.ErrInvalidArgument,
		},
		{
			name: "given quantity overflow should return invalid argument and keep the line",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{{
					Owner:    sessionOwner(t),
					Variant:  domain.Variant{ProductID: 1, Size: "M", Mood: "sweet"},
					Quantity: math.MaxInt32,
				}}
			},
			adds: []request.AddCartItem{
				{ProductID: 1, Size: "M", Mood: "sweet", Quantity: 1, SessionID: testSession},
			},
			expectedErr:      inErrors.ErrInvalidArgument,
			expectedLines:    1,
			expectedQuantity: math.MaxInt32,
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

			var err error
			for _, add := range test.adds {
				_, err = svc.AddCartItem(c, add)
			}
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
			} else {
				require.NoError(t, err)
			}

			lines := memory.All()
			assert.Len(t, lines, test.expectedLines)
			if test.expectedLines > 0 {
				assert.Equal(t, test.expectedQuantity, lines[0].Quantity)
			}
		})
	}
}

func TestAddCartItemReturnsLine(t *testing.T) {
	c := testContext()
	_, svc := setup(t)(c)

	first, err := svc.AddCartItem(
		c,
		request.AddCartItem{ProductID: 2, Size: "L", Mood: "spicy", Quantity: 1, PhoneCustomer: testCustomer},
	)
	require.NoError(t, err)
	second, err := svc.AddCartItem(
		c,
		request.AddCartItem{ProductID: 2, Size: "L", Mood: "spicy", Quantity: 4, PhoneCustomer: testCustomer},
	)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int32(5), second.Quantity)
	assert.Equal(t, testCustomer, second.PhoneCustomer)
	assert.Empty(t, second.SessionID)
}

func TestAddCartItemDistinctVariants(t *testing.T) {
	c := testContext()
	memory, svc := setup(t)(c)

	adds := []request.AddCartItem{
		{ProductID: 1, Size: "M", Mood: "sweet", Quantity: 1, SessionID: testSession},
		{ProductID: 1, Size: "L", Mood: "sweet", Quantity: 1, SessionID: testSession},
		{ProductID: 1, Size: "M", Mood: "spicy", Quantity: 1, SessionID: testSession},
		{ProductID: 2, Size: "M", Mood: "sweet", Quantity: 1, SessionID: testSession},
		{ProductID: 1, Size: "M", Mood: "sweet", Quantity: 1, SessionID: "s2"},
		{ProductID: 1, Size: "M", Mood: "sweet", Quantity: 1, PhoneCustomer: testCustomer},
	}
	for _, add := range adds {
		_, err := svc.AddCartItem(c, add)
		require.NoError(t, err)
	}

	assert.Len(t, memory.All(), len(adds))
}

func TestAddCartItemRollback(t *testing.T) {
	c := testContext()
	memory, svc := setup(t)(c)
	memory.FailOn(storetest.OpInsert, 1, errors.New("connection reset"))

	_, err := svc.AddCartItem(
		c,
		request.AddCartItem{ProductID: 1, Size: "M", Mood: "sweet", Quantity: 1, SessionID: testSession},
	)

	assert.Error(t, err)
	assert.Empty(t, memory.All())
}

func TestUpdateCartItem(t *testing.T) {
	sweetM := domain.Variant{ProductID: 1, Size: "M", Mood: "sweet"}
	sweetL := domain.Variant{ProductID: 1, Size: "L", Mood: "sweet"}

	tests := []struct {
		name        string
		seed        func(t *testing.T) []domain.Line
		param       func(seeded []domain.Line) request.UpdateCartItem
		expectedErr error
		expected    func(t *testing.T, seeded []domain.Line, lines []domain.Line, updatedID uuid.UUID)
	}{
		{
			name: "given existing line should replace quantity size and mood",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{{Owner: sessionOwner(t), Variant: sweetM, Quantity: 2}}
			},
			param: func(seeded []domain.Line) request.UpdateCartItem {
				return request.UpdateCartItem{ID: seeded[0].ID, Quantity: 7, Size: "L", Mood: "spicy"}
			},
			expected: func(t *testing.T, seeded []domain.Line, lines []domain.Line, updatedID uuid.UUID) {
				require.Len(t, lines, 1)
				assert.Equal(t, seeded[0].ID, updatedID)
				assert.Equal(t, int32(7), lines[0].Quantity)
				assert.Equal(t, domain.Variant{ProductID: 1, Size: "L", Mood: "spicy"}, lines[0].Variant)
				assert.Equal(t, seeded[0].Owner, lines[0].Owner)
			},
		},
		{
			name: "given same variant should only replace quantity",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{{Owner: sessionOwner(t), Variant: sweetM, Quantity: 2}}
			},
			param: func(seeded []domain.Line) request.UpdateCartItem {
				return request.UpdateCartItem{ID: seeded[0].ID, Quantity: 1, Size: "M", Mood: "sweet"}
			},
			expected: func(t *testing.T, seeded []domain.Line, lines []domain.Line, updatedID uuid.UUID) {
				require.Len(t, lines, 1)
				assert.Equal(t, int32(1), lines[0].Quantity)
			},
		},
		{
			name: "given colliding variant should merge into the other line",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{
					{Owner: sessionOwner(t), Variant: sweetM, Quantity: 2},
					{Owner: sessionOwner(t), Variant: sweetL, Quantity: 5},
				}
			},
			param: func(seeded []domain.Line) request.UpdateCartItem {
				return request.UpdateCartItem{ID: seeded[0].ID, Quantity: 3, Size: "L", Mood: "sweet"}
			},
			expected: func(t *testing.T, seeded []domain.Line, lines []domain.Line, updatedID uuid.UUID) {
				require.Len(t, lines, 1)
				assert.Equal(t, seeded[1].ID, updatedID)
				assert.Equal(t, seeded[1].ID, lines[0].ID)
				assert.Equal(t, int32(8), lines[0].Quantity)
			},
		},
		{
			name: "given colliding variant of another owner should not merge",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{
					{Owner: sessionOwner(t), Variant: sweetM, Quantity: 2},
					{Owner: customerOwner(t), Variant: sweetL, Quantity: 5},
				}
			},
			param: func(seeded []domain.Line) request.UpdateCartItem {
				return request.UpdateCartItem{ID: seeded[0].ID, Quantity: 3, Size: "L", Mood: "sweet"}
			},
			expected: func(t *testing.T, seeded []domain.Line, lines []domain.Line, updatedID uuid.UUID) {
				require.Len(t, lines, 2)
				assert.Equal(t, seeded[0].ID, updatedID)
				assert.Equal(t, int32(3), lines[0].Quantity)
				assert.Equal(t, int32(5), lines[1].Quantity)
			},
		},
		{
			name: "given unknown id should return not found",
			param: func(seeded []domain.Line) request.UpdateCartItem {
				return request.UpdateCartItem{ID: uuid.New(), Quantity: 1, Size: "M", Mood: "sweet"}
			},
			expectedErr: inErrors.ErrNotFound,
		},
		{
			name: "given non positive quantity should return invalid argument",
			seed: func(t *testing.T) []domain.Line {
				return []domain.Line{{Owner: sessionOwner(t), Variant: sweetM, Quantity: 2}}
			},
			param: func(seeded []domain.Line) request.UpdateCartItem {
				return request.UpdateCartItem{ID: seeded[0].ID, Quantity: 0, Size: "M", Mood: "sweet"}
			},
			expectedErr: inErrors.ErrInvalidArgument,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := testContext()
			memory := storetest.NewMemory()
			var seeded []domain.Line
			if test.seed != nil {
				seeded = memory.Seed(test.seed(t)...)
			}
			catalog := newCatalog()
			svc := NewCartService(memory, catalog, catalog, nil)

			updated, err := svc.UpdateCartItem(c, test.param(seeded))
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}
			require.NoError(t, err)
			test.expected(t, seeded, memory.All(), updated.ID)
		})
	}
}

func TestUpdateCartItemMergeRollback(t *testing.T) {
	c := testContext()
	memory := storetest.NewMemory()
	seeded := memory.Seed(
		domain.Line{
			Owner:    sessionOwner(t),
			Variant:  domain.Variant{ProductID: 1, Size: "M", Mood: "sweet"},
			Quantity: 2,
		},
		domain.Line{
			Owner:    sessionOwner(t),
			Variant:  domain.Variant{ProductID: 1, Size: "L", Mood: "sweet"},
			Quantity: 5,
		},
	)
	memory.FailOn(storetest.OpDelete, 1, errors.New("connection reset"))
	catalog := newCatalog()
	svc := NewCartService(memory, catalog, catalog, nil)

	_, err := svc.UpdateCartItem(
		c,
		request.UpdateCartItem{ID: seeded[0].ID, Quantity: 3, Size: "L", Mood: "sweet"},
	)

	assert.Error(t, err)
	assert.Equal(t, seeded, memory.All())
}

func TestRemoveCartItem(t *testing.T) {
	c := testContext()
	memory := storetest.NewMemory()
	seeded := memory.Seed(domain.Line{
		Owner:    sessionOwner(t),
		Variant:  domain.Variant{ProductID: 1, Size: "M", Mood: "sweet"},
		Quantity: 2,
	})
	catalog := newCatalog()
	svc := NewCartService(memory, catalog, catalog, nil)

	require.NoError(t, svc.RemoveCartItem(c, seeded[0].ID))
	assert.Empty(t, memory.All())

	err := svc.RemoveCartItem(c, seeded[0].ID)
	assert.ErrorIs(t, err, inErrors.ErrNotFound)
}

func TestClearCart(t *testing.T) {
	tests := []struct {
		name            string
		param           request.ClearCart
		expectedErr     error
		expectedKind    domain.OwnerKind
		expectedDeleted int64
		expectedLeft    int
	}{
		{
			name:            "given session should clear only the session cart",
			param:           request.ClearCart{SessionID: testSession},
			expectedKind:    domain.OwnerSession,
			expectedDeleted: 2,
			expectedLeft:    1,
		},
		{
			name:            "given both owners should clear the customer cart",
			param:           request.ClearCart{SessionID: testSession, PhoneCustomer: testCustomer},
			expectedKind:    domain.OwnerCustomer,
			expectedDeleted: 1,
			expectedLeft:    2,
		},
		{
			name:            "given empty cart should succeed",
			param:           request.ClearCart{SessionID: "unknown"},
			expectedKind:    domain.OwnerSession,
			expectedDeleted: 0,
			expectedLeft:    3,
		},
		{
			name:         "given no owner should return invalid argument",
			param:        request.ClearCart{},
			expectedErr:  inErrors.ErrInvalidArgument,
			expectedLeft: 3,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := testContext()
			memory, svc := setup(t)(
				c,
				domain.Line{
					Owner:    sessionOwner(t),
					Variant:  domain.Variant{ProductID: 1, Size: "M", Mood: "sweet"},
					Quantity: 1,
				},
				domain.Line{
					Owner:    sessionOwner(t),
					Variant:  domain.Variant{ProductID: 2, Size: "L", Mood: "sweet"},
					Quantity: 1,
				},
				domain.Line{
					Owner:    customerOwner(t),
					Variant:  domain.Variant{ProductID: 1, Size: "M", Mood: "sweet"},
					Quantity: 1,
				},
			)

			owner, deleted, err := svc.ClearCart(c, test.param)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.expectedKind, owner.Kind())
				assert.Equal(t, test.expectedDeleted, deleted)
			}
			assert.Len(t, memory.All(), test.expectedLeft)
		})
	}
}

func TestClearCartTwice(t *testing.T) {
	c := testContext()
	memory, svc := setup(t)(
		c,
		domain.Line{
			Owner:    sessionOwner(t),
			Variant:  domain.Variant{ProductID: 1, Size: "M", Mood: "sweet"},
			Quantity: 1,
		},
		domain.Line{
			Owner:    customerOwner(t),
			Variant:  domain.Variant{ProductID: 1, Size: "M", Mood: "sweet"},
			Quantity: 1,
		},
	)
	param := request.ClearCart{SessionID: testSession}

	_, deleted, err := svc.ClearCart(c, param)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	owner, deleted, err := svc.ClearCart(c, param)
	require.NoError(t, err)
	assert.Equal(t, sessionOwner(t), owner)
	assert.Equal(t, int64(0), deleted)
	assert.Len(t, memory.All(), 1)
}
