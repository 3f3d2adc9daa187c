package response

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartItemViewJSON(t *testing.T) {
	tests := []struct {
		name     string
		price    decimal.Decimal
		expected string
	}{
		{
			name:     "given whole price should marshal as number",
			price:    decimal.NewFromInt(35000),
			expected: `"price":35000`,
		},
		{
			name:     "given fractional price should marshal as number",
			price:    decimal.RequireFromString("12500.50"),
			expected: `"price":12500.5`,
		},
		{
			name:     "given zero price should marshal as number",
			price:    decimal.Zero,
			expected: `"price":0`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			view := CartItemView{ID: uuid.New(), Quantity: 1, ProductID: 1, Price: test.price}

			body, err := json.Marshal(view)
			require.NoError(t, err)
			assert.Contains(t, string(body), test.expected)

			var decoded CartItemView
			require.NoError(t, json.Unmarshal(body, &decoded))
			assert.True(t, test.price.Equal(decoded.Price))
		})
	}
}
