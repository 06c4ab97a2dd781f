package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProduct_Creation(t *testing.T) {
	createdAt := time.Now()
	updatedAt := time.Now()

	product := Product{
		ID:          1,
		Name:        "Keyboard",
		Description: "Mechanical keyboard",
		Price:       decimal.NewFromFloat(49.99),
		Quantity:    25,
		MinQuantity: 5,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}

	assert.Equal(t, 1, product.ID)
	assert.Equal(t, "Keyboard", product.Name)
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(49.99)))
	assert.Equal(t, 25, product.Quantity)
	assert.Equal(t, 5, product.MinQuantity)
	assert.Equal(t, createdAt, product.CreatedAt)
	assert.Equal(t, updatedAt, product.UpdatedAt)
}

func TestProduct_BelowReorderLevel(t *testing.T) {
	assert.False(t, Product{Quantity: 10, MinQuantity: 5}.BelowReorderLevel())
	assert.True(t, Product{Quantity: 5, MinQuantity: 5}.BelowReorderLevel())
	assert.True(t, Product{Quantity: 0, MinQuantity: 5}.BelowReorderLevel())
	assert.True(t, Product{Quantity: 0, MinQuantity: 0}.BelowReorderLevel())
}
