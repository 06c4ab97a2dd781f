package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSale_Creation(t *testing.T) {
	customerID := 42

	sale := Sale{
		ID:         1,
		UserID:     10,
		CustomerID: &customerID,
		Status:     SaleStatusPending,
		Subtotal:   decimal.NewFromFloat(100.00),
		Tax:        decimal.NewFromFloat(19.00),
		Total:      decimal.NewFromFloat(119.00),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	assert.Equal(t, uint(1), sale.ID)
	assert.Equal(t, 10, sale.UserID)
	assert.Equal(t, &customerID, sale.CustomerID)
	assert.Equal(t, SaleStatusPending, sale.Status)
	assert.True(t, sale.Total.Equal(sale.Subtotal.Add(sale.Tax)))
}

func TestSale_NullableCustomer(t *testing.T) {
	sale := Sale{ID: 2, UserID: 10, Status: SaleStatusCompleted}
	assert.Nil(t, sale.CustomerID)
}

func TestSale_StatusConstants(t *testing.T) {
	assert.Equal(t, "PENDING", SaleStatusPending)
	assert.Equal(t, "COMPLETED", SaleStatusCompleted)
	assert.Equal(t, "CANCELLED", SaleStatusCancelled)
}

func TestIsValidSaleStatus(t *testing.T) {
	assert.True(t, IsValidSaleStatus(SaleStatusPending))
	assert.True(t, IsValidSaleStatus(SaleStatusCompleted))
	assert.True(t, IsValidSaleStatus(SaleStatusCancelled))
	assert.False(t, IsValidSaleStatus("DRAFT"))
	assert.False(t, IsValidSaleStatus(""))
}

func TestSaleItem_LineTotal(t *testing.T) {
	item := SaleItem{
		ProductID: 7,
		Quantity:  3,
		UnitPrice: decimal.NewFromFloat(12.50),
	}

	assert.True(t, item.LineTotal().Equal(decimal.NewFromFloat(37.50)))
}

func TestSaleItem_LineTotal_ZeroQuantity(t *testing.T) {
	item := SaleItem{UnitPrice: decimal.NewFromFloat(9.99)}
	assert.True(t, item.LineTotal().IsZero())
}
