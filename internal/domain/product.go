package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
	MinQuantity int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BelowReorderLevel reports whether on-hand stock has fallen to or under
// the reorder threshold. Informational only; it is never enforced as a
// floor on adjustments.
func (p Product) BelowReorderLevel() bool {
	return p.Quantity <= p.MinQuantity
}
