package events

import "time"

// SaleCreatedEvent is published after a sale and its line items have been
// committed and stock decremented.
type SaleCreatedEvent struct {
	SaleID     uint
	UserID     int
	ItemCount  int
	OccurredAt time.Time
}

// SaleUpdatedEvent is published after a sale edit commits. ItemsReplaced
// is false when only header fields changed.
type SaleUpdatedEvent struct {
	SaleID        uint
	UserID        int
	ItemsReplaced bool
	OccurredAt    time.Time
}

// SaleDeletedEvent is published after a sale is removed. StockRestored is
// false when the caller opted out of restoration.
type SaleDeletedEvent struct {
	SaleID        uint
	UserID        int
	StockRestored bool
	OccurredAt    time.Time
}

// StockAdjustedEvent is published once per product whose on-hand quantity
// moved during a committed flow. Delta is positive for a restore and
// negative for a consumption.
type StockAdjustedEvent struct {
	ProductID  int
	Delta      int
	OccurredAt time.Time
}
