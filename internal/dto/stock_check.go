package dto

// Shortfall reports one product whose available stock cannot cover a
// requested draw. AdditionalNeeded is only meaningful for update checks:
// it is the incremental amount over what the sale already holds that
// cannot be satisfied.
type Shortfall struct {
	ProductID        int
	ProductName      string
	Requested        int
	Available        int
	AdditionalNeeded int
}

// StockCheckResult is a normal return value, not an error: running out of
// stock is an expected outcome the UI renders as actionable feedback.
type StockCheckResult struct {
	OK         bool
	Shortfalls []Shortfall
}
