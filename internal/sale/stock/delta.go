package stock

import "tradepost/internal/domain"

// AggregateQuantities sums line-item quantities per product id. A sale may
// carry several lines for the same product; stock movement always works on
// the aggregated totals.
func AggregateQuantities(items []domain.SaleItem) map[int]int {
	totals := make(map[int]int, len(items))
	for _, item := range items {
		totals[item.ProductID] += item.Quantity
	}
	return totals
}

// ComputeDeltas returns the net per-product stock change required to move
// a sale from its previous line-item set to the next one. A positive delta
// restores stock (fewer units committed than before), a negative delta
// consumes it. Products whose committed quantity is unchanged are omitted.
//
// Both the update path (previous vs. edited items) and the delete path
// (previous vs. nothing) are driven by this function.
func ComputeDeltas(previous, next []domain.SaleItem) map[int]int {
	prevTotals := AggregateQuantities(previous)
	nextTotals := AggregateQuantities(next)

	deltas := make(map[int]int)
	for productID, prevQty := range prevTotals {
		if delta := prevQty - nextTotals[productID]; delta != 0 {
			deltas[productID] = delta
		}
	}
	for productID, nextQty := range nextTotals {
		if _, seen := prevTotals[productID]; !seen && nextQty != 0 {
			deltas[productID] = -nextQty
		}
	}
	return deltas
}
