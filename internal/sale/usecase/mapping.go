package usecase

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tradepost/internal/domain"
	"tradepost/internal/dto"
	"tradepost/internal/events"
)

func buildSaleItems(reqItems []dto.SaleItemRequest) []domain.SaleItem {
	items := make([]domain.SaleItem, len(reqItems))
	for i, r := range reqItems {
		item := domain.SaleItem{
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			UnitPrice: r.UnitPrice,
		}
		item.TotalPrice = item.LineTotal()
		items[i] = item
	}
	return items
}

func computeTotals(items []domain.SaleItem, taxRate decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	tax = subtotal.Mul(taxRate).Round(2)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

func buildSaleResponse(sale *domain.Sale, items []domain.SaleItem) *dto.SaleResponse {
	itemDTOs := make([]dto.SaleItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = dto.SaleItemDTO{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}

	return &dto.SaleResponse{
		ID:         sale.ID,
		UserID:     sale.UserID,
		CustomerID: sale.CustomerID,
		Status:     sale.Status,
		Subtotal:   sale.Subtotal,
		Tax:        sale.Tax,
		Total:      sale.Total,
		Items:      itemDTOs,
		CreatedAt:  sale.CreatedAt,
		UpdatedAt:  sale.UpdatedAt,
	}
}

func buildStockCheckResponse(result *dto.StockCheckResult, forUpdate bool) *dto.StockCheckResponse {
	shortfalls := make([]dto.ShortfallDTO, len(result.Shortfalls))
	for i, s := range result.Shortfalls {
		shortfalls[i] = dto.ShortfallDTO{
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			Requested:   s.Requested,
			Available:   s.Available,
		}
		if forUpdate {
			additional := s.AdditionalNeeded
			shortfalls[i].AdditionalNeeded = &additional
		}
	}

	return &dto.StockCheckResponse{
		OK:         result.OK,
		Shortfalls: shortfalls,
		Timestamp:  time.Now().UTC(),
	}
}

// publishStockEvents emits one StockAdjustedEvent per moved product, in
// ascending product-id order so consumers see a stable sequence.
func publishStockEvents(bus EventPublisher, deltas map[int]int, occurredAt time.Time) {
	productIDs := make([]int, 0, len(deltas))
	for productID := range deltas {
		productIDs = append(productIDs, productID)
	}
	sort.Ints(productIDs)

	for _, productID := range productIDs {
		bus.Publish(events.StockAdjustedEvent{
			ProductID:  productID,
			Delta:      deltas[productID],
			OccurredAt: occurredAt,
		})
	}
}
