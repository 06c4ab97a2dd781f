package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradepost/internal/domain"
)

func items(pairs ...[2]int) []domain.SaleItem {
	result := make([]domain.SaleItem, 0, len(pairs))
	for _, p := range pairs {
		result = append(result, domain.SaleItem{ProductID: p[0], Quantity: p[1]})
	}
	return result
}

func TestAggregateQuantities_SumsPerProduct(t *testing.T) {
	totals := AggregateQuantities(items([2]int{1, 3}, [2]int{2, 2}, [2]int{1, 1}))

	assert.Equal(t, map[int]int{1: 4, 2: 2}, totals)
}

func TestAggregateQuantities_Empty(t *testing.T) {
	assert.Empty(t, AggregateQuantities(nil))
}

func TestComputeDeltas_Identity(t *testing.T) {
	set := items([2]int{1, 3}, [2]int{2, 5})

	assert.Empty(t, ComputeDeltas(set, set))
}

func TestComputeDeltas_DeleteRestoresEverything(t *testing.T) {
	prev := items([2]int{1, 3}, [2]int{2, 2}, [2]int{1, 1})

	deltas := ComputeDeltas(prev, nil)

	assert.Equal(t, map[int]int{1: 4, 2: 2}, deltas)
}

func TestComputeDeltas_NewProductConsumes(t *testing.T) {
	prev := items([2]int{1, 3})
	next := items([2]int{1, 3}, [2]int{2, 4})

	deltas := ComputeDeltas(prev, next)

	assert.Equal(t, map[int]int{2: -4}, deltas)
}

func TestComputeDeltas_MixedDirections(t *testing.T) {
	prev := items([2]int{1, 5}, [2]int{2, 2}, [2]int{3, 1})
	next := items([2]int{1, 2}, [2]int{2, 6}, [2]int{4, 3})

	deltas := ComputeDeltas(prev, next)

	assert.Equal(t, map[int]int{1: 3, 2: -4, 3: 1, 4: -3}, deltas)
}

func TestComputeDeltas_PerProductDifference(t *testing.T) {
	prev := items([2]int{1, 3}, [2]int{2, 2}, [2]int{1, 2})
	next := items([2]int{1, 1}, [2]int{2, 7}, [2]int{3, 4})

	deltas := ComputeDeltas(prev, next)
	prevTotals := AggregateQuantities(prev)
	nextTotals := AggregateQuantities(next)

	for productID := range prevTotals {
		assert.Equal(t, prevTotals[productID]-nextTotals[productID], deltas[productID],
			"delta for product %d", productID)
	}
	for productID := range nextTotals {
		assert.Equal(t, prevTotals[productID]-nextTotals[productID], deltas[productID],
			"delta for product %d", productID)
	}
}

func TestComputeDeltas_SumMatchesTotalDifference(t *testing.T) {
	prev := items([2]int{1, 4}, [2]int{2, 6}, [2]int{3, 1})
	next := items([2]int{1, 1}, [2]int{4, 2})

	sum := 0
	for _, delta := range ComputeDeltas(prev, next) {
		sum += delta
	}

	assert.Equal(t, (4+6+1)-(1+2), sum)
}

func TestComputeDeltas_BothEmpty(t *testing.T) {
	assert.Empty(t, ComputeDeltas(nil, nil))
}
