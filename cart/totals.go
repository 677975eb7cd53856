package cart

import "farm2home/models"

// CartCount is the total quantity across all rows, not the row count.
func CartCount(items []models.CartItem) int {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count
}

// TotalPrice sums unit price times quantity over the cart. Rows whose
// produce join is missing contribute zero rather than failing the sum.
func TotalPrice(items []models.CartItem) float64 {
	total := 0.0
	for _, it := range items {
		if it.Produce == nil {
			continue
		}
		total += it.Produce.Price * float64(it.Quantity)
	}
	return total
}
