package orders

import "math"

func isProductOnSale(price float64, saleEnabled bool, salePrice float64) bool {
	return saleEnabled && salePrice > 0 && salePrice < price
}

// effectiveProductPrice is the authoritative unit price snapshotted into an
// order item. Client-supplied prices are never consulted.
func effectiveProductPrice(price float64, saleEnabled bool, salePrice float64) float64 {
	if isProductOnSale(price, saleEnabled, salePrice) {
		return salePrice
	}
	return price
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
