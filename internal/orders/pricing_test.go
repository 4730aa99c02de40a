package orders

import "testing"

func TestEffectiveProductPriceUsesSalePriceWhenOnSale(t *testing.T) {
	if got := effectiveProductPrice(100, true, 75); got != 75 {
		t.Fatalf("expected sale price 75, got %v", got)
	}
	if got := effectiveProductPrice(100, false, 75); got != 100 {
		t.Fatalf("expected regular price 100 when sale disabled, got %v", got)
	}
}

func TestEffectiveProductPriceIgnoresInvalidSale(t *testing.T) {
	// A sale price at or above the regular price is not a sale.
	if got := effectiveProductPrice(100, true, 100); got != 100 {
		t.Fatalf("expected regular price, got %v", got)
	}
	if got := effectiveProductPrice(100, true, 0); got != 100 {
		t.Fatalf("expected regular price when salePrice is zero, got %v", got)
	}
}

func TestIsProductOnSale(t *testing.T) {
	if !isProductOnSale(100, true, 80) {
		t.Fatal("expected product to be on sale")
	}
	if isProductOnSale(100, false, 80) {
		t.Fatal("expected product not on sale when disabled")
	}
}

func TestRound2(t *testing.T) {
	if got := round2(5.559747); got != 5.56 {
		t.Fatalf("expected 5.56, got %v", got)
	}
	if got := round2(85); got != 85.0 {
		t.Fatalf("expected 85, got %v", got)
	}
}
