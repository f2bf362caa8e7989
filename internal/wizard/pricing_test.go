package wizard

import "testing"

func TestMarginPriceRoundTrip(t *testing.T) {
	if got := MarginForPrice(100, 25); got != 75 {
		t.Fatalf("MarginForPrice(100, 25) = %v, want 75", got)
	}
	if got := PriceForMargin(75, 25); got != 100 {
		t.Fatalf("PriceForMargin(75, 25) = %v, want 100", got)
	}
	if got := MarginForPrice(0, 25); got != 0 {
		t.Fatalf("non-positive price should yield 0, got %v", got)
	}
	if got := PriceForMargin(100, 25); got != 0 {
		t.Fatalf("a 100%% margin has no finite price, got %v", got)
	}
}

func TestResolveSalesLastEditedWins(t *testing.T) {
	current := SalesSettings{Price: 80, Margin: 50}

	resolved := resolveSales(current, SalesPatch{
		Sales:       SalesSettings{Price: 100},
		PriceEdited: true,
	}, 25)
	if resolved.Price != 100 || resolved.Margin != 75 {
		t.Fatalf("price edit should recompute margin, got %+v", resolved)
	}

	resolved = resolveSales(current, SalesPatch{
		Sales:        SalesSettings{Margin: 50},
		MarginEdited: true,
	}, 25)
	if resolved.Margin != 50 || resolved.Price != 50 {
		t.Fatalf("margin edit should recompute price, got %+v", resolved)
	}

	// Both flagged in one patch: price wins.
	resolved = resolveSales(current, SalesPatch{
		Sales:        SalesSettings{Price: 200, Margin: 10},
		PriceEdited:  true,
		MarginEdited: true,
	}, 25)
	if resolved.Price != 200 || resolved.Margin != 87.5 {
		t.Fatalf("price should win a simultaneous edit, got %+v", resolved)
	}
}

func TestResolveSalesWithoutCostBasis(t *testing.T) {
	resolved := resolveSales(SalesSettings{}, SalesPatch{
		Sales:       SalesSettings{Price: 100, Margin: 12},
		PriceEdited: true,
	}, 0)
	if resolved.Price != 100 || resolved.Margin != 12 {
		t.Fatalf("without a cost basis the patch should be kept verbatim, got %+v", resolved)
	}
}

func TestComputeCost(t *testing.T) {
	lines := []IngredientLine{
		{IngredientID: 1, Quantity: 2, Unit: "kg"},
		{IngredientID: 2, Quantity: 0.5, Unit: "l"},
		{IngredientID: 99, Quantity: 3, Unit: "pcs"}, // not in catalog
	}
	costs := map[int64]float64{1: 10, 2: 8}

	figures := ComputeCost(lines, costs, 4)
	if figures.IngredientCost != 24 {
		t.Fatalf("ingredient cost = %v, want 24", figures.IngredientCost)
	}
	if figures.CostPerServing != 6 {
		t.Fatalf("cost per serving = %v, want 6", figures.CostPerServing)
	}

	figures = ComputeCost(lines, costs, 0)
	if figures.CostPerServing != 0 {
		t.Fatalf("zero servings should not divide, got %v", figures.CostPerServing)
	}
}
