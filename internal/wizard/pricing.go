package wizard

import "math"

// resolveSales applies a sales patch with last-edited-wins semantics for the
// price/margin pair: the field the user edited is taken as written and the
// other one is recomputed from the cost per serving. When both are flagged in
// one patch, price wins since price is what the backend is actually sent.
// With no cost basis the pair is kept exactly as patched.
func resolveSales(current SalesSettings, patch SalesPatch, costPerServing float64) SalesSettings {
	resolved := patch.Sales
	if costPerServing <= 0 {
		return resolved
	}
	switch {
	case patch.PriceEdited:
		resolved.Margin = MarginForPrice(resolved.Price, costPerServing)
	case patch.MarginEdited:
		resolved.Price = PriceForMargin(resolved.Margin, costPerServing)
	}
	return resolved
}

// MarginForPrice returns the gross margin percentage for a sale price against
// a cost per serving, rounded to two decimals. Zero when the price is not
// positive.
func MarginForPrice(price, costPerServing float64) float64 {
	if price <= 0 {
		return 0
	}
	return round2((price - costPerServing) / price * 100)
}

// PriceForMargin returns the sale price that yields the margin percentage
// over a cost per serving. Margins at or above 100% have no finite price and
// return zero.
func PriceForMargin(margin, costPerServing float64) float64 {
	if margin >= 100 || margin < 0 {
		return 0
	}
	return round2(costPerServing / (1 - margin/100))
}

// ComputeCost totals the ingredient lines against catalog unit costs and
// derives the cost per serving. Lines without a known unit cost contribute
// nothing rather than failing; the catalog is the source of truth.
func ComputeCost(lines []IngredientLine, unitCosts map[int64]float64, servings int) CostFigures {
	var total float64
	for _, line := range lines {
		cost, ok := unitCosts[line.IngredientID]
		if !ok || line.Quantity <= 0 {
			continue
		}
		total += cost * line.Quantity
	}
	figures := CostFigures{IngredientCost: round2(total)}
	if servings > 0 {
		figures.CostPerServing = round2(total / float64(servings))
	}
	return figures
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
