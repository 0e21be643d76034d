package order

import "github.com/shopspring/decimal"

// LineTotal returns quantity * unitPrice for a single item. It is the
// per-row building block shared by live display and the aggregate total.
func LineTotal(item LineItem) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Total returns the sum of line totals across items; the empty slice
// yields zero. It is a pure fold: values are propagated as given, without
// clamping, rejection, or rounding. Rejecting negative quantities or
// prices is the caller's job, via Draft.Validate.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}
