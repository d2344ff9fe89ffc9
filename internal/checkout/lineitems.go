// Package checkout maps a populated cart into a payment-gateway checkout
// session.
package checkout

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/order"
)

// Currency is the only currency the gateway is asked to charge in.
const Currency = "usd"

var minorUnitsPerMajor = decimal.NewFromInt(100)

// LineItem is one entry of a checkout session request. Amounts are integer
// minor units (cents), which is what the gateway expects.
type LineItem struct {
	Quantity             int64
	UnitAmountMinorUnits int64
	Currency             string
	Name                 string
	Description          string
}

// BuildLineItems converts populated cart items into gateway line items.
// Prices are stored in major units and converted per line with round-half-up.
// The displayed cart total is computed separately in major units, so the two
// can diverge by rounding epsilon across many lines; that divergence is
// accepted and documented, not reconciled.
func BuildLineItems(items []order.PopulatedItem) ([]LineItem, error) {
	if len(items) == 0 {
		return nil, domain.EmptyCartError{}
	}

	lines := make([]LineItem, 0, len(items))
	for _, item := range items {
		unitAmount := decimal.NewFromFloat(item.Product.Price).
			Mul(minorUnitsPerMajor).
			Round(0).
			IntPart()

		lines = append(lines, LineItem{
			Quantity:             int64(item.Quantity),
			UnitAmountMinorUnits: unitAmount,
			Currency:             Currency,
			Name:                 item.Product.Title,
			Description:          item.Product.Description,
		})
	}
	return lines, nil
}

// CartTotal sums quantity times price in major units for display. It does
// not reuse the per-line minor-unit rounding on purpose.
func CartTotal(items []order.PopulatedItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Product.Price).
			Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}

	value, _ := total.Float64()
	return value
}
