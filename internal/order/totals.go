package order

import "github.com/githuax/zeduno-sub008/internal/model"

// DefaultServiceChargeRate is the dine-in service charge applied when the
// billing configuration does not set one.
const DefaultServiceChargeRate = 0.10

// Totals holds the server-computed financial breakdown of an order.
// Total always equals Subtotal + Tax + ServiceCharge.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	ServiceCharge float64 `json:"service_charge"`
	Total         float64 `json:"total"`
}

// ComputeTotals derives the financial fields from the order's line items.
// Prices are the snapshots stored on the items, not live menu prices. The
// service charge applies to dine-in orders only. Every component is rounded
// to the currency's minor unit before summing, so the total invariant holds
// exactly on the stored values.
func ComputeTotals(items []model.OrderItem, orderType string, taxRate, serviceChargeRate float64, currency string) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = RoundAmount(subtotal, currency)

	var serviceCharge float64
	if orderType == model.OrderTypeDineIn {
		serviceCharge = RoundAmount(subtotal*serviceChargeRate, currency)
	}

	tax := RoundAmount(subtotal*taxRate, currency)

	return Totals{
		Subtotal:      subtotal,
		Tax:           tax,
		ServiceCharge: serviceCharge,
		Total:         RoundAmount(subtotal+tax+serviceCharge, currency),
	}
}
