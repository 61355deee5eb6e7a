package order

import "math"

// Currencies whose minor unit is the whole unit (no decimal places).
// Everything else is rounded to two decimal places.
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {},
	"CLP": {},
	"DJF": {},
	"GNF": {},
	"JPY": {},
	"KMF": {},
	"KRW": {},
	"MGA": {},
	"PYG": {},
	"RWF": {},
	"UGX": {},
	"VND": {},
	"VUV": {},
	"XAF": {},
	"XOF": {},
	"XPF": {},
}

// RoundAmount rounds a monetary amount to the minor unit of the given
// currency: two decimal places for decimal currencies, whole units for
// zero-decimal currencies.
func RoundAmount(amount float64, currency string) float64 {
	if _, ok := zeroDecimalCurrencies[currency]; ok {
		return math.Round(amount)
	}
	return math.Round(amount*100) / 100
}
