package payment

import (
	"math"
	"strings"
)

// Gateways express amounts in a currency's smallest denomination. Most
// currencies use two decimal places; the set below uses none.
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "JPY": {}, "KMF": {},
	"KRW": {}, "MGA": {}, "PYG": {}, "RWF": {}, "UGX": {}, "VND": {},
	"VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// MinorUnits converts a major-unit amount to the gateway's integer
// representation, rounding to the nearest unit.
func MinorUnits(amount float64, currency string) int64 {
	if isZeroDecimal(currency) {
		return int64(math.Round(amount))
	}
	return int64(math.Round(amount * 100))
}

// MajorUnits converts a gateway minor-unit amount back to major units.
func MajorUnits(minor int64, currency string) float64 {
	if isZeroDecimal(currency) {
		return float64(minor)
	}
	return float64(minor) / 100
}

func isZeroDecimal(currency string) bool {
	_, ok := zeroDecimalCurrencies[strings.ToUpper(currency)]
	return ok
}
