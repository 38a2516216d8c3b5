package payments

import "strings"

// Currencies Stripe charges in whole units, and those with three decimals.
var (
	zeroDecimal = map[string]bool{
		"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true,
		"kmf": true, "krw": true, "mga": true, "pyg": true, "rwf": true,
		"ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true,
		"xpf": true,
	}
	threeDecimal = map[string]bool{
		"bhd": true, "jod": true, "kwd": true, "omr": true, "tnd": true,
	}
)

// MajorUnits converts a provider amount in minor units of currency into the
// amount a person reads, e.g. 10000 bdt poisha is 100 taka.
func MajorUnits(amount int64, currency string) float64 {
	c := strings.ToLower(currency)
	switch {
	case zeroDecimal[c]:
		return float64(amount)
	case threeDecimal[c]:
		return float64(amount) / 1000
	default:
		return float64(amount) / 100
	}
}
