package main

import (
	"github.com/shopspring/decimal"
)

// Outlook horizons, in display order.
var outlookHorizons = []string{"Now", "1W", "1M", "3M"}

// Sample price path per symbol, one value per horizon.
var sampleOutlook = map[string][]string{
	"BTC":  {"46200", "48500", "52000", "58000"},
	"ETH":  {"3400", "3600", "3800", "4200"},
	"TSLA": {"195", "205", "220", "240"},
}

// Full asset names that map onto the sample symbols.
var outlookAliases = map[string]string{
	"BITCOIN":  "BTC",
	"ETHEREUM": "ETH",
	"TESLA":    "TSLA",
}

type OutlookPoint struct {
	Horizon string          `json:"horizon"`
	Price   decimal.Decimal `json:"price"`
}

type OutlookSeries struct {
	Symbol string         `json:"symbol"`
	Points []OutlookPoint `json:"points"`
}

// BuildOutlook returns one series per distinct symbol in holdings, in
// first-seen order. Symbols without sample data get a flat line at the
// holding's current price.
func BuildOutlook(holdings []Holding) []OutlookSeries {
	out := make([]OutlookSeries, 0, len(holdings))
	seen := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		if seen[h.Symbol] {
			continue
		}
		seen[h.Symbol] = true

		key := h.Symbol
		if alias, ok := outlookAliases[key]; ok {
			key = alias
		}
		points := make([]OutlookPoint, len(outlookHorizons))
		sample, ok := sampleOutlook[key]
		for i, hz := range outlookHorizons {
			price := h.CurrentPrice
			if ok {
				price = decimal.RequireFromString(sample[i])
			}
			points[i] = OutlookPoint{Horizon: hz, Price: price}
		}
		out = append(out, OutlookSeries{Symbol: h.Symbol, Points: points})
	}
	return out
}
