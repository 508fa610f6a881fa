package main

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/* ===================== Portfolio aggregation ===================== */

// Totals is the summary-card view of a list of holdings.
type Totals struct {
	TotalInvested      decimal.Decimal `json:"total_invested"`
	TotalValue         decimal.Decimal `json:"total_value"`
	TotalProfitLoss    decimal.Decimal `json:"total_profit_loss"`
	TotalChangePercent decimal.Decimal `json:"total_change_percent"`
}

// AllocationSlice is one pie-chart segment. Value is raw; the renderer
// computes proportions, WeightPercent is there for tooltips.
type AllocationSlice struct {
	Label         string          `json:"label"`
	Value         decimal.Decimal `json:"value"`
	WeightPercent decimal.Decimal `json:"weight_percent"`
}

// RawHoldingInput carries the text-box values of the "add investment" form.
type RawHoldingInput struct {
	AssetName string
	Amount    string
	Price     string
}

// ComputeTotals sums invested and current value over holdings. The change
// percent is zero for an empty list or a zero invested total.
func ComputeTotals(holdings []Holding) Totals {
	invested := decimal.Zero
	value := decimal.Zero
	for _, h := range holdings {
		invested = invested.Add(h.Invested())
		value = value.Add(h.CurrentValue())
	}
	pl := value.Sub(invested)
	return Totals{
		TotalInvested:      invested,
		TotalValue:         value,
		TotalProfitLoss:    pl,
		TotalChangePercent: percentOf(pl, invested),
	}
}

// BuildAllocation returns one slice per holding, in holding order.
func BuildAllocation(holdings []Holding) []AllocationSlice {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.CurrentValue())
	}
	out := make([]AllocationSlice, 0, len(holdings))
	for _, h := range holdings {
		v := h.CurrentValue()
		out = append(out, AllocationSlice{
			Label:         h.Symbol,
			Value:         v,
			WeightPercent: percentOf(v, total),
		})
	}
	return out
}

var newHoldingID = uuid.NewString

// ParseHoldingInput validates raw form values and builds a new holding
// priced at its purchase price. Fields are checked in form order and the
// first offending one is reported.
func ParseHoldingInput(raw RawHoldingInput, now time.Time) (Holding, error) {
	name := strings.TrimSpace(raw.AssetName)
	if name == "" {
		return Holding{}, invalidInput(FieldAssetName, "required")
	}
	amount, err := parsePositive(FieldAmount, raw.Amount)
	if err != nil {
		return Holding{}, err
	}
	price, err := parsePositive(FieldPrice, raw.Price)
	if err != nil {
		return Holding{}, err
	}
	return Holding{
		ID:           newHoldingID(),
		AssetName:    name,
		Symbol:       strings.ToUpper(name),
		Amount:       amount,
		AveragePrice: price,
		CurrentPrice: price,
		Outlook:      OutlookNeutral,
		NewsImpact:   NewsImpactNeutral,
		CreatedAt:    now,
	}, nil
}

// AddHolding appends a holding built from raw to a copy of holdings. On
// error the input slice is returned as is.
func AddHolding(holdings []Holding, raw RawHoldingInput, now time.Time) ([]Holding, Holding, error) {
	h, err := ParseHoldingInput(raw, now)
	if err != nil {
		return holdings, Holding{}, err
	}
	taken := make(map[string]struct{}, len(holdings))
	for _, x := range holdings {
		taken[x.ID] = struct{}{}
	}
	for {
		if _, dup := taken[h.ID]; !dup {
			break
		}
		h.ID = newHoldingID()
	}
	out := make([]Holding, len(holdings), len(holdings)+1)
	copy(out, holdings)
	return append(out, h), h, nil
}

func parsePositive(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, invalidInput(field, "required")
	}
	if len(s) > maxInputLen {
		return decimal.Decimal{}, invalidInput(field, "out of range")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, invalidInput(field, "not a number")
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, invalidInput(field, "must be greater than zero")
	}
	if !inFiniteRange(d) {
		return decimal.Decimal{}, invalidInput(field, "out of range")
	}
	return d, nil
}

// Accepted inputs stay within what a float64 can hold, so products and
// string encodings of stored holdings remain bounded.
const (
	maxInputLen       = 128
	maxInputDigits    = 64
	maxInputMagnitude = 308  // ~1.8e308
	minInputMagnitude = -324 // smallest subnormal float64
)

// inFiniteRange reports whether a positive d has a bounded coefficient and
// a decimal magnitude inside the float64 range. It never expands d.
func inFiniteRange(d decimal.Decimal) bool {
	digits := d.NumDigits()
	if digits > maxInputDigits {
		return false
	}
	mag := int64(digits) + int64(d.Exponent()) - 1
	return mag <= maxInputMagnitude && mag >= minInputMagnitude
}
