package service

import (
	"math"
	"sort"
	"strings"

	"butce/internal/models"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = money.TRY

type Allocation struct {
	Type  models.AssetType `json:"type"`
	Label string           `json:"label"`
	Total float64          `json:"total"`
	Share float64          `json:"share"`
}

type Valuation struct {
	Rows       []models.NormalizedHolding `json:"rows"`
	GrandTotal float64                    `json:"grand_total"`
	Allocation []Allocation               `json:"allocation"`
}

// NormalizeHolding coerces quantity and price and derives the row total.
// A product too large for float64 saturates at ±MaxFloat64.
func NormalizeHolding(h models.Holding) models.NormalizedHolding {
	q := Normalize(h.Quantity)
	p := Normalize(h.Price)
	return models.NormalizedHolding{
		Type:     h.Type,
		Label:    h.Type.Label(),
		Name:     h.Name,
		Quantity: q,
		Price:    p,
		Total:    saturate(q * p),
	}
}

// Value normalizes every holding and sums the row totals. Row totals are
// plain float products; the sums are accumulated in decimal.
func Value(holdings []models.Holding) Valuation {
	rows := make([]models.NormalizedHolding, 0, len(holdings))
	grand := decimal.Zero
	byType := map[models.AssetType]decimal.Decimal{}
	for _, h := range holdings {
		n := NormalizeHolding(h)
		rows = append(rows, n)
		t := decimal.NewFromFloat(n.Total)
		grand = grand.Add(t)
		byType[n.Type] = byType[n.Type].Add(t)
	}

	v := Valuation{Rows: rows, GrandTotal: toFloat(grand), Allocation: []Allocation{}}
	for _, t := range models.AssetTypes {
		sum, ok := byType[t]
		if !ok {
			continue
		}
		v.Allocation = append(v.Allocation, allocationFor(t, sum, grand))
		delete(byType, t)
	}
	// rows whose Tur cell did not match a known category
	others := make([]models.AssetType, 0, len(byType))
	for t := range byType {
		others = append(others, t)
	}
	sort.Slice(others, func(i, j int) bool { return others[i] < others[j] })
	for _, t := range others {
		v.Allocation = append(v.Allocation, allocationFor(t, byType[t], grand))
	}
	return v
}

func allocationFor(t models.AssetType, sum, grand decimal.Decimal) Allocation {
	a := Allocation{Type: t, Label: t.Label()}
	a.Total = toFloat(sum)
	if !grand.IsZero() {
		a.Share, _ = sum.Div(grand).Round(4).Float64()
	}
	return a
}

// toFloat converts a decimal sum back to float64, saturating instead of
// overflowing to infinity.
func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return saturate(f)
}

func saturate(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	}
	return f
}

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// FormatMoney renders amount with the currency's symbol and placement from
// go-money. Lira amounts use Turkish separators, e.g. "₺1.500,50". Unknown
// codes fall back to TRY.
func FormatMoney(amount float64, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	f := cur.Formatter()
	if cur.Code == money.TRY {
		f.Decimal, f.Thousand = ",", "."
	}

	minor := decimal.NewFromFloat(finite(amount)).Shift(int32(f.Fraction)).Round(0)
	if minor.Abs().LessThanOrEqual(maxMinorUnits) {
		return f.Format(minor.IntPart())
	}
	return formatDigits(f, minor)
}

// formatDigits lays out minor units the way money.Formatter does, for
// amounts that do not fit in an int64.
func formatDigits(f *money.Formatter, minor decimal.Decimal) string {
	sa := minor.Abs().String()
	if len(sa) <= f.Fraction {
		sa = strings.Repeat("0", f.Fraction-len(sa)+1) + sa
	}
	if f.Thousand != "" {
		for i := len(sa) - f.Fraction - 3; i > 0; i -= 3 {
			sa = sa[:i] + f.Thousand + sa[i:]
		}
	}
	if f.Fraction > 0 {
		sa = sa[:len(sa)-f.Fraction] + f.Decimal + sa[len(sa)-f.Fraction:]
	}
	sa = strings.Replace(f.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", f.Grapheme, 1)
	if minor.IsNegative() {
		sa = "-" + sa
	}
	return sa
}
