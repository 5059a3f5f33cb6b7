package tax

import "github.com/shopspring/decimal"

// IGV is Peru's fixed-rate value-added tax applied to sale totals.
var IGV = decimal.New(18, -2) // 18%

// Breakdown holds the tax split of a tax-inclusive total.
type Breakdown struct {
	Subtotal decimal.Decimal
	IGV      decimal.Decimal
	Total    decimal.Decimal
}

// Compute derives the IGV portion from a tax-inclusive total:
//
//	igv      = round(total * rate / (1 + rate), 2)
//	subtotal = total - igv
//
// Displayed unit prices already include IGV, so the tax is extracted from
// the total rather than added on top. Rounding (half up, 2 decimals) is
// applied once on the final amounts, never per line, so repeated per-line
// rounding cannot drift the totals.
func Compute(total decimal.Decimal) Breakdown {
	return ComputeWithRate(total, IGV)
}

// ComputeWithRate is Compute with an explicit rate.
func ComputeWithRate(total, rate decimal.Decimal) Breakdown {
	total = total.Round(2)
	igv := total.Mul(rate).Div(decimal.NewFromInt(1).Add(rate)).Round(2)
	return Breakdown{
		Subtotal: total.Sub(igv),
		IGV:      igv,
		Total:    total,
	}
}
