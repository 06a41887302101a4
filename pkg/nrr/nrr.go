// Package nrr computes cricket net run rate from aggregate runs and overs.
package nrr

import "github.com/shopspring/decimal"

// Rate is the outcome of a net run rate computation. A rate is undefined when
// either side has faced zero overs.
type Rate struct {
	Value   float64
	Defined bool
}

// Float returns the rate, or 0 when it is undefined.
func (r Rate) Float() float64 {
	if !r.Defined {
		return 0
	}
	return r.Value
}

// Compute returns runsFor/oversFor - runsAgainst/oversAgainst. Overs are
// decimal overs; convert notation with the overs package first.
func Compute(runsFor int, oversFor float64, runsAgainst int, oversAgainst float64) Rate {
	if oversFor == 0 || oversAgainst == 0 {
		return Rate{}
	}
	return Rate{
		Value:   float64(runsFor)/oversFor - float64(runsAgainst)/oversAgainst,
		Defined: true,
	}
}

// Format renders an NRR to exactly three decimal places.
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(3)
}

// FormatSigned is Format with a leading "+" for values that round above zero.
func FormatSigned(v float64) string {
	d := decimal.NewFromFloat(v).Round(3)
	if d.IsPositive() {
		return "+" + d.StringFixed(3)
	}
	return d.StringFixed(3)
}
