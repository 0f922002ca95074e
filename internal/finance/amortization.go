package finance

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

// PayoffStatus tags the outcome of a payoff projection.
type PayoffStatus string

const (
	PayoffAmortizes     PayoffStatus = "amortizes"
	PayoffNoPayment     PayoffStatus = "no_payment"
	PayoffPaymentTooLow PayoffStatus = "payment_too_low"
	PayoffAlreadyPaid   PayoffStatus = "already_paid"
)

// payoffEpsilon absorbs float drift so an exact month count is not rounded up.
const payoffEpsilon = 1e-9

// Payoff is the projected time to clear a debt. Months, Years and
// RemainingMonths are only meaningful when Status is PayoffAmortizes.
type Payoff struct {
	Status          PayoffStatus `json:"status"`
	Months          int          `json:"months"`
	Years           int          `json:"years"`
	RemainingMonths int          `json:"remaining_months"`
}

// Amortizes reports whether the debt is cleared in a finite number of months.
func (p Payoff) Amortizes() bool { return p.Status == PayoffAmortizes }

func (p Payoff) String() string {
	switch p.Status {
	case PayoffNoPayment:
		return "Never (no payment)"
	case PayoffPaymentTooLow:
		return "Never (payment too low)"
	case PayoffAlreadyPaid:
		return "Paid off"
	}
	if p.Years > 0 {
		return fmt.Sprintf("%dy %dm", p.Years, p.RemainingMonths)
	}
	return fmt.Sprintf("%dm", p.RemainingMonths)
}

func amortizes(months int) Payoff {
	return Payoff{
		Status:          PayoffAmortizes,
		Months:          months,
		Years:           months / 12,
		RemainingMonths: months % 12,
	}
}

// PayoffTime estimates the months needed to clear balance with a fixed
// monthly payment at annualRatePercent interest:
//
//	r      = annualRatePercent / 100 / 12
//	months = ceil(ln(1 + balance*r/payment) / ln(1 + r))
//
// A payment that does not exceed the first month's interest never clears
// the debt and is reported as PayoffPaymentTooLow.
func PayoffTime(balance, payment decimal.Decimal, annualRatePercent float64) Payoff {
	if !payment.IsPositive() {
		return Payoff{Status: PayoffNoPayment}
	}
	if !balance.IsPositive() {
		return Payoff{Status: PayoffAlreadyPaid}
	}

	b := balance.InexactFloat64()
	p := payment.InexactFloat64()
	r := annualRatePercent / 100 / 12

	if r <= 0 {
		return amortizes(ceilMonths(b / p))
	}
	if p <= b*r {
		return Payoff{Status: PayoffPaymentTooLow}
	}

	months := math.Log1p(b*r/p) / math.Log1p(r)
	if math.IsNaN(months) || math.IsInf(months, 0) {
		return Payoff{Status: PayoffPaymentTooLow}
	}
	return amortizes(ceilMonths(months))
}

// DebtPayoff projects the payoff of d at its minimum payment.
func DebtPayoff(d core.Debt) Payoff {
	return PayoffTime(d.CurrentBalance, d.MinimumPayment, d.InterestRate)
}

func ceilMonths(x float64) int {
	n := int(math.Ceil(x - payoffEpsilon))
	if n < 1 {
		return 1
	}
	return n
}
