package financing

import (
	"github.com/shopspring/decimal"
)

// HELOC phase lengths. They are fixed, not part of Parameters.
const (
	DrawPeriodYears      = 10
	RepaymentPeriodYears = 20
)

// HELOC is a home equity line of credit: interest-only payments during the
// draw period, then level payments that retire the balance over the
// repayment period.
type HELOC struct {
	drawMonths      int
	repaymentMonths int
}

// NewHELOC returns a HELOC calculator with the standard 10/20 year phases.
func NewHELOC() *HELOC {
	return &HELOC{
		drawMonths:      DrawPeriodYears * MonthsPerYear,
		repaymentMonths: RepaymentPeriodYears * MonthsPerYear,
	}
}

// DrawPeriodMonths is the number of interest-only periods.
func (h *HELOC) DrawPeriodMonths() int {
	return h.drawMonths
}

// RepaymentPeriodMonths is the number of amortizing periods.
func (h *HELOC) RepaymentPeriodMonths() int {
	return h.repaymentMonths
}

// balance is the outstanding line: CurrentBalance when given, else the
// financed part of the price.
func (h *HELOC) balance(p Parameters) decimal.Decimal {
	if p.CurrentBalance != nil {
		return *p.CurrentBalance
	}
	return p.Principal()
}

func (h *HELOC) interestOnlyPayment(balance, rate decimal.Decimal) decimal.Decimal {
	return RoundCents(balance.Mul(rate))
}

// Calculate reports the draw-period payment as MonthlyPayment, since that is
// what is owed now. TotalInterest spans both phases.
func (h *HELOC) Calculate(p Parameters) (Result, error) {
	if err := Validate(p); err != nil {
		return Result{}, err
	}
	balance := h.balance(p)
	rate := p.MonthlyRate()
	drawPayment := h.interestOnlyPayment(balance, rate)
	repayment := MonthlyPayment(balance, rate, h.repaymentMonths)

	interest := h.totalInterest(balance, drawPayment, repayment)
	return Result{
		MonthlyPayment:       drawPayment,
		TotalInterest:        interest,
		TotalCost:            p.PropertyPrice.Add(interest).Add(p.AdditionalFees),
		PrincipalAmount:      balance,
		DownPayment:          p.DownPayment,
		AdditionalFees:       p.AdditionalFees,
		AmortizationSchedule: h.schedule(balance, rate, drawPayment, repayment),
	}, nil
}

func (h *HELOC) MonthlyPayment(p Parameters) (decimal.Decimal, error) {
	if err := Validate(p); err != nil {
		return decimal.Zero, err
	}
	return h.interestOnlyPayment(h.balance(p), p.MonthlyRate()), nil
}

// RepaymentPayment is the level payment owed once the draw period ends.
func (h *HELOC) RepaymentPayment(p Parameters) (decimal.Decimal, error) {
	if err := Validate(p); err != nil {
		return decimal.Zero, err
	}
	return MonthlyPayment(h.balance(p), p.MonthlyRate(), h.repaymentMonths), nil
}

func (h *HELOC) TotalInterest(p Parameters) (decimal.Decimal, error) {
	res, err := h.Calculate(p)
	if err != nil {
		return decimal.Zero, err
	}
	return res.TotalInterest, nil
}

func (h *HELOC) AmortizationSchedule(p Parameters) ([]PaymentSchedule, error) {
	res, err := h.Calculate(p)
	if err != nil {
		return nil, err
	}
	return res.AmortizationSchedule, nil
}

func (h *HELOC) totalInterest(balance, drawPayment, repayment decimal.Decimal) decimal.Decimal {
	draw := drawPayment.Mul(decimal.NewFromInt(int64(h.drawMonths)))
	return draw.Add(TotalInterest(repayment, h.repaymentMonths, balance))
}

// No principal is paid while drawing, so repayment starts from the original
// balance.
func (h *HELOC) schedule(balance, rate, drawPayment, repayment decimal.Decimal) []PaymentSchedule {
	schedule := make([]PaymentSchedule, 0, h.drawMonths+h.repaymentMonths)
	schedule = appendInterestOnly(schedule, balance, drawPayment, h.drawMonths)
	return appendAmortizing(schedule, balance, rate, repayment, h.repaymentMonths)
}
