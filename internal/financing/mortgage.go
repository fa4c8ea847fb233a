package financing

import (
	"github.com/shopspring/decimal"
)

// Mortgage is a fixed-rate loan amortized over the full term.
type Mortgage struct{}

// NewMortgage returns a mortgage calculator.
func NewMortgage() *Mortgage {
	return &Mortgage{}
}

func (m *Mortgage) Calculate(p Parameters) (Result, error) {
	if err := Validate(p); err != nil {
		return Result{}, err
	}
	principal := p.Principal()
	rate := p.MonthlyRate()
	n := p.TotalPayments()

	payment := MonthlyPayment(principal, rate, n)
	interest := TotalInterest(payment, n, principal)
	return Result{
		MonthlyPayment:       payment,
		TotalInterest:        interest,
		TotalCost:            p.PropertyPrice.Add(interest).Add(p.AdditionalFees),
		PrincipalAmount:      principal,
		DownPayment:          p.DownPayment,
		AdditionalFees:       p.AdditionalFees,
		AmortizationSchedule: AmortizationSchedule(principal, rate, payment, n),
	}, nil
}

func (m *Mortgage) MonthlyPayment(p Parameters) (decimal.Decimal, error) {
	if err := Validate(p); err != nil {
		return decimal.Zero, err
	}
	return MonthlyPayment(p.Principal(), p.MonthlyRate(), p.TotalPayments()), nil
}

func (m *Mortgage) TotalInterest(p Parameters) (decimal.Decimal, error) {
	payment, err := m.MonthlyPayment(p)
	if err != nil {
		return decimal.Zero, err
	}
	return TotalInterest(payment, p.TotalPayments(), p.Principal()), nil
}

func (m *Mortgage) AmortizationSchedule(p Parameters) ([]PaymentSchedule, error) {
	payment, err := m.MonthlyPayment(p)
	if err != nil {
		return nil, err
	}
	return AmortizationSchedule(p.Principal(), p.MonthlyRate(), payment, p.TotalPayments()), nil
}

// PrincipalPaidBy sums the principal repaid by the first paymentNumber payments.
func (m *Mortgage) PrincipalPaidBy(p Parameters, paymentNumber int) (decimal.Decimal, error) {
	schedule, err := m.AmortizationSchedule(p)
	if err != nil {
		return decimal.Zero, err
	}
	if paymentNumber > len(schedule) {
		paymentNumber = len(schedule)
	}
	paid := decimal.Zero
	for i := 0; i < paymentNumber; i++ {
		paid = paid.Add(schedule[i].PrincipalPayment)
	}
	return paid, nil
}

// RemainingBalanceAfter looks up the balance once paymentNumber payments are
// made. Before the first payment it is the full principal; past the end, zero.
func (m *Mortgage) RemainingBalanceAfter(p Parameters, paymentNumber int) (decimal.Decimal, error) {
	schedule, err := m.AmortizationSchedule(p)
	if err != nil {
		return decimal.Zero, err
	}
	switch {
	case paymentNumber <= 0:
		return p.Principal(), nil
	case paymentNumber >= len(schedule):
		return decimal.Zero, nil
	}
	return schedule[paymentNumber-1].RemainingBalance, nil
}
