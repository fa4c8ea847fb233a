// Package financing turns a property's purchase and loan parameters into a
// payment schedule for each supported way of paying for it.
package financing

import (
	"github.com/shopspring/decimal"
)

const (
	MonthsPerYear = 12

	// DefaultHorizonYears is used for cash scenarios that carry no loan term,
	// and as the default investment period of the cash helpers.
	DefaultHorizonYears = 30
)

// Type tags a financing mode.
type Type string

const (
	TypeMortgage Type = "mortgage"
	TypeHELOC    Type = "heloc"
	TypeCash     Type = "cash"
)

func (t Type) String() string {
	return string(t)
}

// Parameters is the input of one calculation. It is passed by value and never
// mutated by a calculator.
type Parameters struct {
	PropertyPrice  decimal.Decimal  `json:"propertyPrice"`
	DownPayment    decimal.Decimal  `json:"downPayment"`
	InterestRate   decimal.Decimal  `json:"interestRate"` // annual percentage, 6.5 means 6.5%
	LoanTermYears  int              `json:"loanTermYears"`
	AdditionalFees decimal.Decimal  `json:"additionalFees"`
	CurrentBalance *decimal.Decimal `json:"currentBalance,omitempty"`
}

// Principal is the financed amount: price minus down payment.
func (p Parameters) Principal() decimal.Decimal {
	return p.PropertyPrice.Sub(p.DownPayment)
}

// MonthlyRate converts the annual percentage into a per-period rate.
func (p Parameters) MonthlyRate() decimal.Decimal {
	return p.InterestRate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(MonthsPerYear))
}

// TotalPayments is the number of monthly periods over the loan term.
func (p Parameters) TotalPayments() int {
	return p.LoanTermYears * MonthsPerYear
}

// PaymentSchedule is one period of an amortization table.
type PaymentSchedule struct {
	PaymentNumber    int             `json:"paymentNumber"`
	PrincipalPayment decimal.Decimal `json:"principalPayment"`
	InterestPayment  decimal.Decimal `json:"interestPayment"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	TotalPayment     decimal.Decimal `json:"totalPayment"`
}

// Result is the output of one calculation.
type Result struct {
	MonthlyPayment       decimal.Decimal   `json:"monthlyPayment"`
	TotalInterest        decimal.Decimal   `json:"totalInterest"`
	TotalCost            decimal.Decimal   `json:"totalCost"`
	PrincipalAmount      decimal.Decimal   `json:"principalAmount"`
	DownPayment          decimal.Decimal   `json:"downPayment"`
	AdditionalFees       decimal.Decimal   `json:"additionalFees"`
	AmortizationSchedule []PaymentSchedule `json:"amortizationSchedule"`
}

// Summary drops the schedule, keeping the figures a listing needs.
func (r Result) Summary() Result {
	r.AmortizationSchedule = []PaymentSchedule{}
	return r
}

// Option pairs the parameters used with the result they produced.
type Option struct {
	Type       Type       `json:"type"`
	Parameters Parameters `json:"parameters"`
	Result     Result     `json:"result"`
}

// Calculator is implemented by every financing mode.
type Calculator interface {
	Calculate(p Parameters) (Result, error)
	MonthlyPayment(p Parameters) (decimal.Decimal, error)
	TotalInterest(p Parameters) (decimal.Decimal, error)
	AmortizationSchedule(p Parameters) ([]PaymentSchedule, error)
}
