package financing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// CentPlaces is the precision every monetary figure is rounded to.
const CentPlaces = 2

// MaxLoanTermYears bounds the term of a calculation; a schedule holds one
// entry per month of it.
const MaxLoanTermYears = 50

var one = decimal.NewFromInt(1)

// RoundCents rounds half away from zero to whole cents.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(CentPlaces)
}

// Validate checks the constraints shared by every calculator. It reports the
// first violation only.
func Validate(p Parameters) error {
	if p.PropertyPrice.Sign() <= 0 {
		return invalid("propertyPrice", "Property price must be greater than 0")
	}
	if p.DownPayment.IsNegative() {
		return invalid("downPayment", "Down payment cannot be negative")
	}
	if p.DownPayment.GreaterThanOrEqual(p.PropertyPrice) {
		return invalid("downPayment", "Down payment must be less than property price")
	}
	if p.InterestRate.IsNegative() {
		return invalid("interestRate", "Interest rate cannot be negative")
	}
	if p.LoanTermYears <= 0 {
		return invalid("loanTermYears", "Loan term must be greater than 0 years")
	}
	if p.LoanTermYears > MaxLoanTermYears {
		return invalid("loanTermYears", fmt.Sprintf("Loan term cannot exceed %d years", MaxLoanTermYears))
	}
	if p.AdditionalFees.IsNegative() {
		return invalid("additionalFees", "Additional fees cannot be negative")
	}
	if p.CurrentBalance != nil && p.CurrentBalance.IsNegative() {
		return invalid("currentBalance", "Current balance cannot be negative")
	}
	return nil
}

// MonthlyPayment is the level payment P*r(1+r)^n / ((1+r)^n - 1), or P/n when
// the rate is zero, rounded to cents. When (1+r)^n is beyond float64 range the
// payment is its limit P*r.
func MonthlyPayment(principal, monthlyRate decimal.Decimal, totalPayments int) decimal.Decimal {
	if totalPayments <= 0 {
		return decimal.Zero
	}
	if monthlyRate.IsZero() {
		return RoundCents(principal.Div(decimal.NewFromInt(int64(totalPayments))))
	}
	f := math.Pow(1+monthlyRate.InexactFloat64(), float64(totalPayments))
	if !finite(f) {
		return RoundCents(principal.Mul(monthlyRate))
	}
	factor := decimal.NewFromFloat(f)
	payment := principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(one))
	return RoundCents(payment)
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// TotalInterest is everything paid beyond the principal.
func TotalInterest(monthlyPayment decimal.Decimal, totalPayments int, principal decimal.Decimal) decimal.Decimal {
	return monthlyPayment.Mul(decimal.NewFromInt(int64(totalPayments))).Sub(principal)
}

// AmortizationSchedule builds the payment-by-payment table of a level-payment
// loan. The last entry always retires the balance to exactly zero.
func AmortizationSchedule(principal, monthlyRate, monthlyPayment decimal.Decimal, totalPayments int) []PaymentSchedule {
	if totalPayments <= 0 {
		return []PaymentSchedule{}
	}
	schedule := make([]PaymentSchedule, 0, totalPayments)
	return appendAmortizing(schedule, principal, monthlyRate, monthlyPayment, totalPayments)
}

// appendAmortizing continues schedule with periods amortizing entries,
// numbering them after the entries already present.
func appendAmortizing(schedule []PaymentSchedule, balance, monthlyRate, monthlyPayment decimal.Decimal, periods int) []PaymentSchedule {
	offset := len(schedule)
	for i := 1; i <= periods; i++ {
		interest := RoundCents(balance.Mul(monthlyRate))
		principal := monthlyPayment.Sub(interest)
		if principal.IsNegative() {
			principal = decimal.Zero
		}
		if i == periods || principal.GreaterThan(balance) {
			principal = balance
		}
		balance = balance.Sub(principal)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		schedule = append(schedule, PaymentSchedule{
			PaymentNumber:    offset + i,
			PrincipalPayment: principal,
			InterestPayment:  interest,
			RemainingBalance: balance,
			TotalPayment:     principal.Add(interest),
		})
	}
	return schedule
}

// appendInterestOnly continues schedule with periods entries that pay the
// interest on balance and leave it untouched.
func appendInterestOnly(schedule []PaymentSchedule, balance, payment decimal.Decimal, periods int) []PaymentSchedule {
	offset := len(schedule)
	for i := 1; i <= periods; i++ {
		schedule = append(schedule, PaymentSchedule{
			PaymentNumber:    offset + i,
			PrincipalPayment: decimal.Zero,
			InterestPayment:  payment,
			RemainingBalance: balance,
			TotalPayment:     payment,
		})
	}
	return schedule
}
