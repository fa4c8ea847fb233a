package financing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Cash is a purchase paid in full up front.
type Cash struct{}

// NewCash returns a cash purchase calculator.
func NewCash() *Cash {
	return &Cash{}
}

func (c *Cash) Calculate(p Parameters) (Result, error) {
	if err := Validate(p); err != nil {
		return Result{}, err
	}
	return Result{
		MonthlyPayment:       decimal.Zero,
		TotalInterest:        decimal.Zero,
		TotalCost:            p.PropertyPrice.Add(p.AdditionalFees),
		PrincipalAmount:      decimal.Zero,
		DownPayment:          p.PropertyPrice,
		AdditionalFees:       p.AdditionalFees,
		AmortizationSchedule: []PaymentSchedule{},
	}, nil
}

func (c *Cash) MonthlyPayment(p Parameters) (decimal.Decimal, error) {
	if err := Validate(p); err != nil {
		return decimal.Zero, err
	}
	return decimal.Zero, nil
}

func (c *Cash) TotalInterest(p Parameters) (decimal.Decimal, error) {
	if err := Validate(p); err != nil {
		return decimal.Zero, err
	}
	return decimal.Zero, nil
}

func (c *Cash) AmortizationSchedule(p Parameters) ([]PaymentSchedule, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	return []PaymentSchedule{}, nil
}

// OpportunityCost estimates what the cash tied up in the property would have
// earned compounding annually at alternativeReturn percent over years.
func (c *Cash) OpportunityCost(p Parameters, alternativeReturn decimal.Decimal, years int) (decimal.Decimal, error) {
	if err := Validate(p); err != nil {
		return decimal.Zero, err
	}
	if years <= 0 {
		years = DefaultHorizonYears
	}
	rate := alternativeReturn.Div(decimal.NewFromInt(100)).InexactFloat64()
	g := math.Pow(1+rate, float64(years))
	if !finite(g) {
		return decimal.Zero, invalid("alternativeReturn", "Alternative return is too large for the investment period")
	}
	growth := decimal.NewFromFloat(g)
	cashUsed := p.PropertyPrice
	return RoundCents(cashUsed.Mul(growth).Sub(cashUsed)), nil
}

// BreakEvenReturnRate is the annual return, in percent, that cash would need
// to earn over years to match the total cost of financing with loan. It is
// zero when financing is not more expensive.
func (c *Cash) BreakEvenReturnRate(p Parameters, loan Calculator, years int) (decimal.Decimal, error) {
	if years <= 0 {
		years = DefaultHorizonYears
	}
	financed, err := loan.Calculate(p)
	if err != nil {
		return decimal.Zero, err
	}
	cash, err := c.Calculate(p)
	if err != nil {
		return decimal.Zero, err
	}
	if financed.TotalCost.LessThanOrEqual(cash.TotalCost) {
		return decimal.Zero, nil
	}
	ratio := financed.TotalCost.Div(cash.TotalCost).InexactFloat64()
	required := math.Pow(ratio, 1/float64(years)) - 1
	if !finite(required) {
		return decimal.Zero, invalid("interestRate", "Financing cost is too large to compare against cash")
	}
	return decimal.NewFromFloat(required * 100).Round(4), nil
}
