package financing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func sampleParameters() Parameters {
	return Parameters{
		PropertyPrice:  d("500000"),
		DownPayment:    d("100000"),
		InterestRate:   d("6.5"),
		LoanTermYears:  30,
		AdditionalFees: d("5000"),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func assertScheduleInvariants(t *testing.T, schedule []PaymentSchedule) {
	t.Helper()
	require.NotEmpty(t, schedule)
	for i, entry := range schedule {
		assert.Equal(t, i+1, entry.PaymentNumber)
		assert.False(t, entry.RemainingBalance.IsNegative(), "negative balance at %d", entry.PaymentNumber)
		if i > 0 {
			assert.True(t, entry.RemainingBalance.LessThanOrEqual(schedule[i-1].RemainingBalance),
				"balance increased at payment %d", entry.PaymentNumber)
		}
	}
	assert.True(t, schedule[len(schedule)-1].RemainingBalance.IsZero(), "final balance must be exactly zero")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Parameters)
		field  string
	}{
		{"zero price", func(p *Parameters) { p.PropertyPrice = decimal.Zero }, "propertyPrice"},
		{"negative price", func(p *Parameters) { p.PropertyPrice = d("-1") }, "propertyPrice"},
		{"negative down payment", func(p *Parameters) { p.DownPayment = d("-0.01") }, "downPayment"},
		{"down payment equals price", func(p *Parameters) { p.DownPayment = p.PropertyPrice }, "downPayment"},
		{"down payment above price", func(p *Parameters) { p.DownPayment = d("600000") }, "downPayment"},
		{"negative rate", func(p *Parameters) { p.InterestRate = d("-0.5") }, "interestRate"},
		{"zero term", func(p *Parameters) { p.LoanTermYears = 0 }, "loanTermYears"},
		{"term above ceiling", func(p *Parameters) { p.LoanTermYears = MaxLoanTermYears + 1 }, "loanTermYears"},
		{"negative fees", func(p *Parameters) { p.AdditionalFees = d("-1") }, "additionalFees"},
		{"negative balance", func(p *Parameters) { p.CurrentBalance = dp("-5") }, "currentBalance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleParameters()
			tt.modify(&p)
			err := Validate(p)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, Validate(sampleParameters()))
	zeroRate := sampleParameters()
	zeroRate.InterestRate = decimal.Zero
	assert.NoError(t, Validate(zeroRate))
	longest := sampleParameters()
	longest.LoanTermYears = MaxLoanTermYears
	assert.NoError(t, Validate(longest))
}

func TestMonthlyPayment(t *testing.T) {
	rate := sampleParameters().MonthlyRate()
	assertDecimal(t, "2528.27", MonthlyPayment(d("400000"), rate, 360))
	assertDecimal(t, "200", MonthlyPayment(d("12000"), decimal.Zero, 60))
	assertDecimal(t, "0", MonthlyPayment(d("12000"), rate, 0))

	// rounding happens once, at the end
	p := MonthlyPayment(d("10000"), d("0.015"), 36)
	assert.Equal(t, int32(-2), p.Exponent())
}

func TestMonthlyPayment_FactorOutOfFloatRange(t *testing.T) {
	// (1+r)^n overflows float64; the payment tends to P*r
	rate := d("100").Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
	assert.NotPanics(t, func() {
		assertDecimal(t, "33333.33", MonthlyPayment(d("400000"), rate, 12000))
	})
}

func TestMortgage_ExtremeRate(t *testing.T) {
	p := sampleParameters()
	p.InterestRate = d("5000")
	p.LoanTermYears = MaxLoanTermYears

	var res Result
	var err error
	require.NotPanics(t, func() { res, err = NewMortgage().Calculate(p) })
	require.NoError(t, err)
	assertDecimal(t, "1666666.67", res.MonthlyPayment)
	require.Len(t, res.AmortizationSchedule, MaxLoanTermYears*12)
	assertScheduleInvariants(t, res.AmortizationSchedule)

	p.InterestRate = d("100")
	p.LoanTermYears = 1000
	require.NotPanics(t, func() { _, err = NewMortgage().Calculate(p) })
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "loanTermYears", verr.Field)
}

func TestScheduleInvariants_AcrossParameters(t *testing.T) {
	prices := []struct{ price, down string }{
		{"500000", "100000"},
		{"123456.78", "23456.77"},
		{"99999.99", "0"},
	}
	rates := []string{"0", "0.01", "3.375", "6.5", "18", "99.99", "5000"}
	terms := []int{1, 15, 30, MaxLoanTermYears}

	for _, pr := range prices {
		for _, rate := range rates {
			for _, years := range terms {
				p := Parameters{
					PropertyPrice: d(pr.price),
					DownPayment:   d(pr.down),
					InterestRate:  d(rate),
					LoanTermYears: years,
				}
				schedule, err := NewMortgage().AmortizationSchedule(p)
				require.NoError(t, err, "price %s rate %s term %d", pr.price, rate, years)
				require.Len(t, schedule, years*12)
				assertScheduleInvariants(t, schedule)

				paid := decimal.Zero
				for _, e := range schedule {
					assert.True(t, e.TotalPayment.Equal(e.PrincipalPayment.Add(e.InterestPayment)))
					paid = paid.Add(e.PrincipalPayment)
				}
				assertDecimal(t, p.Principal().String(), paid, "price %s rate %s term %d", pr.price, rate, years)
			}
		}
	}
}

func TestHELOC_ScheduleInvariantsAcrossBalances(t *testing.T) {
	balances := []*decimal.Decimal{nil, dp("0"), dp("0.01"), dp("250000.55"), dp("450000")}
	for _, rate := range []string{"0", "4.25", "6.5", "5000"} {
		for _, balance := range balances {
			p := sampleParameters()
			p.InterestRate = d(rate)
			p.CurrentBalance = balance
			var res Result
			var err error
			require.NotPanics(t, func() { res, err = NewHELOC().Calculate(p) })
			require.NoError(t, err)
			require.Len(t, res.AmortizationSchedule, 360)
			assertScheduleInvariants(t, res.AmortizationSchedule)
		}
	}
}

func TestTotalInterest(t *testing.T) {
	assertDecimal(t, "510177.20", TotalInterest(d("2528.27"), 360, d("400000")))
	assertDecimal(t, "0", TotalInterest(d("200"), 60, d("12000")))
}

func TestAmortizationSchedule_ZeroRate(t *testing.T) {
	schedule := AmortizationSchedule(d("1000"), decimal.Zero, MonthlyPayment(d("1000"), decimal.Zero, 3), 3)
	require.Len(t, schedule, 3)
	assertDecimal(t, "333.33", schedule[0].PrincipalPayment)
	assertDecimal(t, "333.34", schedule[2].PrincipalPayment)
	assertDecimal(t, "0", schedule[2].InterestPayment)
	assertScheduleInvariants(t, schedule)
}

func TestAmortizationSchedule_Empty(t *testing.T) {
	assert.Empty(t, AmortizationSchedule(d("1000"), decimal.Zero, d("10"), 0))
}

func TestMortgage_Calculate(t *testing.T) {
	res, err := NewMortgage().Calculate(sampleParameters())
	require.NoError(t, err)

	assertDecimal(t, "400000", res.PrincipalAmount)
	assertDecimal(t, "100000", res.DownPayment)
	assertDecimal(t, "5000", res.AdditionalFees)
	assertDecimal(t, "2528.27", res.MonthlyPayment)
	assertDecimal(t, "510177.20", res.TotalInterest)
	assertDecimal(t, "1015177.20", res.TotalCost)
	require.Len(t, res.AmortizationSchedule, 360)

	first := res.AmortizationSchedule[0]
	assertDecimal(t, "2166.67", first.InterestPayment)
	assertDecimal(t, "361.60", first.PrincipalPayment)
	assertDecimal(t, "399638.40", first.RemainingBalance)
	assertDecimal(t, "2528.27", first.TotalPayment)
	assertScheduleInvariants(t, res.AmortizationSchedule)

	principalSum := decimal.Zero
	for _, e := range res.AmortizationSchedule {
		principalSum = principalSum.Add(e.PrincipalPayment)
	}
	assert.True(t, principalSum.Sub(res.PrincipalAmount).Abs().LessThanOrEqual(d("0.01")))
}

func TestMortgage_ScheduleLengthMatchesTerm(t *testing.T) {
	for _, years := range []int{1, 5, 15, 30, 40} {
		p := sampleParameters()
		p.LoanTermYears = years
		schedule, err := NewMortgage().AmortizationSchedule(p)
		require.NoError(t, err)
		assert.Len(t, schedule, years*12)
		assertScheduleInvariants(t, schedule)
	}
}

func TestMortgage_Queries(t *testing.T) {
	m := NewMortgage()
	p := sampleParameters()

	payment, err := m.MonthlyPayment(p)
	require.NoError(t, err)
	assertDecimal(t, "2528.27", payment)

	interest, err := m.TotalInterest(p)
	require.NoError(t, err)
	assertDecimal(t, "510177.20", interest)

	paid, err := m.PrincipalPaidBy(p, 1)
	require.NoError(t, err)
	assertDecimal(t, "361.60", paid)

	paid, err = m.PrincipalPaidBy(p, 1000)
	require.NoError(t, err)
	assertDecimal(t, "400000", paid)

	remaining, err := m.RemainingBalanceAfter(p, 1)
	require.NoError(t, err)
	assertDecimal(t, "399638.40", remaining)

	remaining, err = m.RemainingBalanceAfter(p, 360)
	require.NoError(t, err)
	assertDecimal(t, "0", remaining)

	remaining, err = m.RemainingBalanceAfter(p, 0)
	require.NoError(t, err)
	assertDecimal(t, "400000", remaining)
}

func TestMortgage_RejectsInvalidParameters(t *testing.T) {
	p := sampleParameters()
	p.LoanTermYears = 0
	res, err := NewMortgage().Calculate(p)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "loanTermYears", verr.Field)
	assert.Empty(t, res.AmortizationSchedule)
}

func TestMortgage_Idempotent(t *testing.T) {
	m := NewMortgage()
	a, err := m.Calculate(sampleParameters())
	require.NoError(t, err)
	b, err := m.Calculate(sampleParameters())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHELOC_Calculate(t *testing.T) {
	h := NewHELOC()
	p := sampleParameters()
	p.CurrentBalance = dp("400000")
	res, err := h.Calculate(p)
	require.NoError(t, err)

	assertDecimal(t, "2166.67", res.MonthlyPayment)
	assertDecimal(t, "400000", res.PrincipalAmount)
	// 2166.67*120 + (2982.29*240 - 400000)
	assertDecimal(t, "575750.00", res.TotalInterest)
	assertDecimal(t, "1080750.00", res.TotalCost)
	require.Len(t, res.AmortizationSchedule, h.DrawPeriodMonths()+h.RepaymentPeriodMonths())
	assertScheduleInvariants(t, res.AmortizationSchedule)

	for _, e := range res.AmortizationSchedule[:h.DrawPeriodMonths()] {
		assert.True(t, e.PrincipalPayment.IsZero())
		assertDecimal(t, "400000", e.RemainingBalance)
		assertDecimal(t, "2166.67", e.TotalPayment)
	}
	firstRepayment := res.AmortizationSchedule[h.DrawPeriodMonths()]
	assert.Equal(t, 121, firstRepayment.PaymentNumber)
	assertDecimal(t, "2982.29", firstRepayment.TotalPayment)
	assert.True(t, firstRepayment.PrincipalPayment.IsPositive())

	repayment, err := h.RepaymentPayment(p)
	require.NoError(t, err)
	assertDecimal(t, "2982.29", repayment)
}

func TestHELOC_BalanceDefaultsToFinancedAmount(t *testing.T) {
	h := NewHELOC()
	withBalance := sampleParameters()
	withBalance.CurrentBalance = dp("400000")

	a, err := h.Calculate(sampleParameters())
	require.NoError(t, err)
	b, err := h.Calculate(withBalance)
	require.NoError(t, err)
	assert.True(t, a.MonthlyPayment.Equal(b.MonthlyPayment))
	assert.True(t, a.TotalInterest.Equal(b.TotalInterest))
	require.Len(t, b.AmortizationSchedule, len(a.AmortizationSchedule))
	for i := range a.AmortizationSchedule {
		assert.True(t, a.AmortizationSchedule[i].RemainingBalance.Equal(b.AmortizationSchedule[i].RemainingBalance))
	}

	smaller := sampleParameters()
	smaller.CurrentBalance = dp("150000")
	smaller.InterestRate = d("7")
	payment, err := h.MonthlyPayment(smaller)
	require.NoError(t, err)
	assertDecimal(t, "875", payment)
}

func TestHELOC_ZeroBalance(t *testing.T) {
	p := sampleParameters()
	p.CurrentBalance = dp("0")
	res, err := NewHELOC().Calculate(p)
	require.NoError(t, err)
	assert.True(t, res.MonthlyPayment.IsZero())
	assert.True(t, res.TotalInterest.IsZero())
	assertScheduleInvariants(t, res.AmortizationSchedule)
}

func TestHELOC_TotalInterestAndScheduleAgreeWithCalculate(t *testing.T) {
	h := NewHELOC()
	res, err := h.Calculate(sampleParameters())
	require.NoError(t, err)
	interest, err := h.TotalInterest(sampleParameters())
	require.NoError(t, err)
	assert.True(t, res.TotalInterest.Equal(interest))
	schedule, err := h.AmortizationSchedule(sampleParameters())
	require.NoError(t, err)
	assert.Equal(t, res.AmortizationSchedule, schedule)
}

func TestCash_Calculate(t *testing.T) {
	c := NewCash()
	res, err := c.Calculate(sampleParameters())
	require.NoError(t, err)
	assert.True(t, res.MonthlyPayment.IsZero())
	assert.True(t, res.TotalInterest.IsZero())
	assert.True(t, res.PrincipalAmount.IsZero())
	assertDecimal(t, "500000", res.DownPayment)
	assertDecimal(t, "505000", res.TotalCost)
	assert.NotNil(t, res.AmortizationSchedule)
	assert.Empty(t, res.AmortizationSchedule)

	schedule, err := c.AmortizationSchedule(sampleParameters())
	require.NoError(t, err)
	assert.Empty(t, schedule)
}

func TestCash_RejectsInvalidParameters(t *testing.T) {
	p := sampleParameters()
	p.PropertyPrice = decimal.Zero
	_, err := NewCash().Calculate(p)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestCash_OpportunityCost(t *testing.T) {
	p := sampleParameters()
	p.PropertyPrice = d("100000")
	p.DownPayment = decimal.Zero
	cost, err := NewCash().OpportunityCost(p, d("10"), 2)
	require.NoError(t, err)
	assertDecimal(t, "21000", cost)

	none, err := NewCash().OpportunityCost(p, decimal.Zero, 10)
	require.NoError(t, err)
	assert.True(t, none.IsZero())
}

func TestCash_OpportunityCostOutOfRange(t *testing.T) {
	var err error
	require.NotPanics(t, func() { _, err = NewCash().OpportunityCost(sampleParameters(), d("1000"), 400) })
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "alternativeReturn", verr.Field)
}

func TestCash_BreakEvenReturnRate(t *testing.T) {
	c := NewCash()
	rate, err := c.BreakEvenReturnRate(sampleParameters(), NewMortgage(), 30)
	require.NoError(t, err)
	// (1015177.20 / 505000)^(1/30) - 1 is a little over 2.3%
	assert.True(t, rate.GreaterThan(d("2.3")) && rate.LessThan(d("2.4")), "got %s", rate)

	free := sampleParameters()
	free.InterestRate = decimal.Zero
	free.AdditionalFees = decimal.Zero
	rate, err = c.BreakEvenReturnRate(free, NewMortgage(), 30)
	require.NoError(t, err)
	assert.True(t, rate.IsZero())
}
