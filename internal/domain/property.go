package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"realty-backend/internal/financing"
)

// Frequency is how often an income or expense recurs.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

var monthsPerYear = decimal.NewFromInt(financing.MonthsPerYear)

func (f Frequency) Valid() bool {
	return f == FrequencyMonthly || f == FrequencyYearly
}

// Monthly converts an amount recurring at f into its per-month share.
func (f Frequency) Monthly(amount decimal.Decimal) decimal.Decimal {
	if f == FrequencyYearly {
		return amount.Div(monthsPerYear)
	}
	return amount
}

// Income is a recurring revenue stream of a property.
type Income struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency Frequency       `json:"frequency"`
}

// Expense is a recurring cost of a property, excluding financing.
type Expense struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency Frequency       `json:"frequency"`
}

// Property is the investment aggregate. Cashflow and ROI are always derived
// from its streams and financing, never stored.
type Property struct {
	ID        uuid.UUID
	Address   string
	Price     decimal.Decimal
	ImageURL  *string
	Incomes   []Income
	Expenses  []Expense
	Financing *financing.Option

	calculators *financing.Registry
}

// NewProperty builds the aggregate with the default calculator registry.
func NewProperty(id uuid.UUID, address string, price decimal.Decimal, imageURL *string, incomes []Income, expenses []Expense) *Property {
	return &Property{
		ID:          id,
		Address:     address,
		Price:       price,
		ImageURL:    imageURL,
		Incomes:     incomes,
		Expenses:    expenses,
		calculators: financing.NewRegistry(),
	}
}

// WithCalculators swaps the registry used by AddFinancing and
// CompareFinancingOptions.
func (p *Property) WithCalculators(r *financing.Registry) *Property {
	if r != nil {
		p.calculators = r
	}
	return p
}

func (p *Property) registry() *financing.Registry {
	if p.calculators == nil {
		p.calculators = financing.NewRegistry()
	}
	return p.calculators
}

func (p *Property) MonthlyIncome() decimal.Decimal {
	total := decimal.Zero
	for _, in := range p.Incomes {
		total = total.Add(in.Frequency.Monthly(in.Amount))
	}
	return total
}

// OperatingExpenses is the monthly total of the expense streams alone.
func (p *Property) OperatingExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, ex := range p.Expenses {
		total = total.Add(ex.Frequency.Monthly(ex.Amount))
	}
	return total
}

// MonthlyExpenses includes the financing payment when one is attached.
func (p *Property) MonthlyExpenses() decimal.Decimal {
	total := p.OperatingExpenses()
	if p.Financing != nil {
		total = total.Add(p.Financing.Result.MonthlyPayment)
	}
	return total
}

func (p *Property) CashFlow() decimal.Decimal {
	return p.MonthlyIncome().Sub(p.MonthlyExpenses())
}

// TotalInvestment is the cash put in: down payment plus fees when financed,
// the full price otherwise.
func (p *Property) TotalInvestment() decimal.Decimal {
	if p.Financing != nil {
		return p.Financing.Result.DownPayment.Add(p.Financing.Result.AdditionalFees)
	}
	return p.Price
}

// ROI is annualized cashflow over total investment, in percent. Zero when
// nothing was invested.
func (p *Property) ROI() decimal.Decimal {
	invested := p.TotalInvestment()
	if invested.Sign() <= 0 {
		return decimal.Zero
	}
	return p.CashFlow().Mul(monthsPerYear).Div(invested).Mul(decimal.NewFromInt(100))
}

// AddFinancing computes a result for t and replaces any attached financing.
// params are used as given; callers price them from the property. On error
// the current financing is left as is.
func (p *Property) AddFinancing(t financing.Type, params financing.Parameters) error {
	calc, err := p.registry().Create(t)
	if err != nil {
		return err
	}
	res, err := calc.Calculate(params)
	if err != nil {
		return err
	}
	p.Financing = &financing.Option{Type: t, Parameters: params, Result: res}
	return nil
}

func (p *Property) RemoveFinancing() {
	p.Financing = nil
}

// CompareFinancingOptions runs every registered calculator against params.
func (p *Property) CompareFinancingOptions(params financing.Parameters) (map[financing.Type]financing.Result, error) {
	return p.registry().Compare(params)
}

// View is the read model returned to clients.
type View struct {
	ID                 uuid.UUID         `json:"id"`
	Address            string            `json:"address"`
	Price              decimal.Decimal   `json:"price"`
	ImageURL           *string           `json:"imageUrl"`
	Cashflow           decimal.Decimal   `json:"cashflow"`
	ReturnOnInvestment decimal.Decimal   `json:"returnOnInvestment"`
	MonthlyIncome      decimal.Decimal   `json:"monthlyIncome"`
	MonthlyExpenses    decimal.Decimal   `json:"monthlyExpenses"`
	TotalInvestment    decimal.Decimal   `json:"totalInvestment"`
	Incomes            []Income          `json:"incomes"`
	Expenses           []Expense         `json:"expenses"`
	Financing          *financing.Option `json:"financing"`
}

// ToView rounds the derived figures to cents for display.
func (p *Property) ToView() View {
	incomes := p.Incomes
	if incomes == nil {
		incomes = []Income{}
	}
	expenses := p.Expenses
	if expenses == nil {
		expenses = []Expense{}
	}
	return View{
		ID:                 p.ID,
		Address:            p.Address,
		Price:              p.Price,
		ImageURL:           p.ImageURL,
		Cashflow:           financing.RoundCents(p.CashFlow()),
		ReturnOnInvestment: financing.RoundCents(p.ROI()),
		MonthlyIncome:      financing.RoundCents(p.MonthlyIncome()),
		MonthlyExpenses:    financing.RoundCents(p.MonthlyExpenses()),
		TotalInvestment:    financing.RoundCents(p.TotalInvestment()),
		Incomes:            incomes,
		Expenses:           expenses,
		Financing:          p.Financing,
	}
}
