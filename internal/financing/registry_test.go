package financing

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatFee struct{}

func (flatFee) Calculate(p Parameters) (Result, error) {
	return Result{MonthlyPayment: decimal.NewFromInt(1), AmortizationSchedule: []PaymentSchedule{}}, nil
}
func (flatFee) MonthlyPayment(p Parameters) (decimal.Decimal, error) { return decimal.NewFromInt(1), nil }
func (flatFee) TotalInterest(p Parameters) (decimal.Decimal, error)  { return decimal.Zero, nil }
func (flatFee) AmortizationSchedule(p Parameters) ([]PaymentSchedule, error) {
	return []PaymentSchedule{}, nil
}

func TestRegistry_CreateDefaults(t *testing.T) {
	r := NewRegistry()

	m, err := r.Create(TypeMortgage)
	require.NoError(t, err)
	assert.IsType(t, &Mortgage{}, m)

	h, err := r.Create(TypeHELOC)
	require.NoError(t, err)
	assert.IsType(t, &HELOC{}, h)

	c, err := r.Create(TypeCash)
	require.NoError(t, err)
	assert.IsType(t, &Cash{}, c)
}

func TestRegistry_UnsupportedType(t *testing.T) {
	r := NewRegistry()
	_, err := r.Create(Type("balloon"))
	var uerr *UnsupportedTypeError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, Type("balloon"), uerr.Type)
	assert.Equal(t, "Unsupported financing type: balloon", err.Error())

	_, err = r.CreateMany([]Type{TypeCash, "balloon"})
	assert.True(t, errors.As(err, &uerr))
}

func TestRegistry_TypesAndRegister(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []Type{TypeMortgage, TypeHELOC, TypeCash}, r.Types())
	assert.False(t, r.IsSupported("flat"))

	r.Register("flat", func() Calculator { return flatFee{} })
	assert.True(t, r.IsSupported("flat"))
	assert.Equal(t, []Type{TypeMortgage, TypeHELOC, TypeCash, "flat"}, r.Types())

	// re-registering keeps the original position
	r.Register(TypeCash, func() Calculator { return NewCash() })
	assert.Len(t, r.Types(), 4)
}

func TestRegistry_CreateMany(t *testing.T) {
	calcs, err := NewRegistry().CreateMany([]Type{TypeMortgage, TypeCash})
	require.NoError(t, err)
	assert.Len(t, calcs, 2)
	assert.IsType(t, &Mortgage{}, calcs[TypeMortgage])
	assert.IsType(t, &Cash{}, calcs[TypeCash])
}

func TestRegistry_Parse(t *testing.T) {
	r := NewRegistry()
	got, err := r.Parse(" HELOC ")
	require.NoError(t, err)
	assert.Equal(t, TypeHELOC, got)

	_, err = r.Parse("invalid_type")
	var uerr *UnsupportedTypeError
	assert.True(t, errors.As(err, &uerr))
}

func TestRegistry_Compare(t *testing.T) {
	results, err := NewRegistry().Compare(sampleParameters())
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[TypeMortgage].MonthlyPayment.IsPositive())
	assert.True(t, results[TypeHELOC].MonthlyPayment.IsPositive())
	assert.True(t, results[TypeCash].MonthlyPayment.IsZero())

	bad := sampleParameters()
	bad.PropertyPrice = decimal.Zero
	_, err = NewRegistry().Compare(bad)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			calc, err := r.Create(TypeMortgage)
			if assert.NoError(t, err) {
				_, err = calc.Calculate(sampleParameters())
				assert.NoError(t, err)
			}
			_ = r.Types()
		}()
	}
	wg.Wait()
}
