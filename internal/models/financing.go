package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"realty-backend/internal/financing"
)

// Financing stores the type and parameters of a property's financing. The
// parameters are authoritative; ResultSummary is a snapshot of the computed
// figures (no schedule) so listings can avoid recomputing.
type Financing struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PropertyID     uuid.UUID           `gorm:"column:propertyId;type:uuid;not null;uniqueIndex" json:"propertyId"`
	Type           string              `gorm:"column:financingType;type:varchar(20);not null" json:"financingType"`
	PropertyPrice  decimal.Decimal     `gorm:"column:propertyPrice;type:decimal(14,2);not null" json:"propertyPrice"`
	DownPayment    decimal.Decimal     `gorm:"column:downPayment;type:decimal(14,2);not null;default:0" json:"downPayment"`
	InterestRate   decimal.Decimal     `gorm:"column:interestRate;type:decimal(7,4);not null;default:0" json:"interestRate"`
	LoanTermYears  int                 `gorm:"column:loanTermYears;not null" json:"loanTermYears"`
	AdditionalFees decimal.Decimal     `gorm:"column:additionalFees;type:decimal(14,2);not null;default:0" json:"additionalFees"`
	CurrentBalance decimal.NullDecimal `gorm:"column:currentBalance;type:decimal(14,2)" json:"currentBalance"`
	ResultSummary  datatypes.JSON      `gorm:"column:resultSummary;type:json" json:"resultSummary"`
	CreatedAt      time.Time           `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Financing) TableName() string {
	return "Financings"
}

func (f *Financing) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// NewFinancing snapshots opt for propertyID.
func NewFinancing(propertyID uuid.UUID, opt financing.Option) (*Financing, error) {
	summary, err := json.Marshal(opt.Result.Summary())
	if err != nil {
		return nil, err
	}
	p := opt.Parameters
	rec := &Financing{
		PropertyID:     propertyID,
		Type:           string(opt.Type),
		PropertyPrice:  p.PropertyPrice,
		DownPayment:    p.DownPayment,
		InterestRate:   p.InterestRate,
		LoanTermYears:  p.LoanTermYears,
		AdditionalFees: p.AdditionalFees,
		ResultSummary:  datatypes.JSON(summary),
	}
	if p.CurrentBalance != nil {
		rec.CurrentBalance = decimal.NewNullDecimal(*p.CurrentBalance)
	}
	return rec, nil
}

// Parameters rebuilds the calculation input.
func (f *Financing) Parameters() financing.Parameters {
	p := financing.Parameters{
		PropertyPrice:  f.PropertyPrice,
		DownPayment:    f.DownPayment,
		InterestRate:   f.InterestRate,
		LoanTermYears:  f.LoanTermYears,
		AdditionalFees: f.AdditionalFees,
	}
	if f.CurrentBalance.Valid {
		balance := f.CurrentBalance.Decimal
		p.CurrentBalance = &balance
	}
	return p
}

// Summary decodes the stored result snapshot.
func (f *Financing) Summary() (financing.Result, error) {
	var res financing.Result
	if len(f.ResultSummary) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(f.ResultSummary, &res); err != nil {
		return res, err
	}
	if res.AmortizationSchedule == nil {
		res.AmortizationSchedule = []financing.PaymentSchedule{}
	}
	return res, nil
}
