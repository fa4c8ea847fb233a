package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Property is the stored form of a property. Cashflow and ROI are not
// columns; they are derived on every read.
type Property struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Address   string          `gorm:"column:address;not null" json:"address"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(14,2);not null" json:"price"`
	ImageURL  *string         `gorm:"column:imageUrl" json:"imageUrl"`
	Incomes   []Income        `gorm:"foreignKey:PropertyID" json:"incomes,omitempty"`
	Expenses  []Expense       `gorm:"foreignKey:PropertyID" json:"expenses,omitempty"`
	Financing *Financing      `gorm:"foreignKey:PropertyID" json:"financing,omitempty"`
	CreatedAt time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Property) TableName() string {
	return "Properties"
}

// BeforeCreate sets id if not already set (DBs without default uuid).
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Income is a recurring revenue line of a property.
type Income struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID       `gorm:"column:propertyId;type:uuid;not null;index" json:"propertyId"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(14,2);not null" json:"amount"`
	Frequency  string          `gorm:"column:frequency;type:varchar(10);not null" json:"frequency"`
	CreatedAt  time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Income) TableName() string {
	return "Incomes"
}

func (i *Income) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Expense is a recurring named cost of a property.
type Expense struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID       `gorm:"column:propertyId;type:uuid;not null;index" json:"propertyId"`
	Name       string          `gorm:"column:name;not null" json:"name"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(14,2);not null" json:"amount"`
	Frequency  string          `gorm:"column:frequency;type:varchar(10);not null" json:"frequency"`
	CreatedAt  time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Expense) TableName() string {
	return "Expenses"
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
