package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Core record kind tags. Links and the entity registry dispatch on these.
const (
	KindAccount    = "account"
	KindCreditCard = "credit_card"
	KindAsset      = "asset"
	KindLiability  = "liability"
)

// CoreRecord is the capability set shared by all first-party financial records.
// The balance projector writes through this interface; Account additionally
// receives the full set of provider-derived fields.
type CoreRecord interface {
	Kind() string
	EntityID() string
	EntityName() string
	GetBalance() decimal.Decimal
	SetBalance(decimal.Decimal)
	GetNotes() string
	SetNotes(string)
}

// Account is a user-owned bank account. The provider-synced fields are
// overwritten by the balance projector while the account is linked; they are
// never touched otherwise.
type Account struct {
	gorm.Model
	ID    string `gorm:"primaryKey;uuid;not null"`
	Name  string `gorm:"not null"`
	Last4 string
	Notes string

	// provider-synced fields
	Balance             decimal.Decimal `gorm:"type:decimal(12,2)"`
	ClearedBalance      decimal.Decimal `gorm:"type:decimal(12,2)"`
	UnclearedBalance    decimal.Decimal `gorm:"type:decimal(12,2)"`
	OnBudget            bool
	Closed              bool
	LastReconciledAt    *time.Time
	DebtOriginalBalance *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DebtInterestRates   string
	DebtMinimumPayments string
	DebtEscrowAmounts   string
	LastSyncAt          *time.Time
}

func (a *Account) Kind() string                 { return KindAccount }
func (a *Account) EntityID() string             { return a.ID }
func (a *Account) EntityName() string           { return a.Name }
func (a *Account) GetBalance() decimal.Decimal  { return a.Balance }
func (a *Account) SetBalance(b decimal.Decimal) { a.Balance = b }
func (a *Account) GetNotes() string             { return a.Notes }
func (a *Account) SetNotes(n string)            { a.Notes = n }

// CreditCard is a user-owned credit card record.
type CreditCard struct {
	gorm.Model
	ID      string `gorm:"primaryKey;uuid;not null"`
	Name    string `gorm:"not null"`
	Last4   string
	Notes   string
	Balance decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (c *CreditCard) Kind() string                 { return KindCreditCard }
func (c *CreditCard) EntityID() string             { return c.ID }
func (c *CreditCard) EntityName() string           { return c.Name }
func (c *CreditCard) GetBalance() decimal.Decimal  { return c.Balance }
func (c *CreditCard) SetBalance(b decimal.Decimal) { c.Balance = b }
func (c *CreditCard) GetNotes() string             { return c.Notes }
func (c *CreditCard) SetNotes(n string)            { c.Notes = n }

// Asset is a user-owned asset record (property, investment, etc).
type Asset struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null"`
	Name        string `gorm:"not null"`
	Notes       string
	Balance     decimal.Decimal `gorm:"type:decimal(12,2)"`
	StockSymbol string
	Shares      *decimal.Decimal `gorm:"type:decimal(12,4)"`
}

func (a *Asset) Kind() string                 { return KindAsset }
func (a *Asset) EntityID() string             { return a.ID }
func (a *Asset) EntityName() string           { return a.Name }
func (a *Asset) GetBalance() decimal.Decimal  { return a.Balance }
func (a *Asset) SetBalance(b decimal.Decimal) { a.Balance = b }
func (a *Asset) GetNotes() string             { return a.Notes }
func (a *Asset) SetNotes(n string)            { a.Notes = n }

// Liability is a user-owned debt record.
type Liability struct {
	gorm.Model
	ID      string `gorm:"primaryKey;uuid;not null"`
	Name    string `gorm:"not null"`
	Notes   string
	Balance decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (l *Liability) Kind() string                 { return KindLiability }
func (l *Liability) EntityID() string             { return l.ID }
func (l *Liability) EntityName() string           { return l.Name }
func (l *Liability) GetBalance() decimal.Decimal  { return l.Balance }
func (l *Liability) SetBalance(b decimal.Decimal) { l.Balance = b }
func (l *Liability) GetNotes() string             { return l.Notes }
func (l *Liability) SetNotes(n string)            { l.Notes = n }
