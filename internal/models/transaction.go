package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a single charge on a credit card.
//
// A transaction that references a purchase is one installment of that
// purchase. A transaction without a purchase reference is a standalone
// entry, typically a payment or refund with a negative amount.
type Transaction struct {
	DefaultModel
	CreditCardID uuid.UUID
	CreditCard   CreditCard `json:"-"`
	PersonID     uuid.UUID
	Person       Person `json:"-"`
	PurchaseID   *uuid.UUID
	Purchase     *Purchase       `json:"-"`
	Date         time.Time       // Time of day is currently only used for sorting
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Negative amounts are payments or refunds
	Description  string
	Paid         bool // Toggled by the user, never derived
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - normalizes an all-zero purchase reference to nil
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	// Ensure that the purchase reference is nil and not a pointer
	// to a nil UUID when it is unset
	if t.PurchaseID != nil && *t.PurchaseID == uuid.Nil {
		t.PurchaseID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}
