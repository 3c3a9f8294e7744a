package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Purchase represents something bought with a credit card, paid off in
// one or more monthly installments.
type Purchase struct {
	DefaultModel
	CreditCardID     uuid.UUID
	CreditCard       CreditCard `json:"-"`
	PersonID         uuid.UUID
	Person           Person `json:"-"`
	PurchaseDate     time.Time
	BillingStartDate *time.Time      // Only set for deferred billing, e.g. BNPL
	TotalAmount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description      string
	NumInstallments  int
	IsBNPL           bool          `gorm:"column:is_bnpl" json:"isBnpl"`
	Transactions     []Transaction `json:"-"`
}

var (
	ErrPurchaseAmountNotPositive   = errors.New("the total amount of a purchase must be positive")
	ErrPurchaseAmountTooSmall      = errors.New("the total amount must be at least 0.01 per installment")
	ErrPurchaseBillingStartMissing = errors.New("a BNPL purchase needs a billing start date")
)

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (p *Purchase) AfterFind(tx *gorm.DB) error {
	err := p.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	p.PurchaseDate = p.PurchaseDate.In(time.UTC)
	if p.BillingStartDate != nil {
		date := p.BillingStartDate.In(time.UTC)
		p.BillingStartDate = &date
	}

	return nil
}

// BeforeSave
//   - sets the timezone for all dates to UTC
//   - validates the amount and billing configuration
//   - trims whitespace from string fields
func (p *Purchase) BeforeSave(_ *gorm.DB) error {
	p.Description = strings.TrimSpace(p.Description)

	if !p.TotalAmount.IsPositive() {
		return ErrPurchaseAmountNotPositive
	}

	// Every installment needs at least one cent
	installments := p.NumInstallments
	if installments < 1 {
		installments = 1
	}
	if p.TotalAmount.LessThan(decimal.New(int64(installments), -2)) {
		return ErrPurchaseAmountTooSmall
	}

	if p.IsBNPL && (p.BillingStartDate == nil || p.BillingStartDate.IsZero()) {
		return ErrPurchaseBillingStartMissing
	}

	if p.PurchaseDate.IsZero() {
		p.PurchaseDate = time.Now().In(time.UTC)
	} else {
		p.PurchaseDate = p.PurchaseDate.In(time.UTC)
	}

	if p.BillingStartDate != nil {
		date := p.BillingStartDate.In(time.UTC)
		p.BillingStartDate = &date
	}

	return nil
}

// Installments expands the purchase into the transactions paying it off.
//
// The first installment is billed on the billing start date when one is
// set, otherwise on the purchase date. Every further installment is
// billed one calendar month later.
//
// The amount is split evenly and rounded down to cents, with the last
// installment absorbing the rounding difference so that the installments
// always add up to the total amount exactly. Rounding down keeps every
// installment positive for any total that passes validation.
func (p Purchase) Installments() []Transaction {
	count := p.NumInstallments
	if count < 1 {
		count = 1
	}

	anchor := p.PurchaseDate
	if p.BillingStartDate != nil && !p.BillingStartDate.IsZero() {
		anchor = *p.BillingStartDate
	}

	amount := p.TotalAmount.Div(decimal.NewFromInt(int64(count))).RoundDown(2)

	transactions := make([]Transaction, 0, count)
	for i := 0; i < count; i++ {
		description := p.Description
		if count > 1 {
			description = fmt.Sprintf("%s (Installment %d/%d)", p.Description, i+1, count)
		}

		installment := amount
		if i == count-1 {
			// The last installment absorbs the rounding difference
			installment = p.TotalAmount.Sub(amount.Mul(decimal.NewFromInt(int64(count - 1))))
		}

		transactions = append(transactions, Transaction{
			CreditCardID: p.CreditCardID,
			PersonID:     p.PersonID,
			Date:         addMonths(anchor, i),
			Amount:       installment,
			Description:  description,
		})
	}

	return transactions
}

// CreateWithTransactions creates the purchase together with its
// installment transactions in a single database transaction.
func (p *Purchase) CreateWithTransactions(db *gorm.DB) ([]Transaction, error) {
	transactions := p.Installments()

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(p).Error
		if err != nil {
			return err
		}

		for i := range transactions {
			transactions[i].PurchaseID = &p.ID
		}

		return tx.Create(&transactions).Error
	})
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// DeleteWithTransactions deletes the purchase together with all
// transactions referencing it. If any deletion fails, nothing is
// deleted.
func (p Purchase) DeleteWithTransactions(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("purchase_id = ?", p.ID).Delete(&Transaction{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&p).Error
	})
}

// addMonths adds calendar months to a date. When the day of the month
// does not exist in the target month, the date is clamped to the last
// day of that month, so January 31st plus one month is February 28th.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	first := time.Date(year, month+time.Month(months), 1, hour, min, sec, t.Nanosecond(), t.Location())

	// Last day of the target month
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}
