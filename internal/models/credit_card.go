package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreditCard represents a credit card, either a principal card or a
// supplementary card linked to its principal.
type CreditCard struct {
	DefaultModel
	Name            string // Display name of the card
	LastFourDigits  string
	CardholderName  string
	Issuer          string
	IsSupplementary bool
	PrincipalCardID *uuid.UUID  // Only set for supplementary cards
	PrincipalCard   *CreditCard `json:"-"`
}

var (
	ErrCreditCardLastFourDigits    = errors.New("the last four digits must be exactly four digits")
	ErrCreditCardPrincipalRequired = errors.New("a supplementary card needs a principal card")
	ErrCreditCardPrincipalInvalid  = errors.New("the principal card must not be a supplementary card itself")
)

var lastFourDigits = regexp.MustCompile(`^[0-9]{4}$`)

// BeforeSave ensures consistency for the credit card
//
// A card that is not supplementary must not reference a principal card,
// regardless of the input. A supplementary card must reference an
// existing card that is itself not supplementary, which also rules out
// self-references and multi-level supplementary chains.
//
// It trims whitespace from all strings
func (c *CreditCard) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.LastFourDigits = strings.TrimSpace(c.LastFourDigits)
	c.CardholderName = strings.TrimSpace(c.CardholderName)
	c.Issuer = strings.TrimSpace(c.Issuer)

	if !lastFourDigits.MatchString(c.LastFourDigits) {
		return ErrCreditCardLastFourDigits
	}

	if !c.IsSupplementary {
		c.PrincipalCardID = nil
		return nil
	}

	if c.PrincipalCardID == nil || *c.PrincipalCardID == uuid.Nil {
		return ErrCreditCardPrincipalRequired
	}

	var principal CreditCard
	err := tx.First(&principal, *c.PrincipalCardID).Error
	if err != nil {
		return fmt.Errorf("no existing credit card with specified PrincipalCardID: %w", err)
	}

	if principal.IsSupplementary {
		return ErrCreditCardPrincipalInvalid
	}

	return nil
}

// Transactions returns all transactions for this credit card.
func (c CreditCard) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.Where(&Transaction{CreditCardID: c.ID}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
