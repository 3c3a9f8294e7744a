package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/JohnPevien/credit-card-tracker/internal/models"
	ez_uuid "github.com/JohnPevien/credit-card-tracker/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionEditable struct {
	Date time.Time `json:"date" example:"2024-01-15T00:00:00Z"` // Date of the transaction. Time is currently only used for sorting

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction. Negative amounts are payments or refunds

	Description  string     `json:"description" example:"Lunch" default:""`                      // Description of the transaction
	CreditCardID uuid.UUID  `json:"creditCardId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"` // ID of the credit card
	PersonID     uuid.UUID  `json:"personId" example:"d3c2e9a1-8a6c-4b7e-9d42-1c2f71717d1a"`     // ID of the person
	PurchaseID   *uuid.UUID `json:"purchaseId" example:"ecf4f120-a0f0-4ccb-916e-87eb03a77b79"`   // ID of the purchase this transaction is an installment of. Null for standalone transactions
	Paid         bool       `json:"paid" example:"false" default:"false"`                        // Has this transaction been paid?
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:         editable.Date,
		Amount:       editable.Amount,
		Description:  editable.Description,
		CreditCardID: editable.CreditCardID,
		PersonID:     editable.PersonID,
		PurchaseID:   editable.PurchaseID,
		Paid:         editable.Paid,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`

	// These fields are computed. They are null when the referenced
	// resource no longer exists
	CreditCard *CreditCard `json:"creditCard"` // The credit card the transaction was made with
	Person     *Person     `json:"person"`     // The person the transaction belongs to
	Purchase   *Purchase   `json:"purchase"`   // The purchase this transaction is an installment of. Null for standalone transactions
}

// newTransaction returns the API representation of the resource
func newTransaction(c *gin.Context, db *gorm.DB, model models.Transaction) (Transaction, error) {
	url := c.GetString(string(models.DBContextURL))

	transaction := Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:         model.Date,
			Amount:       model.Amount,
			Description:  model.Description,
			CreditCardID: model.CreditCardID,
			PersonID:     model.PersonID,
			PurchaseID:   model.PurchaseID,
			Paid:         model.Paid,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}

	var card models.CreditCard
	err := db.First(&card, model.CreditCardID).Error
	if err == nil {
		apiResource, err := newCreditCard(c, db, card)
		if err != nil {
			return Transaction{}, err
		}
		transaction.CreditCard = &apiResource
	} else if !errors.Is(err, models.ErrResourceNotFound) {
		return Transaction{}, err
	}

	var person models.Person
	err = db.First(&person, model.PersonID).Error
	if err == nil {
		apiResource := newPerson(c, person)
		transaction.Person = &apiResource
	} else if !errors.Is(err, models.ErrResourceNotFound) {
		return Transaction{}, err
	}

	if model.PurchaseID != nil {
		var purchase models.Purchase
		err = db.First(&purchase, *model.PurchaseID).Error
		if err == nil {
			apiResource := basePurchase(c, purchase)
			transaction.Purchase = &apiResource
		} else if !errors.Is(err, models.ErrResourceNotFound) {
			return Transaction{}, err
		}
	}

	return transaction, nil
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The transaction data, if creation was successful
}

// swagger:enum PaidStatus
type PaidStatus string

const (
	PaidStatusAll    PaidStatus = "all"
	PaidStatusPaid   PaidStatus = "paid"
	PaidStatusUnpaid PaidStatus = "unpaid"
)

type TransactionQueryFilter struct {
	Date              time.Time       `form:"date" filterField:"false"`              // Exact date. Time is ignored.
	FromDate          time.Time       `form:"fromDate" filterField:"false"`          // From this date. Time is ignored.
	UntilDate         time.Time       `form:"untilDate" filterField:"false"`         // Until this date. Time is ignored.
	Amount            decimal.Decimal `form:"amount"`                                // Exact amount
	AmountLessOrEqual decimal.Decimal `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	Description       string          `form:"description" filterField:"false"`       // Description contains this string
	CreditCardID      ez_uuid.UUID    `form:"card"`                                  // ID of the credit card
	PersonID          ez_uuid.UUID    `form:"person"`                                // ID of the person
	PurchaseID        ez_uuid.UUID    `form:"purchase" filterField:"false"`          // ID of the purchase
	Standalone        bool            `form:"standalone" filterField:"false"`        // Only transactions without a purchase (payments and refunds)
	Paid              PaidStatus      `form:"paid" filterField:"false"`              // Paid status of the transaction - all, paid or unpaid
	Offset            uint            `form:"offset" filterField:"false"`            // The offset of the first transaction returned. Defaults to 0.
	Limit             int             `form:"limit" filterField:"false"`             // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	// This does not set the string or date fields since they are
	// handled in the controller function
	return TransactionEditable{
		Amount:       f.Amount,
		CreditCardID: f.CreditCardID.UUID,
		PersonID:     f.PersonID.UUID,
	}.model(), nil
}
