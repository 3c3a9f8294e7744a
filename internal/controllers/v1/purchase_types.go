package v1

import (
	"fmt"
	"time"

	"github.com/JohnPevien/credit-card-tracker/internal/models"
	ez_uuid "github.com/JohnPevien/credit-card-tracker/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseEditable represents all user configurable parameters
type PurchaseEditable struct {
	CreditCardID     uuid.UUID  `json:"creditCardId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"` // ID of the credit card the purchase was made with
	PersonID         uuid.UUID  `json:"personId" example:"d3c2e9a1-8a6c-4b7e-9d42-1c2f71717d1a"`     // ID of the person the purchase belongs to
	PurchaseDate     time.Time  `json:"purchaseDate" example:"2024-01-15T00:00:00Z"`                 // Date of the purchase
	BillingStartDate *time.Time `json:"billingStartDate" example:"2024-03-01T00:00:00Z"`             // First billing date. Only set when billing starts later than the purchase date

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"300" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The total amount of the purchase

	Description     string `json:"description" example:"Washing machine" default:""` // Description of the purchase
	NumInstallments int    `json:"numInstallments" example:"3" minimum:"1"`          // Number of monthly installments the amount is split into
	IsBNPL          bool   `json:"isBnpl" example:"false" default:"false"`           // Is this a "buy now, pay later" purchase?
}

// model returns the database resource for the API representation of the editable fields
func (editable PurchaseEditable) model() models.Purchase {
	return models.Purchase{
		CreditCardID:     editable.CreditCardID,
		PersonID:         editable.PersonID,
		PurchaseDate:     editable.PurchaseDate,
		BillingStartDate: editable.BillingStartDate,
		TotalAmount:      editable.Amount,
		Description:      editable.Description,
		NumInstallments:  editable.NumInstallments,
		IsBNPL:           editable.IsBNPL,
	}
}

type PurchaseLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/purchases/ecf4f120-a0f0-4ccb-916e-87eb03a77b79"`                    // The purchase itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?purchase=ecf4f120-a0f0-4ccb-916e-87eb03a77b79"` // Transactions for this purchase
}

// Purchase is the API representation of a purchase.
type Purchase struct {
	models.DefaultModel
	PurchaseEditable
	Links PurchaseLinks `json:"links"`

	// This field is computed. It is omitted when the purchase is itself
	// embedded in a transaction
	Transactions []Transaction `json:"transactions,omitempty"` // The installment transactions for the purchase
}

// basePurchase returns the API representation of the purchase without
// its transactions. This is used to embed a purchase into its
// transactions without resolving those transactions again.
func basePurchase(c *gin.Context, model models.Purchase) Purchase {
	url := c.GetString(string(models.DBContextURL))

	return Purchase{
		DefaultModel: model.DefaultModel,
		PurchaseEditable: PurchaseEditable{
			CreditCardID:     model.CreditCardID,
			PersonID:         model.PersonID,
			PurchaseDate:     model.PurchaseDate,
			BillingStartDate: model.BillingStartDate,
			Amount:           model.TotalAmount,
			Description:      model.Description,
			NumInstallments:  model.NumInstallments,
			IsBNPL:           model.IsBNPL,
		},
		Links: PurchaseLinks{
			Self:         fmt.Sprintf("%s/v1/purchases/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?purchase=%s", url, model.ID),
		},
	}
}

func newPurchase(c *gin.Context, db *gorm.DB, model models.Purchase) (Purchase, error) {
	purchase := basePurchase(c, model)
	purchase.Transactions = make([]Transaction, 0)

	var transactions []models.Transaction
	err := db.
		Where("purchase_id = ?", model.ID).
		Order("datetime(transactions.date) ASC").
		Find(&transactions).Error
	if err != nil {
		return Purchase{}, err
	}

	for _, transaction := range transactions {
		apiResource, err := newTransaction(c, db, transaction)
		if err != nil {
			return Purchase{}, err
		}
		purchase.Transactions = append(purchase.Transactions, apiResource)
	}

	return purchase, nil
}

type PurchaseListResponse struct {
	Data       []Purchase  `json:"data"`                                                          // List of purchases
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PurchaseCreateResponse struct {
	Data  []PurchaseResponse `json:"data"`                                                          // List of the created purchases or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PurchaseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PurchaseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PurchaseResponse struct {
	Data  *Purchase `json:"data"`                                                          // Data for the purchase
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PurchaseQueryFilter struct {
	CreditCardID ez_uuid.UUID `form:"card"`                          // By ID of the credit card
	PersonID     ez_uuid.UUID `form:"person"`                        // By ID of the person
	Description  string       `form:"description" filterField:"false"` // Description contains this string
	IsBNPL       bool         `form:"bnpl"`                          // Is the purchase "buy now, pay later"?
	FromDate     time.Time    `form:"fromDate" filterField:"false"`  // Purchases from this date. Time is ignored.
	UntilDate    time.Time    `form:"untilDate" filterField:"false"` // Purchases until this date. Time is ignored.
	Offset       uint         `form:"offset" filterField:"false"`    // The offset of the first purchase returned. Defaults to 0.
	Limit        int          `form:"limit" filterField:"false"`     // Maximum number of purchases to return. Defaults to 50.
}

func (f PurchaseQueryFilter) model() (models.Purchase, error) {
	return models.Purchase{
		CreditCardID: f.CreditCardID.UUID,
		PersonID:     f.PersonID.UUID,
		IsBNPL:       f.IsBNPL,
	}, nil
}
