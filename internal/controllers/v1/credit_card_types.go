package v1

import (
	"errors"
	"fmt"

	"github.com/JohnPevien/credit-card-tracker/internal/models"
	ez_uuid "github.com/JohnPevien/credit-card-tracker/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreditCardEditable represents all user configurable parameters
type CreditCardEditable struct {
	Name            string     `json:"name" example:"Platinum" default:""`                              // Display name of the card
	LastFourDigits  string     `json:"lastFourDigits" example:"4242"`                                   // Last four digits of the card number
	CardholderName  string     `json:"cardholderName" example:"Alice Example" default:""`               // Name printed on the card
	Issuer          string     `json:"issuer" example:"Example Bank" default:""`                        // Issuing bank
	IsSupplementary bool       `json:"isSupplementary" example:"false" default:"false"`                 // Is this a supplementary card?
	PrincipalCardID *uuid.UUID `json:"principalCardId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the principal card. Required for supplementary cards
}

// model returns the database resource for the API representation of the editable fields
func (editable CreditCardEditable) model() models.CreditCard {
	return models.CreditCard{
		Name:            editable.Name,
		LastFourDigits:  editable.LastFourDigits,
		CardholderName:  editable.CardholderName,
		Issuer:          editable.Issuer,
		IsSupplementary: editable.IsSupplementary,
		PrincipalCardID: editable.PrincipalCardID,
	}
}

type CreditCardLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/credit-cards/af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"`                  // The credit card itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?card=af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"`      // Transactions for this credit card
	Purchases    string `json:"purchases" example:"https://example.com/api/v1/purchases?card=af892e10-7e0a-4fb8-b1bc-4b6d88401ed9"`            // Purchases for this credit card
}

// CreditCard is the API representation of a credit card.
type CreditCard struct {
	models.DefaultModel
	CreditCardEditable
	Links CreditCardLinks `json:"links"`

	// These fields are computed
	PrincipalCard *CreditCard `json:"principalCard"` // The principal card for supplementary cards. Null when the principal card no longer exists
}

func newCreditCard(c *gin.Context, db *gorm.DB, model models.CreditCard) (CreditCard, error) {
	url := c.GetString(string(models.DBContextURL))

	card := CreditCard{
		DefaultModel: model.DefaultModel,
		CreditCardEditable: CreditCardEditable{
			Name:            model.Name,
			LastFourDigits:  model.LastFourDigits,
			CardholderName:  model.CardholderName,
			Issuer:          model.Issuer,
			IsSupplementary: model.IsSupplementary,
			PrincipalCardID: model.PrincipalCardID,
		},
		Links: CreditCardLinks{
			Self:         fmt.Sprintf("%s/v1/credit-cards/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?card=%s", url, model.ID),
			Purchases:    fmt.Sprintf("%s/v1/purchases?card=%s", url, model.ID),
		},
	}

	if model.PrincipalCardID != nil {
		var principal models.CreditCard
		err := db.First(&principal, *model.PrincipalCardID).Error
		if err != nil {
			// A deleted principal card is reported as null
			if errors.Is(err, models.ErrResourceNotFound) {
				return card, nil
			}

			return CreditCard{}, err
		}

		principalCard, err := newCreditCard(c, db, principal)
		if err != nil {
			return CreditCard{}, err
		}
		card.PrincipalCard = &principalCard
	}

	return card, nil
}

type CreditCardListResponse struct {
	Data       []CreditCard `json:"data"`                                                          // List of credit cards
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type CreditCardCreateResponse struct {
	Data  []CreditCardResponse `json:"data"`                                                          // List of the created credit cards or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CreditCardCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CreditCardResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CreditCardResponse struct {
	Data  *CreditCard `json:"data"`                                                          // Data for the credit card
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CreditCardQueryFilter struct {
	Name            string       `form:"name" filterField:"false"`   // By name
	Issuer          string       `form:"issuer" filterField:"false"` // By issuer
	IsSupplementary bool         `form:"supplementary"`              // Is the card supplementary?
	PrincipalCardID ez_uuid.UUID `form:"principal"`                  // By ID of the principal card
	Offset          uint         `form:"offset" filterField:"false"` // The offset of the first credit card returned. Defaults to 0.
	Limit           int          `form:"limit" filterField:"false"`  // Maximum number of credit cards to return. Defaults to 50.
}

func (f CreditCardQueryFilter) model() (models.CreditCard, error) {
	// If the principal card ID is not set, use an actual nil, not uuid.Nil
	var pID *uuid.UUID
	if f.PrincipalCardID != ez_uuid.Nil {
		pID = &f.PrincipalCardID.UUID
	}

	return models.CreditCard{
		IsSupplementary: f.IsSupplementary,
		PrincipalCardID: pID,
	}, nil
}
