package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/JohnPevien/credit-card-tracker/internal/controllers/v1"
	"github.com/JohnPevien/credit-card-tracker/internal/models"
	"github.com/JohnPevien/credit-card-tracker/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCreditCardsCreate() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{
		Name:           "Platinum",
		LastFourDigits: "1234",
		CardholderName: "Alice Example",
		Issuer:         "Example Bank",
	})

	assert.Equal(suite.T(), "Platinum", card.Data.Name)
	assert.Equal(suite.T(), "1234", card.Data.LastFourDigits)
	assert.Nil(suite.T(), card.Data.PrincipalCard)
}

func (suite *TestSuiteStandard) TestCreditCardsCreateInvalidDigits() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/credit-cards", []v1.CreditCardEditable{{Name: "Invalid", LastFourDigits: "12"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.CreditCardCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Contains(suite.T(), *response.Data[0].Error, models.ErrCreditCardLastFourDigits.Error())
}

func (suite *TestSuiteStandard) TestCreditCardsCreateSupplementary() {
	principal := createTestCreditCard(suite.T(), v1.CreditCardEditable{Name: "Principal"})

	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{
		Name:            "Supplementary",
		IsSupplementary: true,
		PrincipalCardID: &principal.Data.ID,
	})

	require.NotNil(suite.T(), card.Data.PrincipalCard)
	assert.Equal(suite.T(), principal.Data.ID, card.Data.PrincipalCard.ID)
}

func (suite *TestSuiteStandard) TestCreditCardsCreateSupplementaryWithoutPrincipal() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/credit-cards", []v1.CreditCardEditable{{Name: "Orphan", LastFourDigits: "1234", IsSupplementary: true}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreditCardsGetFilter() {
	principal := createTestCreditCard(suite.T(), v1.CreditCardEditable{Name: "Main Card", Issuer: "Example Bank"})
	_ = createTestCreditCard(suite.T(), v1.CreditCardEditable{
		Name:            "Extra Card",
		Issuer:          "Other Bank",
		IsSupplementary: true,
		PrincipalCardID: &principal.Data.ID,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Name matches", "name=Main", 1},
		{"Issuer matches", "issuer=Bank", 2},
		{"Supplementary", "supplementary=true", 1},
		{"Principal", fmt.Sprintf("principal=%s", principal.Data.ID), 1},
		{"No results", "name=DoesNotExist", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/credit-cards?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.CreditCardListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestCreditCardsGetSingle() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{})

	recorder := test.Request(suite.T(), http.MethodGet, card.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CreditCardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), card.Data.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestCreditCardsUpdate() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{Name: "Old"})

	recorder := test.Request(suite.T(), http.MethodPatch, card.Data.Links.Self, map[string]any{
		"name": "New",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CreditCardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "New", response.Data.Name)
}

func (suite *TestSuiteStandard) TestCreditCardsDelete() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, card.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, card.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

// TestCreditCardsDeletedPrincipal verifies that a supplementary card
// reports a null principal card after the principal card is deleted.
func (suite *TestSuiteStandard) TestCreditCardsDeletedPrincipal() {
	principal := createTestCreditCard(suite.T(), v1.CreditCardEditable{Name: "Principal"})
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{
		Name:            "Supplementary",
		IsSupplementary: true,
		PrincipalCardID: &principal.Data.ID,
	})

	recorder := test.Request(suite.T(), http.MethodDelete, principal.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, card.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CreditCardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Nil(suite.T(), response.Data.PrincipalCard)
}

func (suite *TestSuiteStandard) TestCreditCardsDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/credit-cards", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.CreditCardListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}
