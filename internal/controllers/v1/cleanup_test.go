package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/JohnPevien/credit-card-tracker/internal/controllers/v1"
	"github.com/JohnPevien/credit-card-tracker/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	_ = createTestPerson(suite.T(), v1.PersonEditable{})
	_ = createTestCreditCard(suite.T(), v1.CreditCardEditable{Name: "TestCleanup"})
	_ = createTestPurchase(suite.T(), v1.PurchaseEditable{NumInstallments: 3})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromFloat(17.32)})

	tests := []string{
		"http://example.com/v1/persons",
		"http://example.com/v1/credit-cards",
		"http://example.com/v1/purchases",
		"http://example.com/v1/transactions",
	}

	// Delete
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify
	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodGet, tt, "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}

			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", tt)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"Invalid path", "confirm=2"},
		{"Confirmation wrong", "confirm=invalid-confirmation"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1?%s", tt.path), "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
