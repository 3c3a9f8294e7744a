package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/JohnPevien/credit-card-tracker/internal/controllers/v1"
	"github.com/JohnPevien/credit-card-tracker/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestPurchasesCreate() {
	purchase := createTestPurchase(suite.T(), v1.PurchaseEditable{
		PurchaseDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.NewFromFloat(300),
		Description:     "Phone",
		NumInstallments: 3,
	})

	assert.Equal(suite.T(), "Phone", purchase.Data.Description)

	// The installment transactions are part of the response
	require.Len(suite.T(), purchase.Data.Transactions, 3)

	for i, transaction := range purchase.Data.Transactions {
		assert.True(suite.T(), transaction.Amount.Equal(decimal.NewFromFloat(100)), "installment %d has amount %s", i+1, transaction.Amount)
		assert.Equal(suite.T(), purchase.Data.ID, *transaction.PurchaseID)

		// The owning purchase is embedded in its installments
		require.NotNil(suite.T(), transaction.Purchase)
		assert.Equal(suite.T(), purchase.Data.ID, transaction.Purchase.ID)
	}

	assert.Equal(suite.T(), "Phone (Installment 1/3)", purchase.Data.Transactions[0].Description)
	assert.Equal(suite.T(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), purchase.Data.Transactions[2].Date)
}

func (suite *TestSuiteStandard) TestPurchasesCreateRounding() {
	purchase := createTestPurchase(suite.T(), v1.PurchaseEditable{
		PurchaseDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.NewFromFloat(100),
		NumInstallments: 3,
	})

	require.Len(suite.T(), purchase.Data.Transactions, 3)

	// The last installment absorbs the rounding difference
	sum := decimal.Zero
	for _, transaction := range purchase.Data.Transactions {
		sum = sum.Add(transaction.Amount)
	}
	assert.True(suite.T(), sum.Equal(decimal.NewFromFloat(100)), "installments sum up to %s", sum)
	assert.True(suite.T(), purchase.Data.Transactions[2].Amount.Equal(decimal.NewFromFloat(33.34)))
}

func (suite *TestSuiteStandard) TestPurchasesCreateBNPL() {
	billingStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	purchase := createTestPurchase(suite.T(), v1.PurchaseEditable{
		PurchaseDate:     time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		BillingStartDate: &billingStart,
		Amount:           decimal.NewFromFloat(120),
		NumInstallments:  3,
		IsBNPL:           true,
	})

	require.Len(suite.T(), purchase.Data.Transactions, 3)

	// The schedule anchors on the billing start date
	assert.Equal(suite.T(), billingStart, purchase.Data.Transactions[0].Date)
	assert.Equal(suite.T(), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), purchase.Data.Transactions[2].Date)
}

func (suite *TestSuiteStandard) TestPurchasesCreateInvalid() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{})
	person := createTestPerson(suite.T(), v1.PersonEditable{})

	tests := []struct {
		name     string
		editable v1.PurchaseEditable
	}{
		{"No installments", v1.PurchaseEditable{CreditCardID: card.Data.ID, PersonID: person.Data.ID, Amount: decimal.NewFromFloat(100)}},
		{"Negative installments", v1.PurchaseEditable{CreditCardID: card.Data.ID, PersonID: person.Data.ID, Amount: decimal.NewFromFloat(100), NumInstallments: -2}},
		{"Amount zero", v1.PurchaseEditable{CreditCardID: card.Data.ID, PersonID: person.Data.ID, NumInstallments: 1}},
		{"Amount negative", v1.PurchaseEditable{CreditCardID: card.Data.ID, PersonID: person.Data.ID, Amount: decimal.NewFromFloat(-10), NumInstallments: 1}},
		{"Amount below one cent per installment", v1.PurchaseEditable{CreditCardID: card.Data.ID, PersonID: person.Data.ID, Amount: decimal.NewFromFloat(0.01), NumInstallments: 3}},
		{"BNPL without billing start", v1.PurchaseEditable{CreditCardID: card.Data.ID, PersonID: person.Data.ID, Amount: decimal.NewFromFloat(100), NumInstallments: 1, IsBNPL: true}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/purchases", []v1.PurchaseEditable{tt.editable})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestPurchasesCreateRollback() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{})
	person := createTestPerson(suite.T(), v1.PersonEditable{})

	// One purchase fails, the other succeeds. The failed purchase must
	// not leave any resources behind
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/purchases", []v1.PurchaseEditable{
		{CreditCardID: card.Data.ID, PersonID: person.Data.ID, Amount: decimal.NewFromFloat(-10), NumInstallments: 2},
		{CreditCardID: card.Data.ID, PersonID: person.Data.ID, Amount: decimal.NewFromFloat(100), NumInstallments: 2},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/purchases", "")
	var response v1.PurchaseListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &transactions)
	assert.Len(suite.T(), transactions.Data, 2)
}

func (suite *TestSuiteStandard) TestPurchasesGetFilter() {
	card := createTestCreditCard(suite.T(), v1.CreditCardEditable{})
	person := createTestPerson(suite.T(), v1.PersonEditable{})

	_ = createTestPurchase(suite.T(), v1.PurchaseEditable{
		CreditCardID:    card.Data.ID,
		PersonID:        person.Data.ID,
		PurchaseDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Description:     "Groceries",
		NumInstallments: 1,
	})
	_ = createTestPurchase(suite.T(), v1.PurchaseEditable{
		PurchaseDate:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description:     "Washing machine",
		NumInstallments: 3,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Card matches", fmt.Sprintf("card=%s", card.Data.ID), 1},
		{"Person matches", fmt.Sprintf("person=%s", person.Data.ID), 1},
		{"Description matches", "description=machine", 1},
		{"From date", fmt.Sprintf("fromDate=%s", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339Nano)), 1},
		{"Until date", fmt.Sprintf("untilDate=%s", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339Nano)), 1},
		{"Date range matches all", fmt.Sprintf("fromDate=%s&untilDate=%s", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339Nano), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC).Format(time.RFC3339Nano)), 2},
		{"No results", "description=DoesNotExist", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/purchases?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.PurchaseListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestPurchasesGetSingle() {
	purchase := createTestPurchase(suite.T(), v1.PurchaseEditable{NumInstallments: 2})

	recorder := test.Request(suite.T(), http.MethodGet, purchase.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PurchaseResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), purchase.Data.ID, response.Data.ID)
	assert.Len(suite.T(), response.Data.Transactions, 2)
}

func (suite *TestSuiteStandard) TestPurchasesUpdateNotAllowed() {
	purchase := createTestPurchase(suite.T(), v1.PurchaseEditable{})

	recorder := test.Request(suite.T(), http.MethodPatch, purchase.Data.Links.Self, map[string]any{
		"description": "Updated",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestPurchasesDelete() {
	purchase := createTestPurchase(suite.T(), v1.PurchaseEditable{NumInstallments: 3})

	// A standalone transaction that must survive the deletion
	standalone := createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromFloat(-50)})

	recorder := test.Request(suite.T(), http.MethodDelete, purchase.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, purchase.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	// The installment transactions are deleted with the purchase
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), standalone.Data.ID, response.Data[0].ID)
}

func (suite *TestSuiteStandard) TestPurchasesOptions() {
	purchase := createTestPurchase(suite.T(), v1.PurchaseEditable{})

	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/purchases", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), http.MethodOptions, purchase.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, DELETE", recorder.Header().Get("allow"))
}
