package models_test

import (
	"time"

	"github.com/JohnPevien/credit-card-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionFindTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	transaction := models.Transaction{
		Date: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
	}

	err := transaction.AfterFind(models.DB)
	if err != nil {
		assert.Fail(suite.T(), "transaction.AfterFind failed")
	}

	assert.Equal(suite.T(), time.UTC, transaction.Date.Location(), "Timezone for transaction is not UTC")
}

func (suite *TestSuiteStandard) TestTransactionSaveTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	transaction := models.Transaction{}
	err := transaction.BeforeSave(models.DB)
	if err != nil {
		assert.Fail(suite.T(), "transaction.BeforeSave failed")
	}

	assert.Equal(suite.T(), time.UTC, transaction.Date.Location(), "Timezone for transaction is not UTC")

	transaction = models.Transaction{
		Date: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
	}
	err = transaction.BeforeSave(models.DB)
	if err != nil {
		assert.Fail(suite.T(), "transaction.BeforeSave failed")
	}

	assert.Equal(suite.T(), time.UTC, transaction.Date.Location(), "Timezone for transaction is not UTC")
}

func (suite *TestSuiteStandard) TestTransactionTrimWhitespace() {
	transaction := suite.createTestTransaction(models.Transaction{
		Description: "  Whitespace galore!  \t",
	})

	assert.Equal(suite.T(), "Whitespace galore!", transaction.Description)
}

func (suite *TestSuiteStandard) TestTransactionNilPurchaseNormalized() {
	nilID := uuid.Nil
	transaction := suite.createTestTransaction(models.Transaction{
		PurchaseID: &nilID,
	})

	assert.Nil(suite.T(), transaction.PurchaseID)
}

func (suite *TestSuiteStandard) TestTransactionNegativeAmount() {
	// Negative amounts represent payments and refunds and are valid
	transaction := suite.createTestTransaction(models.Transaction{
		Amount:      decimal.NewFromFloat(-123.45),
		Description: "Payment, thank you",
	})

	var reloaded models.Transaction
	err := models.DB.First(&reloaded, transaction.ID).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), reloaded.Amount.Equal(decimal.NewFromFloat(-123.45)))
}

func (suite *TestSuiteStandard) TestTransactionPaidDefault() {
	transaction := suite.createTestTransaction(models.Transaction{})
	assert.False(suite.T(), transaction.Paid)

	transaction.Paid = true
	err := models.DB.Save(&transaction).Error
	assert.Nil(suite.T(), err)

	var reloaded models.Transaction
	err = models.DB.First(&reloaded, transaction.ID).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), reloaded.Paid)
}
