package v1

import (
	"errors"
	"net/http"

	"github.com/JohnPevien/credit-card-tracker/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Purchase errors
var (
	errPurchaseInstallmentsInvalid = errors.New("the number of installments must be at least 1")
)

// Transaction errors
var (
	errTransactionPaidStatusInvalid = errors.New("the specified paid status is invalid")
)
