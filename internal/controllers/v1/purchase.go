package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/JohnPevien/credit-card-tracker/internal/httputil"
	"github.com/JohnPevien/credit-card-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterPurchaseRoutes registers the routes for purchases with
// the RouterGroup that is passed.
//
// Purchases cannot be updated. The installment transactions are derived
// from the purchase at creation time and editing the purchase afterwards
// would silently detach them from what they were derived from. Delete
// the purchase and create it again instead.
func RegisterPurchaseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPurchaseList)
		r.GET("", GetPurchases)
		r.POST("", CreatePurchases)
	}

	// Purchase with ID
	{
		r.OPTIONS("/:id", OptionsPurchaseDetail)
		r.GET("/:id", GetPurchase)
		r.DELETE("/:id", DeletePurchase)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Purchases
// @Success		204
// @Router			/v1/purchases [options]
func OptionsPurchaseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Purchases
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/purchases/{id} [options]
func OptionsPurchaseDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Purchase{}, httputil.OptionsGetDelete)
}

// @Summary		Create purchases
// @Description	Creates new purchases. Each purchase is created together with its installment transactions, which are part of the response.
// @Tags			Purchases
// @Produce		json
// @Success		201			{object}	PurchaseCreateResponse
// @Failure		400			{object}	PurchaseCreateResponse
// @Failure		404			{object}	PurchaseCreateResponse
// @Failure		500			{object}	PurchaseCreateResponse
// @Param			purchases	body		[]PurchaseEditable	true	"Purchases"
// @Router			/v1/purchases [post]
func CreatePurchases(c *gin.Context) {
	var editables []PurchaseEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PurchaseCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := PurchaseCreateResponse{}

	for _, editable := range editables {
		if editable.NumInstallments < 1 {
			status = r.appendError(errPurchaseInstallmentsInvalid, status)
			continue
		}

		purchase := editable.model()

		_, err = purchase.CreateWithTransactions(models.DB)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newPurchase(c, models.DB, purchase)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, PurchaseResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get purchases
// @Description	Returns a list of purchases
// @Tags			Purchases
// @Produce		json
// @Success		200	{object}	PurchaseListResponse
// @Failure		400	{object}	PurchaseListResponse
// @Failure		500	{object}	PurchaseListResponse
// @Router			/v1/purchases [get]
// @Param			card		query	string	false	"Filter by credit card ID"
// @Param			person		query	string	false	"Filter by person ID"
// @Param			description	query	string	false	"Filter by description"
// @Param			bnpl		query	bool	false	"Is the purchase 'buy now, pay later'?"
// @Param			fromDate	query	string	false	"Purchases from this date. Time is ignored."
// @Param			untilDate	query	string	false	"Purchases until this date. Time is ignored."
// @Param			offset		query	uint	false	"The offset of the first purchase returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of purchases to return. Defaults to 50."
func GetPurchases(c *gin.Context) {
	var filter PurchaseQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, PurchaseListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurchaseListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("datetime(purchases.purchase_date) DESC, datetime(purchases.created_at) DESC").
		Where(&filterModel, queryFields...)

	if filter.Description != "" {
		q = q.Where("purchases.description LIKE ?", fmt.Sprintf("%%%s%%", filter.Description))
	} else if slices.Contains(setFields, "Description") {
		q = q.Where("purchases.description = ''")
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("purchases.purchase_date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("purchases.purchase_date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 purchases and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var purchases []models.Purchase
	err = q.Find(&purchases).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurchaseListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PurchaseListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Purchase, 0)
	for _, purchase := range purchases {
		apiResource, err := newPurchase(c, models.DB, purchase)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PurchaseListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, PurchaseListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get purchase
// @Description	Returns a specific purchase with its installment transactions
// @Tags			Purchases
// @Produce		json
// @Success		200	{object}	PurchaseResponse
// @Failure		400	{object}	PurchaseResponse
// @Failure		404	{object}	PurchaseResponse
// @Failure		500	{object}	PurchaseResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/purchases/{id} [get]
func GetPurchase(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurchaseResponse{
			Error: &s,
		})
		return
	}

	var purchase models.Purchase
	err = models.DB.First(&purchase, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurchaseResponse{
			Error: &s,
		})
		return
	}

	data, err := newPurchase(c, models.DB, purchase)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PurchaseResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, PurchaseResponse{Data: &data})
}

// @Summary		Delete purchase
// @Description	Deletes a purchase together with all transactions that belong to it
// @Tags			Purchases
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/purchases/{id} [delete]
func DeletePurchase(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var purchase models.Purchase
	err = models.DB.First(&purchase, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = purchase.DeleteWithTransactions(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
