package v1

import (
	"fmt"
	"net/http"

	"github.com/JohnPevien/credit-card-tracker/internal/httputil"
	"github.com/JohnPevien/credit-card-tracker/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterCreditCardRoutes registers the routes for credit cards with
// the RouterGroup that is passed.
func RegisterCreditCardRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCreditCardList)
		r.GET("", GetCreditCards)
		r.POST("", CreateCreditCards)
	}

	// Credit card with ID
	{
		r.OPTIONS("/:id", OptionsCreditCardDetail)
		r.GET("/:id", GetCreditCard)
		r.PATCH("/:id", UpdateCreditCard)
		r.DELETE("/:id", DeleteCreditCard)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CreditCards
// @Success		204
// @Router			/v1/credit-cards [options]
func OptionsCreditCardList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CreditCards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/credit-cards/{id} [options]
func OptionsCreditCardDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.CreditCard{}, httputil.OptionsGetPatchDelete)
}

// @Summary		Create credit cards
// @Description	Creates new credit cards
// @Tags			CreditCards
// @Produce		json
// @Success		201		{object}	CreditCardCreateResponse
// @Failure		400		{object}	CreditCardCreateResponse
// @Failure		404		{object}	CreditCardCreateResponse
// @Failure		500		{object}	CreditCardCreateResponse
// @Param			cards	body		[]CreditCardEditable	true	"Credit cards"
// @Router			/v1/credit-cards [post]
func CreateCreditCards(c *gin.Context) {
	var editables []CreditCardEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := CreditCardCreateResponse{}

	for _, editable := range editables {
		card := editable.model()

		err = models.DB.Create(&card).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newCreditCard(c, models.DB, card)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, CreditCardResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get credit cards
// @Description	Returns a list of credit cards
// @Tags			CreditCards
// @Produce		json
// @Success		200	{object}	CreditCardListResponse
// @Failure		400	{object}	CreditCardListResponse
// @Failure		500	{object}	CreditCardListResponse
// @Router			/v1/credit-cards [get]
// @Param			name			query	string	false	"Filter by name"
// @Param			issuer			query	string	false	"Filter by issuer"
// @Param			supplementary	query	bool	false	"Is the card supplementary?"
// @Param			principal		query	string	false	"Filter by principal card ID"
// @Param			offset			query	uint	false	"The offset of the first credit card returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of credit cards to return. Defaults to 50."
func GetCreditCards(c *gin.Context) {
	var filter CreditCardQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CreditCardListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditCardListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	if filter.Issuer != "" {
		q = q.Where("issuer LIKE ?", fmt.Sprintf("%%%s%%", filter.Issuer))
	} else if slices.Contains(setFields, "Issuer") {
		q = q.Where("issuer = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 credit cards and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var cards []models.CreditCard
	err = q.Find(&cards).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditCardListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CreditCardListResponse{
			Error: &e,
		})
		return
	}

	data := make([]CreditCard, 0)
	for _, card := range cards {
		apiResource, err := newCreditCard(c, models.DB, card)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), CreditCardListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, CreditCardListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get credit card
// @Description	Returns a specific credit card
// @Tags			CreditCards
// @Produce		json
// @Success		200	{object}	CreditCardResponse
// @Failure		400	{object}	CreditCardResponse
// @Failure		404	{object}	CreditCardResponse
// @Failure		500	{object}	CreditCardResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/credit-cards/{id} [get]
func GetCreditCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &s,
		})
		return
	}

	var card models.CreditCard
	err = models.DB.First(&card, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &s,
		})
		return
	}

	data, err := newCreditCard(c, models.DB, card)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CreditCardResponse{Data: &data})
}

// @Summary		Update credit card
// @Description	Update an existing credit card. Only values to be updated need to be specified.
// @Tags			CreditCards
// @Accept			json
// @Produce		json
// @Success		200		{object}	CreditCardResponse
// @Failure		400		{object}	CreditCardResponse
// @Failure		404		{object}	CreditCardResponse
// @Failure		500		{object}	CreditCardResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			card	body		CreditCardEditable	true	"Credit card"
// @Router			/v1/credit-cards/{id} [patch]
func UpdateCreditCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &s,
		})
		return
	}

	var card models.CreditCard
	err = models.DB.First(&card, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CreditCardEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &s,
		})
		return
	}

	var data CreditCardEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&card).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &s,
		})
		return
	}

	r, err := newCreditCard(c, models.DB, card)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CreditCardResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CreditCardResponse{Data: &r})
}

// @Summary		Delete credit card
// @Description	Deletes a credit card. Transactions and purchases for the card are kept.
// @Tags			CreditCards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/credit-cards/{id} [delete]
func DeleteCreditCard(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var card models.CreditCard
	err = models.DB.First(&card, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&card).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
