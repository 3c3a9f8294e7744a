package v1

import (
	"fmt"

	"github.com/JohnPevien/credit-card-tracker/internal/models"
	"github.com/gin-gonic/gin"
)

// PersonEditable represents all user configurable parameters
type PersonEditable struct {
	Name string `json:"name" example:"Alice Example" default:""`  // Name of the person
	Slug string `json:"slug" example:"alice-example" default:""` // URL-safe identifier. Derived from the name when empty
}

// model returns the database resource for the API representation of the editable fields
func (editable PersonEditable) model() models.Person {
	return models.Person{
		Name: editable.Name,
		Slug: editable.Slug,
	}
}

type PersonLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/persons/d3c2e9a1-8a6c-4b7e-9d42-1c2f71717d1a"`                  // The person itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?person=d3c2e9a1-8a6c-4b7e-9d42-1c2f71717d1a"` // Transactions for this person
	Purchases    string `json:"purchases" example:"https://example.com/api/v1/purchases?person=d3c2e9a1-8a6c-4b7e-9d42-1c2f71717d1a"`       // Purchases for this person
}

// Person is the API representation of a person.
type Person struct {
	models.DefaultModel
	PersonEditable
	Links PersonLinks `json:"links"`
}

func newPerson(c *gin.Context, model models.Person) Person {
	url := c.GetString(string(models.DBContextURL))

	return Person{
		DefaultModel: model.DefaultModel,
		PersonEditable: PersonEditable{
			Name: model.Name,
			Slug: model.Slug,
		},
		Links: PersonLinks{
			Self:         fmt.Sprintf("%s/v1/persons/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?person=%s", url, model.ID),
			Purchases:    fmt.Sprintf("%s/v1/purchases?person=%s", url, model.ID),
		},
	}
}

type PersonListResponse struct {
	Data       []Person    `json:"data"`                                                          // List of persons
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PersonCreateResponse struct {
	Data  []PersonResponse `json:"data"`                                                          // List of the created persons or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PersonCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PersonResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PersonResponse struct {
	Data  *Person `json:"data"`                                                          // Data for the person
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PersonQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Slug   string `form:"slug"`                       // By exact slug
	Search string `form:"search" filterField:"false"` // Search for this text in the name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first person returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of persons to return. Defaults to 50.
}

func (f PersonQueryFilter) model() (models.Person, error) {
	return models.Person{
		Slug: f.Slug,
	}, nil
}
