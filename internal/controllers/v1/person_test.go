package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/JohnPevien/credit-card-tracker/internal/controllers/v1"
	"github.com/JohnPevien/credit-card-tracker/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestPersonsCreate() {
	person := createTestPerson(suite.T(), v1.PersonEditable{Name: "José García"})

	assert.Equal(suite.T(), "José García", person.Data.Name)
	assert.Equal(suite.T(), "jose-garcia", person.Data.Slug)
	assert.NotEmpty(suite.T(), person.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestPersonsCreateInvalidBody() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/persons", `{ "name": 2" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPersonsCreateDuplicateSlug() {
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "First", Slug: "taken"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/persons", []v1.PersonEditable{{Name: "Second", Slug: "taken"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPersonsGet() {
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Alice"})
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Bob"})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/persons", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PersonListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), 2, response.Pagination.Count)

	// Persons are sorted by name
	assert.Equal(suite.T(), "Alice", response.Data[0].Name)
	assert.Equal(suite.T(), "Bob", response.Data[1].Name)
}

func (suite *TestSuiteStandard) TestPersonsGetFilter() {
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Alice Example"})
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Bob Builder"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Name matches", "name=Alice", 1},
		{"Name does not match", "name=Charlie", 0},
		{"Slug matches", "slug=bob-builder", 1},
		{"Slug is exact", "slug=bob", 0},
		{"Search matches", "search=Example", 1},
		{"Limit", "limit=1", 1},
		{"Offset", "offset=1&limit=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/persons?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.PersonListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestPersonsGetSingle() {
	person := createTestPerson(suite.T(), v1.PersonEditable{Name: "Single"})

	recorder := test.Request(suite.T(), http.MethodGet, person.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PersonResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), person.Data.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestPersonsGetNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/persons/3a5da7cc-d33a-4bd4-a461-0458b2a07cd1", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPersonsGetInvalidID() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/persons/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPersonsUpdate() {
	person := createTestPerson(suite.T(), v1.PersonEditable{Name: "Old Name"})

	recorder := test.Request(suite.T(), http.MethodPatch, person.Data.Links.Self, map[string]any{
		"name": "New Name",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PersonResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "New Name", response.Data.Name)

	// The slug stays stable when the person is renamed
	assert.Equal(suite.T(), "old-name", response.Data.Slug)
}

func (suite *TestSuiteStandard) TestPersonsDelete() {
	person := createTestPerson(suite.T(), v1.PersonEditable{})

	recorder := test.Request(suite.T(), http.MethodDelete, person.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, person.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPersonsOptions() {
	person := createTestPerson(suite.T(), v1.PersonEditable{})

	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/persons", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), http.MethodOptions, person.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", recorder.Header().Get("allow"))
}
