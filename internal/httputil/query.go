package httputil

import (
	"net/url"
	"reflect"
)

// GetURLFields checks which query parameters are set and which of those
// can be used directly in a gorm query.
//
// queryFields contains all field names that can be used directly in a
// gorm Where statement as arguments specifying the fields filtered on.
// As gorm uses any as type for the Where statement, we cannot use a
// []string type here.
//
// setFields returns a []string with all field names set in the query
// parameters. This can be useful to filter for zero values without
// defining them as pointer fields in gorm.
func GetURLFields(url *url.URL, filter any) ([]any, []string) {
	var queryFields []any
	var setFields []string

	val := reflectValue(filter)
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i).Name
		param := val.Type().Field(i).Tag.Get("form")

		// filterField is a struct tag that specifies if the field is used
		// to filter resources directly (e.g. CreditCardID on a
		// TransactionQueryFilter) or if it is a meta field that is
		// processed by explicit logic outside of GetURLFields
		// (e.g. FromDate on a TransactionQueryFilter)
		filterField := val.Type().Field(i).Tag.Get("filterField")

		if url.Query().Has(param) {
			// All fields are added to setFields
			setFields = append(setFields, field)

			// If the field is a filterField (true by default), add it to the queryFields
			if filterField != "false" {
				queryFields = append(queryFields, field)
			}
		}
	}

	return queryFields, setFields
}

func reflectValue(resource any) reflect.Value {
	return reflect.Indirect(reflect.ValueOf(resource))
}
