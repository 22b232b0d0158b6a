// Package output serializes extraction results.
package output

import (
	"encoding/json"

	"github.com/orderportal/unitreport/pkg/unitreport/models"
)

// ToJSON serializes v to JSON, indented when pretty is set.
// Dates are written in RFC 3339 form.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// TableToJSON serializes the records of a single sheet.
func TableToJSON(t *models.Table, pretty bool) ([]byte, error) {
	return ToJSON(t, pretty)
}

// BatchToJSON serializes the records of a directory of workbooks.
func BatchToJSON(b *models.Batch, pretty bool) ([]byte, error) {
	return ToJSON(b, pretty)
}
