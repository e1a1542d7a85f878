package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrors(t *testing.T) {
	fieldErrs := NewFieldErrors()
	assert.False(t, fieldErrs.Any())

	fieldErrs.Add("client_name", "is required")
	fieldErrs.Add("line_items[1].quantity", "must be greater than 0")
	fieldErrs.Add("line_items[1].quantity", "must be 10000 or less")
	assert.True(t, fieldErrs.Any())

	assert.Equal(t, []string{"client_name", "line_items[1].quantity"}, fieldErrs.Fields())

	details := fieldErrs.ToDetails()
	assert.Equal(t, "is required", details["client_name"])
	assert.Equal(t, "must be greater than 0; must be 10000 or less", details["line_items[1].quantity"])

	other := NewFieldErrors()
	other.Add("tax_rate", "must be 100 or less")
	fieldErrs.Merge(other)
	assert.Len(t, fieldErrs, 3)

	assert.Contains(t, fieldErrs.Error(), "client_name: is required")
}

func TestValidateStruct_FieldPaths(t *testing.T) {
	type item struct {
		Name  string  `json:"name" validate:"required"`
		Count float64 `json:"count" validate:"gt=0"`
	}
	type payload struct {
		Title string `json:"title" validate:"required,max=3"`
		Items []item `json:"items" validate:"required,min=1,dive"`
	}

	fieldErrs := ValidateStruct(&payload{
		Title: "too long",
		Items: []item{
			{Name: "ok", Count: 1},
			{Name: "", Count: 0},
		},
	})

	assert.Contains(t, fieldErrs, "title")
	assert.Contains(t, fieldErrs, "items[1].name")
	assert.Contains(t, fieldErrs, "items[1].count")
	assert.NotContains(t, fieldErrs, "items[0].name")
}
