package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// NewValidator initializes the shared validator instance. Struct fields
// are reported under their json names so error paths match the wire form.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate = v
	return validate
}

// GetValidator returns the shared validator, initializing it on first use
func GetValidator() *validator.Validate {
	if validate == nil {
		return NewValidator()
	}
	return validate
}

// ValidateStruct runs tag-based validation on req and returns every
// violation keyed by field path, e.g. "client_name" or
// "line_items[1].quantity". An empty result means the struct passed.
func ValidateStruct(req interface{}) FieldErrors {
	fieldErrs := NewFieldErrors()

	err := GetValidator().Struct(req)
	if err == nil {
		return fieldErrs
	}

	var validateErrs validator.ValidationErrors
	if !errorsAs(err, &validateErrs) {
		fieldErrs.Add("", err.Error())
		return fieldErrs
	}

	for _, fe := range validateErrs {
		fieldErrs.Add(fieldPath(fe), messageFor(fe))
	}
	return fieldErrs
}

// fieldPath strips the root struct name from the error namespace:
// "CreateInvoiceRequest.line_items[1].quantity" -> "line_items[1].quantity"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return "must be " + fe.Param() + " characters or fewer"
		}
		return "must be " + fe.Param() + " or less"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must have at least " + fe.Param() + " entries"
		}
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be " + fe.Param() + " or greater"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be " + fe.Param() + " or greater"
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be " + fe.Param() + " or less"
	default:
		return "is invalid"
	}
}
