package types

import (
	"time"

	ierr "github.com/facturo/facturo/internal/errors"
)

// FormDateLayout is the wire format for dates entered on the invoice form
const FormDateLayout = "2006-01-02"

// ParseFormDate parses a form date string into a UTC calendar date
func ParseFormDate(value string) (time.Time, error) {
	t, err := time.Parse(FormDateLayout, value)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("invalid date: %s", value).
			Mark(ierr.ErrValidation)
	}
	return t.UTC(), nil
}
