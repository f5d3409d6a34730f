package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":      "{field} is required",
		"gte":           "{field} must be greater than or equal to {param}",
		"lte":           "{field} must be less than or equal to {param}",
		"oneof":         "{field} must be one of {param}",
		"max":           "{field} must be less than or equal to {param}",
		"min":           "{field} must be greater than or equal to {param}",
		"email":         "{field} must be a valid email address",
		"gtfield":       "{field} must be after {param}",
		"hexcolor":      "{field} must be a valid hex color",
		"gstin":         "{field} must be a valid GST identification number",
		"timeslot":      "{field} must be a time slot formatted as HH:MM-HH:MM",
		"invoiceprefix": "{field} must be 1-10 uppercase letters, digits or dashes",
		"required_if":   "{field} is required",
		"uuid":          "{field} must be a valid UUID",
		"datetime":      "{field} must use the format {param}",
		"mimetypes":     "{field} must be one of these file types: {param}",
		"maxfilesize":   "{field} must not be larger than {param} MB",
	}
)

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			errStr := ""
			field := valErr.Field()
			param := valErr.Param()

			errStr = messages[valErr.Tag()]
			if errStr != "" {
				errStr = strings.ReplaceAll(errStr, "{field}", field)
				errStr = strings.ReplaceAll(errStr, "{param}", param)

				return errStr
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}
