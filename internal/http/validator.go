package http

import (
	"fmt"
	"regexp"
	"strings"

	"libraryapi/internal/httpx"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var patronIDPattern = regexp.MustCompile(`^\d{6}$`)

func init() {
	validate = validator.New()

	validate.RegisterValidation("patron_id", validatePatronID)
	validate.RegisterValidation("isbn13", validateISBN13)
}

// validatePatronID accepts exactly 6 ASCII digits. Card numbers keep
// leading zeros, hence string-typed.
func validatePatronID(fl validator.FieldLevel) bool {
	return patronIDPattern.MatchString(fl.Field().String())
}

// validateISBN13 checks length only; the catalog stores whatever
// 13-character identifier the librarian enters.
func validateISBN13(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) == 13
}

func ValidateStruct(s interface{}) []httpx.ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var details []httpx.ErrorDetail
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, param)
		case "gt":
			message = fmt.Sprintf("%s must be greater than %s", field, param)
		case "patron_id":
			message = fmt.Sprintf("%s must be exactly 6 digits", field)
		case "isbn13":
			message = fmt.Sprintf("%s must be exactly 13 characters", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		fieldName := strings.ToLower(field[:1]) + field[1:]
		details = append(details, httpx.ErrorDetail{
			Field:   fieldName,
			Message: message,
		})
	}

	return details
}
