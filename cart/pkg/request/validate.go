package request

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const TagPhone = "phone"

// Local numbers such as 0901234567 and international ones such as +84901234567.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{6,20}$`)

func ValidatePhone(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return phonePattern.MatchString(value)
}

// NewValidator returns a validator that knows every tag used by the cart requests.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// the tag is a package constant, registration cannot fail
	_ = validate.RegisterValidation(TagPhone, ValidatePhone)
	return validate
}
