package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("billing_code", validateBillingCode)
	validate.RegisterValidation("payment_method", validatePaymentMethod)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Billing codes are uppercase-insensitive alphanumerics with optional hyphen
// separators, 3 to 16 characters, e.g. "99213" or "EXAM-STD".
func validateBillingCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	re := regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z-]{1,14}[0-9A-Za-z]$`)
	return re.MatchString(code)
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	switch value {
	case "cash", "card", "check", "insurance", "mixed":
		return true
	}
	return false
}
