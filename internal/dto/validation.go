package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// currencyCodeRule accepts ISO-4217 style codes: exactly three ASCII
// letters. Case is normalized downstream by the service.
var currencyCodeRule validator.Func = func(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// RegisterValidations wires custom validation rules into gin's binding
// engine. Call once at startup before serving requests.
func RegisterValidations() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("currencycode", currencyCodeRule)
	}
	return nil
}
