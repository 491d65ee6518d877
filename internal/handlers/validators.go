package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// paymentMethods are the accepted values for a payment record's method field.
var paymentMethods = map[string]bool{
	"transfer": true,
	"check":    true,
	"cash":     true,
	"card":     true,
	"other":    true,
}

// registerCustomValidators installs the custom binding validators on Gin's
// validator engine. Safe to call more than once.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
			return paymentMethods[fl.Field().String()]
		})
	}
}
