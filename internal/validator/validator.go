// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("payment_type", validatePaymentType)
		_ = v.RegisterValidation("notification_type", validateNotificationType)
	}
}

func validatePaymentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "cash", "card", "ewallet", "online":
		return true
	}
	return false
}

func validateNotificationType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "welfare", "transaction":
		return true
	}
	return false
}
