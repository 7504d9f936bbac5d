package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// documentPattern accepts bare CPF (11 digits) or CNPJ (14 digits) numbers.
// Formatting characters must be stripped by the caller.
var documentPattern = regexp.MustCompile(`^(\d{11}|\d{14})$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("document", validDocument)
	}
}

func validDocument(fl validator.FieldLevel) bool {
	return documentPattern.MatchString(fl.Field().String())
}
