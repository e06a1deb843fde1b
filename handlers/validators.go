package handlers

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding rules to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("phone10", validatePhone10)
		}
	})
}

// validatePhone10 accepts exactly ten digits once dashes and spaces are removed.
func validatePhone10(fl validator.FieldLevel) bool {
	return isPhone10(fl.Field().String())
}

func isPhone10(v string) bool {
	digits := strings.NewReplacer("-", "", " ", "").Replace(v)
	if len(digits) != 10 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
