package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nexkart/backend/internal/domain/identity"
)

// SetupValidator configures the request validator with custom tags
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// shoprole accepts the registerable buyer roles; admin accounts
	// are provisioned out of band, never via the public endpoint
	_ = v.RegisterValidation("shoprole", func(fl validator.FieldLevel) bool {
		switch identity.Role(fl.Field().String()) {
		case identity.RoleRetailer, identity.RoleWholesaler:
			return true
		}
		return false
	})
}
