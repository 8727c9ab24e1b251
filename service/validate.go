package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var viewRefPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*:[a-zA-Z][a-zA-Z0-9]*$`)

var httpMethods = map[string]bool{
	"get":    true,
	"post":   true,
	"put":    true,
	"patch":  true,
	"delete": true,
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs, neither of
	// which can happen here.
	_ = v.RegisterValidation("viewref", func(fl validator.FieldLevel) bool {
		return viewRefPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("httpmethod", func(fl validator.FieldLevel) bool {
		return httpMethods[strings.ToLower(fl.Field().String())]
	})
	return v
}

// validateSpec checks the declared shape of one operation before any path
// resolution happens, so malformed descriptors fail with a message naming
// the offending operation.
func validateSpec(name string, spec *operationSpec) error {
	if err := validate.Struct(spec); err != nil {
		return fmt.Errorf("operation %s: %w", name, err)
	}
	return nil
}
