package auth

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// usernames: alphanumeric plus underscore and hyphen
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// registers the custom binding validators used by auth requests; must run
// once before routes are served
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}

	return v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
}
