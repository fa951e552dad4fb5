package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

// emailRe is the loose address pattern the booking forms use.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func New() *Validator {
	v := validator.New()

	v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return IsEmail(value)
	})

	// trimmedmin=N counts runes after trimming surrounding spaces.
	v.RegisterValidation("trimmedmin", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		min := 0
		for _, r := range fl.Param() {
			if r < '0' || r > '9' {
				return false
			}
			min = min*10 + int(r-'0')
		}
		return utf8.RuneCountInString(strings.TrimSpace(value)) >= min
	})

	return &Validator{v: v}
}

func IsEmail(value string) bool {
	return emailRe.MatchString(strings.TrimSpace(value))
}

func (v *Validator) Struct(s interface{}) error {
	return v.v.Struct(s)
}

func (v *Validator) ValidationErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
