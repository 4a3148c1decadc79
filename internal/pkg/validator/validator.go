package validator

import (
	"regexp"

	playground "github.com/go-playground/validator/v10"
)

var (
	EmailRX = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+\\/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
	PhoneRX = regexp.MustCompile(`^\+?[0-9 ().-]{7,20}$`)
)

var fields = playground.New()

// Validator collects the first error message per field.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

func In(value string, list ...string) bool {
	for _, s := range list {
		if value == s {
			return true
		}
	}
	return false
}

// IsURL reports whether s is an absolute http(s) URL.
func IsURL(s string) bool {
	return fields.Var(s, "required,http_url") == nil
}

// OptionalURL accepts an empty string or a valid URL.
func OptionalURL(s string) bool {
	return s == "" || IsURL(s)
}

func IsEmail(s string) bool {
	return fields.Var(s, "required,email") == nil && Matches(s, EmailRX)
}
