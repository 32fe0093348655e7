package forms

import (
	"errors"
	"github.com/go-playground/validator/v10"
	"reflect"
	"regexp"
	"strings"
)

const (
	MsgInvalidEmail     = "the email you input is invalid."
	MsgPasswordTooShort = "the password you entered should contain 5 or more character."
	MsgPasswordMismatch = "the password don't match. Try again."
)

var messages = map[Field]string{
	FieldEmail:           MsgInvalidEmail,
	FieldPassword:        MsgPasswordTooShort,
	FieldConfirmPassword: MsgPasswordMismatch,
}

// emailPart excludes "@" and any whitespace. RE2's \s is ASCII only, so \v, unicode
// separators and BOM are listed too.
const emailPart = `[^\s\v\p{Z}\x{FEFF}@]+`

// local@domain.tld with no whitespace and a single "@"
var emailPattern = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their form name so they map straight onto Field.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("signup_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// Validate checks every field of s independently and returns the full set of messages.
func Validate(s State) Errors {
	result := Errors{}

	err := validate.Struct(s)
	if err == nil {
		return result
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		// only returned for non-struct input
		panic(err)
	}

	for _, fe := range fieldErrors {
		field := Field(fe.Field())
		if msg, ok := messages[field]; ok {
			result[field] = msg
		}
	}

	return result
}
