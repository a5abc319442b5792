// ABOUTME: Client-side input validation before requests leave the machine
// ABOUTME: The backend remains authoritative; this only catches obvious mistakes early

package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type registration struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Validate checks a sweet payload before it is sent to the backend.
func (in *SweetInput) Validate() error {
	return humanize(validate.Struct(in))
}

// ValidateCredentials checks login input.
func ValidateCredentials(email, password string) error {
	return humanize(validate.Struct(credentials{Email: email, Password: password}))
}

// ValidateRegistration checks register input.
func ValidateRegistration(name, email, password string) error {
	return humanize(validate.Struct(registration{Name: name, Email: email, Password: password}))
}

// ValidateQuantity checks a purchase quantity.
func ValidateQuantity(qty int) error {
	if qty <= 0 {
		return errors.New("quantity must be a positive number")
	}
	return nil
}

// humanize converts validator errors into messages fit for a terminal user.
func humanize(err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
