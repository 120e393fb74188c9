package order

import (
	"regexp"
	"strings"

	domainErrors "github.com/bekzodart/storefront/internal/domain/errors"
)

// Fields holds the buyer-entered values of the purchase dialog.
type Fields struct {
	FullName string
	Phone    string
	Email    string
	Address  string
	Agreed   bool
}

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate runs every rule and returns the complete set of failures, so the
// dialog can surface all field errors at once. Nil means the fields are valid.
func Validate(f Fields) domainErrors.FieldErrors {
	var errs domainErrors.FieldErrors

	if strings.TrimSpace(f.FullName) == "" {
		errs = append(errs, domainErrors.FieldError{Field: "fullName", Code: domainErrors.NameRequired})
	}

	if phone := strings.TrimSpace(f.Phone); phone == "" {
		errs = append(errs, domainErrors.FieldError{Field: "phoneNumber", Code: domainErrors.PhoneRequired})
	} else if len(phone) < 10 {
		errs = append(errs, domainErrors.FieldError{Field: "phoneNumber", Code: domainErrors.PhoneInvalid})
	}

	if f.Email != "" && !emailShape.MatchString(f.Email) {
		errs = append(errs, domainErrors.FieldError{Field: "email", Code: domainErrors.EmailInvalid})
	}

	if !f.Agreed {
		errs = append(errs, domainErrors.FieldError{Field: "terms", Code: domainErrors.TermsRequired})
	}

	return errs
}
