package cli

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	fullNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	addressPattern  = regexp.MustCompile(`^\d+\s+\w+\s+\w+$`)
	phonePattern    = regexp.MustCompile(`^\d{10}$`)
)

// inputValidator checks the format of user-entered fields before they reach
// the core. The core only enforces business invariants (existence,
// uniqueness, balance sufficiency), never formats.
type inputValidator struct {
	validate *validator.Validate
}

type registrationInput struct {
	FullName string `validate:"required,fullname"`
	Username string `validate:"required,alphanum"`
	Address  string `validate:"required,address"`
	Phone    string `validate:"required,phone10"`
}

type contactInput struct {
	Address string `validate:"omitempty,address"`
	Phone   string `validate:"omitempty,phone10"`
}

func newInputValidator() *inputValidator {
	v := validator.New()
	// Registration failures panic only on programmer error (bad tag names).
	_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return fullNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return addressPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return &inputValidator{validate: v}
}

// registration validates a new-customer form. Returns a user-facing message
// naming the first violated rule, or "" when valid.
func (iv *inputValidator) registration(fullName, username, address, phone string) string {
	input := registrationInput{
		FullName: fullName,
		Username: username,
		Address:  address,
		Phone:    phone,
	}
	return iv.message(iv.validate.Struct(input))
}

// contact validates a contact-update form. Blank fields mean "keep current"
// and are skipped.
func (iv *inputValidator) contact(address, phone string) string {
	return iv.message(iv.validate.Struct(contactInput{Address: address, Phone: phone}))
}

func (iv *inputValidator) message(err error) string {
	if err == nil {
		return ""
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid input. Please try again."
	}
	switch first := errs[0]; first.Field() {
	case "FullName":
		return "Full name can only contain letters. Try again."
	case "Username":
		return "Username is required and may only contain letters and digits."
	case "Address":
		return "Address must be in the format: 'number word word'. Example: '123 Main Street'."
	case "Phone":
		return "Phone number must be exactly 10 digits long. Try again."
	default:
		return "Invalid input. Please try again."
	}
}
