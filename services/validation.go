package services

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"proply_app_go/models"

	"github.com/go-playground/validator/v10"
)

// leadEmailPattern is the same loose local@domain.tld shape the forms have always accepted
var leadEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationErrors maps a form field name to a human readable message.
// An empty set means the submission can be sent.
type ValidationErrors map[string]string

// OK reports whether no field failed validation
func (v ValidationErrors) OK() bool {
	return len(v) == 0
}

type waitlistForm struct {
	Email   string `json:"email" validate:"required,leademail"`
	Name    string `json:"name" validate:"notblank"`
	Company string `json:"company" validate:"notblank"`
}

type betaForm struct {
	Email   string `json:"email" validate:"required,leademail"`
	Name    string `json:"name" validate:"notblank"`
	Company string `json:"company" validate:"notblank"`
	Phone   string `json:"phone" validate:"notblank"`
}

var (
	leadValidator     *validator.Validate
	leadValidatorOnce sync.Once
)

func getLeadValidator() *validator.Validate {
	leadValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Registration only fails for empty tags or nil funcs.
		_ = v.RegisterValidation("leademail", func(fl validator.FieldLevel) bool {
			return leadEmailPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		leadValidator = v
	})
	return leadValidator
}

// messages per form variant, keyed by "field.tag"
var validationMessages = map[models.FormVariant]map[string]string{
	models.FormWaitlist: {
		"email.required":   "Email is required",
		"email.leademail":  "Please enter a valid email",
		"name.notblank":    "Full name is required",
		"company.notblank": "Company name is required",
	},
	models.FormBeta: {
		"email.required":   "Email is required",
		"email.leademail":  "Please enter a valid email address",
		"name.notblank":    "Full name is required",
		"company.notblank": "Company name is required",
		"phone.notblank":   "Phone number is required",
	},
}

// ValidateLead checks a contact form for the given variant. It has no side
// effects and does not normalize the input: whitespace is only ignored for the
// emptiness checks.
func ValidateLead(variant models.FormVariant, s models.ContactSubmission) ValidationErrors {
	var form any
	switch variant {
	case models.FormBeta:
		form = betaForm{Email: s.Email, Name: s.Name, Company: s.Company, Phone: s.Phone}
	default:
		variant = models.FormWaitlist
		form = waitlistForm{Email: s.Email, Name: s.Name, Company: s.Company}
	}

	result := ValidationErrors{}
	err := getLeadValidator().Struct(form)
	if err == nil {
		return result
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only happens for non-struct input, which the switch above rules out.
		result["form"] = err.Error()
		return result
	}

	msgs := validationMessages[variant]
	for _, fe := range fieldErrs {
		key := fe.Field() + "." + fe.Tag()
		msg, ok := msgs[key]
		if !ok {
			msg = fe.Error()
		}
		// Keep the first failure per field
		if _, exists := result[fe.Field()]; !exists {
			result[fe.Field()] = msg
		}
	}
	return result
}
