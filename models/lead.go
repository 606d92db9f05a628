package models

import "strings"

// FormVariant identifies which lead-capture form a submission comes from
type FormVariant string

const (
	FormWaitlist FormVariant = "waitlist"
	FormBeta     FormVariant = "beta"
)

// ParseFormVariant maps a route or flag value to a FormVariant
func ParseFormVariant(s string) (FormVariant, bool) {
	switch FormVariant(strings.ToLower(strings.TrimSpace(s))) {
	case FormWaitlist:
		return FormWaitlist, true
	case FormBeta:
		return FormBeta, true
	}
	return "", false
}

// ContactSubmission is the transient lead captured by a form. It is never stored.
// Phone is only collected by the beta application.
type ContactSubmission struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Phone   string `json:"phone,omitempty"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
// Values are trimmed only right before they are sent.
func (s ContactSubmission) Trimmed() ContactSubmission {
	return ContactSubmission{
		Email:   strings.TrimSpace(s.Email),
		Name:    strings.TrimSpace(s.Name),
		Company: strings.TrimSpace(s.Company),
		Phone:   strings.TrimSpace(s.Phone),
	}
}

// Field returns the value of a form field by its form name
func (s ContactSubmission) Field(name string) string {
	switch name {
	case "email":
		return s.Email
	case "name":
		return s.Name
	case "company":
		return s.Company
	case "phone":
		return s.Phone
	}
	return ""
}

// SetField updates a field by its form name. Unknown names are ignored.
func (s *ContactSubmission) SetField(name, value string) {
	switch name {
	case "email":
		s.Email = value
	case "name":
		s.Name = value
	case "company":
		s.Company = value
	case "phone":
		s.Phone = value
	}
}
