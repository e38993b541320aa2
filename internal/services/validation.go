package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"governanceevents/internal/domain"
)

var phoneRegex = regexp.MustCompile(`^[0-9+\-\s()]+$`)

var fieldLabels = map[string]string{
	"full_name":    "Full name",
	"id_passport":  "ID/Passport number",
	"gender":       "Gender",
	"email":        "Email",
	"phone":        "Phone number",
	"organization": "Organization",
	"relationship": "Relationship",
}

// newValidator returns a validator that reports fields by their json names and knows the "phone" tag.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", validatePhone)
	return v
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// validateStruct runs v over s and converts field failures into a *domain.ValidationError
// keyed by json path, e.g. "email" or "emergency_contact.phone".
func validateStruct(ctx context.Context, v *validator.Validate, s any) error {
	err := v.StructCtx(ctx, s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fieldKey(fe.Namespace())
		if _, seen := fields[key]; !seen {
			fields[key] = fieldMessage(fe, strings.Contains(key, "."))
		}
	}
	return domain.NewValidationError(fields)
}

// fieldKey drops the root struct name from a validator namespace.
func fieldKey(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(fe validator.FieldError, nested bool) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = strings.ReplaceAll(fe.Field(), "_", " ")
	}
	if nested {
		label = "Emergency contact " + strings.ToLower(label)
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		if nested {
			return "Invalid email"
		}
		return "Invalid email address"
	case "phone":
		if nested {
			return "Invalid phone"
		}
		return "Invalid phone number"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return label + " is invalid"
}

// normalizeInput returns a trimmed copy of in. The emergency contact is dropped unless opted in.
func normalizeInput(in *domain.RegistrationInput) *domain.RegistrationInput {
	out := &domain.RegistrationInput{
		FullName:            strings.TrimSpace(in.FullName),
		IDPassport:          strings.TrimSpace(in.IDPassport),
		Gender:              strings.ToLower(strings.TrimSpace(in.Gender)),
		Email:               strings.TrimSpace(in.Email),
		Phone:               strings.TrimSpace(in.Phone),
		Organization:        strings.TrimSpace(in.Organization),
		HasEmergencyContact: in.HasEmergencyContact,
	}
	if in.HasEmergencyContact && in.EmergencyContact != nil {
		out.EmergencyContact = &domain.EmergencyContact{
			FullName:     strings.TrimSpace(in.EmergencyContact.FullName),
			Relationship: strings.TrimSpace(in.EmergencyContact.Relationship),
			Email:        strings.TrimSpace(in.EmergencyContact.Email),
			Phone:        strings.TrimSpace(in.EmergencyContact.Phone),
		}
	}
	return out
}
