// Package validation checks employee form input before it leaves the client.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/UnknownOlympus/staffdesk/internal/models"
)

// messages are keyed by the JSON name of the field.
var messages = map[string]string{
	"name":     "Name is required",
	"email":    "Invalid email address",
	"position": "Position is required",
	"salary":   "Salary must be positive",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Errors maps a field name to the message shown next to it.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range e.Fields() {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

// Fields returns the invalid field names in a stable order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Employee validates employee fields. It returns nil or an Errors value.
func Employee(fields models.EmployeeFields) error {
	err := validate.Struct(fields)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate employee: %w", err)
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		out[fe.Field()] = msg
	}

	return out
}
