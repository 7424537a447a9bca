// Package validation checks request bodies and query strings against
// declarative schemas before they reach the property store.
package validation

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Kind is the JSON type a field must have.
type Kind int

const (
	String Kind = iota
	Number
	Integer
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Integer:
		return "integer"
	}
	return "unknown"
}

// Field describes one key of an input object. Rules is a validator tag
// (for example "gte=0" or "oneof=a b") applied after the type check.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Rules    string
}

// Schema is an ordered set of field descriptors. Keys that no field
// names are ignored.
type Schema struct {
	Name   string
	Fields []Field
}

// FieldError is a single violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects every violation found in one input.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validate checks input against the schema and returns every violation,
// or nil if the input is acceptable.
func (s Schema) Validate(input map[string]any) Errors {
	var errs Errors
	for _, f := range s.Fields {
		v, ok := input[f.Name]
		if !ok {
			if f.Required {
				errs = append(errs, f.errorf("is required"))
			}
			continue
		}
		if fe := f.check(v); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// ValidateQuery checks URL query parameters. Values arrive as strings, so
// Number and Integer fields are parsed first. Empty values count as absent.
func (s Schema) ValidateQuery(values url.Values) Errors {
	input := make(map[string]any, len(s.Fields))
	var errs Errors
	for _, f := range s.Fields {
		raw := values.Get(f.Name)
		if raw == "" {
			continue
		}
		switch f.Kind {
		case String:
			input[f.Name] = raw
		case Number:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				errs = append(errs, f.errorf("must be a number"))
				continue
			}
			input[f.Name] = n
		case Integer:
			n, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, f.errorf("must be an integer"))
				continue
			}
			input[f.Name] = n
		}
	}
	return append(errs, s.Validate(input)...)
}

func (f Field) check(v any) *FieldError {
	if !f.hasKind(v) {
		fe := f.errorf("must be a %s", f.Kind)
		if f.Kind == Integer {
			fe = f.errorf("must be an integer")
		}
		return &fe
	}

	rules := f.Rules
	if f.Kind == String && f.Required {
		rules = joinRules("required", rules)
	}
	if rules == "" {
		return nil
	}

	err := validate.Var(v, rules)
	if err == nil {
		return nil
	}
	fe := f.describe(err)
	return &fe
}

func (f Field) hasKind(v any) bool {
	switch f.Kind {
	case String:
		_, ok := v.(string)
		return ok
	case Number:
		switch n := v.(type) {
		case float64:
			return !math.IsNaN(n) && !math.IsInf(n, 0)
		case int, int64:
			return true
		}
	case Integer:
		switch n := v.(type) {
		case float64:
			return n == math.Trunc(n) && !math.IsInf(n, 0)
		case int, int64:
			return true
		}
	}
	return false
}

// describe turns the first validator failure into a readable message.
func (f Field) describe(err error) FieldError {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return f.errorf("is invalid: %v", err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return f.errorf("is not allowed to be empty")
	case "gte":
		return f.errorf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return f.errorf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return f.errorf("must be one of [%s]", strings.Join(strings.Fields(fe.Param()), ", "))
	}
	return f.errorf("failed the %q rule", fe.Tag())
}

func (f Field) errorf(format string, args ...any) FieldError {
	return FieldError{
		Field:   f.Name,
		Message: fmt.Sprintf("%q ", f.Name) + fmt.Sprintf(format, args...),
	}
}

func joinRules(rules ...string) string {
	var parts []string
	for _, r := range rules {
		if r != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, ",")
}
