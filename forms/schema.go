// Package forms holds the form state container and the declarative schemas
// every create/edit screen validates against.
// file: forms/schema.go
package forms

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind selects how a raw input string is coerced before rules run.
type Kind int

const (
	// String values are validated as typed.
	String Kind = iota
	// Number values are coerced to float64; blank input counts as no value.
	Number
)

// Rule is one validator tag plus the message shown when it fails.
type Rule struct {
	Tag     string
	Message string
}

// Field declares a form field and its rules, evaluated in order.
type Field struct {
	Name  string
	Label string
	Kind  Kind
	Rules []Rule
}

// InputType is the HTML input type the field renders as.
func (f Field) InputType() string {
	if f.Name == "password" {
		return "password"
	}
	if f.Kind == Number {
		return "number"
	}
	for _, r := range f.Rules {
		switch {
		case r.Tag == "email":
			return "email"
		case strings.HasPrefix(r.Tag, "datetime="):
			return "datetime-local"
		}
	}
	return "text"
}

// Schema is an ordered set of fields.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// notblank rejects whitespace-only input, which "required" lets through.
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		panic(err)
	}
	return v
}

// NewSchema builds a schema from fields in declaration order.
// It panics on duplicate field names since schemas are package-level values.
func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{name: name, fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		if _, dup := s.index[f.Name]; dup {
			panic(fmt.Sprintf("forms: schema %s declares %s twice", name, f.Name))
		}
		s.index[f.Name] = i
	}
	return s
}

// Name identifies the schema in logs.
func (s *Schema) Name() string { return s.name }

// Fields returns the declared fields in order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a declared field.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// check returns the message of the first failing rule, or "".
func (f Field) check(raw string) string {
	var value any = raw
	if f.Kind == Number {
		value = coerce(raw)
	}
	for _, r := range f.Rules {
		if err := validate.Var(value, r.Tag); err != nil {
			return r.message(f)
		}
	}
	return ""
}

func (r Rule) message(f Field) string {
	if r.Message != "" {
		return r.Message
	}
	label := f.Label
	if label == "" {
		label = f.Name
	}
	return fmt.Sprintf("%s is invalid (%s)", label, r.Tag)
}

// ----------------------- field and rule builders -----------------------

// Text declares a string field.
func Text(name, label string, rules ...Rule) Field {
	return Field{Name: name, Label: label, Kind: String, Rules: rules}
}

// Num declares a numeric field.
func Num(name, label string, rules ...Rule) Field {
	return Field{Name: name, Label: label, Kind: Number, Rules: rules}
}

// Required fails on an empty string or a blank number.
func Required(msg string) Rule { return Rule{Tag: "required", Message: msg} }

// NotBlank fails on whitespace-only text.
func NotBlank(msg string) Rule { return Rule{Tag: "notblank", Message: msg} }

// MinLen fails when the text has fewer than n characters.
func MinLen(n int, msg string) Rule { return Rule{Tag: fmt.Sprintf("min=%d", n), Message: msg} }

// MaxLen fails when the text has more than n characters.
func MaxLen(n int, msg string) Rule { return Rule{Tag: fmt.Sprintf("max=%d", n), Message: msg} }

// Email fails on a malformed address.
func Email(msg string) Rule { return Rule{Tag: "email", Message: msg} }

// Positive fails unless the number is greater than zero.
func Positive(msg string) Rule { return Rule{Tag: "gt=0", Message: msg} }

// OneOf fails unless the value is one of the options.
func OneOf(msg string, options ...string) Rule {
	return Rule{Tag: "oneof=" + strings.Join(options, " "), Message: msg}
}

// DateTime fails unless the value parses with layout.
func DateTime(layout, msg string) Rule { return Rule{Tag: "datetime=" + layout, Message: msg} }

// Tag wraps any validator tag.
func Tag(tag, msg string) Rule { return Rule{Tag: tag, Message: msg} }
