// file: forms/form.go
package forms

import (
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

// Form holds the current values and validation errors of one editable record.
// A Form lives for a single request and is not safe for concurrent use.
type Form struct {
	schema  *Schema
	values  map[string]string
	errors  map[string]string
	touched map[string]bool
	dirty   bool
}

// New creates a form over schema seeded with initial values.
func New(schema *Schema, initial map[string]string) *Form {
	f := &Form{
		schema:  schema,
		values:  make(map[string]string, len(initial)),
		errors:  make(map[string]string),
		touched: make(map[string]bool),
	}
	for k, v := range initial {
		f.values[k] = v
	}
	return f
}

// Schema returns the schema the form validates against.
func (f *Form) Schema() *Schema { return f.schema }

// Set changes a field value and clears that field's shown error.
// The field is not re-validated until the next Validate or ValidateField.
func (f *Form) Set(name, value string) {
	if f.values[name] != value {
		f.dirty = true
	}
	f.values[name] = value
	f.touched[name] = true
	delete(f.errors, name)
}

// Touch marks a field as visited without changing it.
func (f *Form) Touch(name string) {
	f.touched[name] = true
}

// Value returns the raw value of a field.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// Values returns a copy of every raw value.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Number returns the coerced value of a numeric field. ok is false for blank
// or unparseable input.
func (f *Form) Number(name string) (float64, bool) {
	p := coerce(f.values[name])
	if p == nil || math.IsNaN(*p) {
		return 0, false
	}
	return *p, true
}

// Validate runs the schema against the current values. Each failing field
// gets the message of its first failing rule. Fields are checked in the
// order the schema declares them.
func (f *Form) Validate() bool {
	f.errors = make(map[string]string)
	for _, field := range f.schema.fields {
		if msg := field.check(f.values[field.Name]); msg != "" {
			f.errors[field.Name] = msg
		}
	}
	return len(f.errors) == 0
}

// ValidateField checks one field, as a blur handler would.
func (f *Form) ValidateField(name string) bool {
	f.touched[name] = true
	field, ok := f.schema.Field(name)
	if !ok {
		return true
	}
	if msg := field.check(f.values[name]); msg != "" {
		f.errors[name] = msg
		return false
	}
	delete(f.errors, name)
	return true
}

// Errors returns a copy of the per-field error map.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the shown error of one field.
func (f *Form) Error(name string) string {
	return f.errors[name]
}

// HasErrors reports whether any error is currently shown.
func (f *Form) HasErrors() bool {
	return len(f.errors) > 0
}

// Dirty reports whether any value changed since the form was created.
func (f *Form) Dirty() bool {
	return f.dirty
}

// Touched reports whether the field was changed or visited.
func (f *Form) Touched(name string) bool {
	return f.touched[name]
}

// Bind copies the posted values of every schema field through Set. Fields
// missing from the request keep their current value.
func (f *Form) Bind(r *http.Request) error {
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	for _, field := range f.schema.fields {
		if vals, ok := r.PostForm[field.Name]; ok && len(vals) > 0 {
			f.Set(field.Name, vals[0])
		}
	}
	return nil
}

// File returns an uploaded file posted with the form, if any.
func (f *Form) File(r *http.Request, name string) (*multipart.FileHeader, bool) {
	if r.MultipartForm == nil {
		return nil, false
	}
	files := r.MultipartForm.File[name]
	if len(files) == 0 {
		return nil, false
	}
	return files[0], true
}

// Payload converts the form into the wire shape the API expects: schema
// fields only, numbers coerced, blank numbers as nil.
func (f *Form) Payload() map[string]any {
	out := make(map[string]any, len(f.schema.fields))
	for _, field := range f.schema.fields {
		raw := f.values[field.Name]
		if field.Kind != Number {
			out[field.Name] = strings.TrimSpace(raw)
			continue
		}
		if n, ok := f.Number(field.Name); ok {
			out[field.Name] = n
		} else {
			out[field.Name] = nil
		}
	}
	return out
}

// coerce turns raw numeric input into a pointer: nil for blank input, NaN
// for anything unparseable or infinite.
func coerce(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(n, 0) {
		n = math.NaN()
	}
	return &n
}
