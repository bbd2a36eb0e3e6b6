// Package validation checks decoded request payloads against declarative field rules
// and renders the human readable messages returned to API clients.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMalformedPayload is returned when a body is not a JSON object.
var ErrMalformedPayload = errors.New("malformed JSON payload")

var validate = validator.New()

// Kind is the type rule applied to a field when it is present.
type Kind int

const (
	// KindPresent applies no type rule.
	KindPresent Kind = iota
	KindString
	KindInteger
	KindNumber
)

// Field declares the rules for a single payload key, evaluated as type, required, max.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Max bounds string length in characters. Zero disables the rule.
	Max int
}

// Schema is an ordered list of field rules. Violations are reported in schema order.
type Schema []Field

// Violation is a single failed rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects every violation found in a payload.
type Errors []Violation

// Error implements the error interface using the summary message.
func (e Errors) Error() string {
	return e.Summary()
}

// Summary returns the first message followed by a count of the remaining ones.
func (e Errors) Summary() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Message
	case 2:
		return fmt.Sprintf("%s (and 1 more error)", e[0].Message)
	default:
		return fmt.Sprintf("%s (and %d more errors)", e[0].Message, len(e)-1)
	}
}

// Payload is a decoded request body. Strings are trimmed and empty strings become nil.
type Payload map[string]any

// Decode reads a JSON object. An empty body decodes to an empty payload.
func Decode(r io.Reader) (Payload, error) {
	payload := Payload{}
	if r == nil {
		return payload, nil
	}
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return Payload{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	payload.normalize()
	return payload, nil
}

// FromValues builds a payload from form values, keeping the first value per key.
func FromValues(values map[string][]string) Payload {
	payload := make(Payload, len(values))
	for key, list := range values {
		if len(list) == 0 {
			payload[key] = nil
			continue
		}
		payload[key] = list[0]
	}
	payload.normalize()
	return payload
}

func (p Payload) normalize() {
	for key, value := range p {
		s, ok := value.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			p[key] = nil
			continue
		}
		p[key] = s
	}
}

// Has reports whether the key carries a non-null value.
func (p Payload) Has(name string) bool {
	value, ok := p[name]
	return ok && value != nil
}

// String returns the value as a string, or "" when absent or of another type.
func (p Payload) String(name string) string {
	s, _ := p[name].(string)
	return s
}

// Int returns the value as an integer when it passes the integer rule.
func (p Payload) Int(name string) (int64, bool) {
	return asInteger(p[name])
}

// Float returns the value as a float when it passes the number rule.
func (p Payload) Float(name string) (float64, bool) {
	return asNumber(p[name])
}

// Validate applies the schema and returns Errors, or nil when the payload is valid.
func (s Schema) Validate(p Payload) error {
	var violations Errors
	for _, field := range s {
		violations = append(violations, field.check(p)...)
	}
	if len(violations) == 0 {
		return nil
	}
	return violations
}

func (f Field) check(p Payload) []Violation {
	value, present := p[f.Name]
	label := Attribute(f.Name)
	var out []Violation
	if present && !f.Kind.accepts(value) {
		out = append(out, Violation{Field: f.Name, Message: f.Kind.message(label)})
	}
	if f.Required && missing(value) {
		out = append(out, Violation{Field: f.Name, Message: fmt.Sprintf("The %s field is required.", label)})
	}
	if s, ok := value.(string); ok && f.Max > 0 {
		if validate.Var(s, "max="+strconv.Itoa(f.Max)) != nil {
			out = append(out, Violation{
				Field:   f.Name,
				Message: fmt.Sprintf("The %s field must not be greater than %d characters.", label, f.Max),
			})
		}
	}
	return out
}

// missing reports absent, null, blank or empty collection values. Zero values such as
// false and 0 are present.
func missing(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

func (k Kind) accepts(value any) bool {
	switch k {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindInteger:
		_, ok := asInteger(value)
		return ok
	case KindNumber:
		_, ok := asNumber(value)
		return ok
	default:
		return true
	}
}

func (k Kind) message(label string) string {
	switch k {
	case KindString:
		return fmt.Sprintf("The %s field must be a string.", label)
	case KindInteger:
		return fmt.Sprintf("The %s field must be an integer.", label)
	case KindNumber:
		return fmt.Sprintf("The %s field must be a number.", label)
	default:
		return fmt.Sprintf("The %s field is invalid.", label)
	}
}

// Attribute renders a payload key the way it appears in messages.
func Attribute(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func asInteger(value any) (int64, bool) {
	var raw string
	switch v := value.(type) {
	case json.Number:
		raw = v.String()
	case string:
		raw = v
	case int:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(raw, "+"), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
