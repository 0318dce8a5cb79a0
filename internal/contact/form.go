// Package contact holds the contact form state and the submit flow that relays
// it to the spreadsheet endpoint.
package contact

import (
	"errors"
	"fmt"
	"net/url"
)

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage}

var ErrUnknownField = errors.New("unknown form field")

// ParseField maps a wire name onto one of the five form fields.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// FormState is the current value of every form field. The zero value is the
// empty form.
type FormState struct {
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Phone   string `json:"phone" yaml:"phone"`
	Subject string `json:"subject" yaml:"subject"`
	Message string `json:"message" yaml:"message"`
}

func (s FormState) Get(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldPhone:
		return s.Phone
	case FieldSubject:
		return s.Subject
	case FieldMessage:
		return s.Message
	}
	return ""
}

// With returns a copy of s with f set to value.
func (s FormState) With(f Field, value string) (FormState, error) {
	switch f {
	case FieldName:
		s.Name = value
	case FieldEmail:
		s.Email = value
	case FieldPhone:
		s.Phone = value
	case FieldSubject:
		s.Subject = value
	case FieldMessage:
		s.Message = value
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return s, nil
}

// Values returns all five pairs, empty values included, unmodified.
func (s FormState) Values() url.Values {
	values := make(url.Values, len(Fields))
	for _, f := range Fields {
		values.Set(string(f), s.Get(f))
	}
	return values
}

func (s FormState) Encode() string {
	return s.Values().Encode()
}

// clearSent empties every field that still holds the value that was sent.
// Fields edited while the request was in flight keep their newer value.
func (s FormState) clearSent(sent FormState) FormState {
	out := s
	for _, f := range Fields {
		if s.Get(f) == sent.Get(f) {
			out, _ = out.With(f, "")
		}
	}
	return out
}
