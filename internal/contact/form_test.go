package contact

import (
	"net/url"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(string(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseField("company")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = ParseField("Name")
	assert.ErrorIs(t, err, ErrUnknownField, "field names are case sensitive")
}

func TestFormStateValuesEncoding(t *testing.T) {
	state := FormState{Name: "Alice", Email: "a@x.com", Phone: "123", Subject: "Hi", Message: "Hello"}

	encoded := state.Encode()
	assert.Contains(t, encoded, "email=a%40x.com")

	parsed, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	assert.Equal(t, url.Values{
		"name":    {"Alice"},
		"email":   {"a@x.com"},
		"phone":   {"123"},
		"subject": {"Hi"},
		"message": {"Hello"},
	}, parsed)
}

func TestFormStateValuesKeepsEmptyAndRawValues(t *testing.T) {
	state := FormState{Message: "  two words & more\n"}

	values := state.Values()
	assert.Len(t, values, 5)
	assert.Equal(t, "", values.Get("name"))
	assert.Equal(t, "  two words & more\n", values.Get("message"))
	assert.Contains(t, state.Encode(), "message=++two+words+%26+more%0A")
}

func TestFormStateWithUnknownField(t *testing.T) {
	state := FormState{Name: "Alice"}
	next, err := state.With(Field("company"), "Acme")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, state, next)
}

func TestClearSentKeepsFieldsEditedInFlight(t *testing.T) {
	sent := FormState{Name: "Alice", Subject: "Hi"}
	current := FormState{Name: "Alice", Subject: "Hi again"}

	assert.Equal(t, FormState{Subject: "Hi again"}, current.clearSent(sent))
	assert.Equal(t, FormState{}, sent.clearSent(sent))
}

func TestSetFieldProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("set field only touches that field", prop.ForAll(
		func(index int, value, name, email, phone, subject, message string) bool {
			s := NewSubmitter(nil)
			before := FormState{Name: name, Email: email, Phone: phone, Subject: subject, Message: message}
			for _, f := range Fields {
				if err := s.SetField(string(f), before.Get(f)); err != nil {
					return false
				}
			}

			target := Fields[index]
			if err := s.SetField(string(target), value); err != nil {
				return false
			}

			after := s.Snapshot()
			for _, f := range Fields {
				if f == target {
					if after.Get(f) != value {
						return false
					}
					continue
				}
				if after.Get(f) != before.Get(f) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(Fields)-1),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("unknown field leaves state untouched", prop.ForAll(
		func(name, value string) bool {
			if _, err := ParseField(name); err == nil {
				return true
			}
			s := NewSubmitter(nil)
			_ = s.SetField(string(FieldName), "kept")
			err := s.SetField(name, value)
			return err != nil && s.Snapshot() == FormState{Name: "kept"}
		},
		gen.AlphaString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
