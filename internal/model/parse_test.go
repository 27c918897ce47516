package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUser(t *testing.T) {
	in, err := ParseUser([]byte(`{"id":"7","name":"Ann","email":"a@x.com","age":"30","profession":"Eng","summary":"n/a","extra":true}`))
	require.NoError(t, err)

	assert.Equal(t, json.RawMessage(`"7"`), in.Label)
	assert.Equal(t, "Ann", in.Name)
	assert.Equal(t, "a@x.com", in.Email)
	assert.Equal(t, AgeOf(30), in.Age)
	assert.Equal(t, "Eng", in.Profession)
	assert.Equal(t, "n/a", in.Summary)
	assert.True(t, in.CreatedAt.IsZero())
}

func TestParseUser_Label(t *testing.T) {
	tests := []struct {
		name string
		body string
		want json.RawMessage
	}{
		{name: "absent", body: `{}`, want: nil},
		{name: "number kept verbatim", body: `{"id":7}`, want: json.RawMessage(`7`)},
		{name: "object compacted", body: `{"id":{ "a" : 1 }}`, want: json.RawMessage(`{"a":1}`)},
		{name: "null", body: `{"id":null}`, want: json.RawMessage(`null`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ParseUser([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Label)
		})
	}
}

func TestParseUser_CreatedAt(t *testing.T) {
	in, err := ParseUser([]byte(`{"createdAt":"2024-05-01T12:00:00.5Z"}`))
	require.NoError(t, err)
	assert.True(t, in.CreatedAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 5e8, time.UTC)))

	in, err = ParseUser([]byte(`{"createdAt":null}`))
	require.NoError(t, err)
	assert.True(t, in.CreatedAt.IsZero())
}

func TestParseUser_Malformed(t *testing.T) {
	bodies := map[string]string{
		"not json":          `{"name":`,
		"empty":             ``,
		"array":             `[1,2]`,
		"string":            `"ann"`,
		"null":              `null`,
		"name not a string": `{"name":5}`,
		"email object":      `{"email":{}}`,
		"bad createdAt":     `{"createdAt":"yesterday"}`,
		"createdAt number":  `{"createdAt":5}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := ParseUser([]byte(body))
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestParseUser_NullStrings(t *testing.T) {
	in, err := ParseUser([]byte(`{"name":null,"age":null}`))
	require.NoError(t, err)
	assert.Empty(t, in.Name)
	assert.True(t, in.Age.IsNaN())
}
