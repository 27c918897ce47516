package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceAge(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Age
	}{
		{name: "integer", raw: `30`, want: AgeOf(30)},
		{name: "float truncates", raw: `41.9`, want: AgeOf(41)},
		{name: "negative float truncates toward zero", raw: `-2.7`, want: AgeOf(-2)},
		{name: "exponent", raw: `1e2`, want: AgeOf(100)},
		{name: "numeric string", raw: `"30"`, want: AgeOf(30)},
		{name: "string prefix", raw: `"30 years"`, want: AgeOf(30)},
		{name: "leading space", raw: `"  7"`, want: AgeOf(7)},
		{name: "signed string", raw: `"-12"`, want: AgeOf(-12)},
		{name: "hex string", raw: `"0x1A"`, want: AgeOf(26)},
		{name: "non numeric string", raw: `"abc"`, want: NaN},
		{name: "empty string", raw: `""`, want: NaN},
		{name: "null", raw: `null`, want: NaN},
		{name: "bool", raw: `true`, want: NaN},
		{name: "object", raw: `{"v":1}`, want: NaN},
		{name: "array", raw: `[1]`, want: NaN},
		{name: "huge", raw: `1e300`, want: NaN},
		{name: "absent", raw: ``, want: NaN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceAge(json.RawMessage(tt.raw)))
		})
	}
}

func TestAge_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Age `json:"a"`
		B Age `json:"b"`
	}{A: AgeOf(5), B: NaN})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"a":5,"b":null}`, string(b))

	var got struct {
		A Age `json:"a"`
	}
	assert.NoError(t, json.Unmarshal([]byte(`{"a":"nope"}`), &got), "age never fails to decode")
	assert.True(t, got.A.IsNaN())
}

func TestAge_Ptr(t *testing.T) {
	assert.Nil(t, NaN.Ptr())
	assert.Equal(t, 3, *AgeOf(3).Ptr())
}
