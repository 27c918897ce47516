package redis

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/userdesk-server/internal/model"
)

func toMap(t *testing.T, args []any) map[string]string {
	t.Helper()
	require.Zero(t, len(args)%2)

	m := make(map[string]string, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		m[args[i].(string)] = fmt.Sprint(args[i+1])
	}
	return m
}

func TestEncodeDecodeUser(t *testing.T) {
	createdAt := time.Date(2024, 5, 1, 12, 30, 0, 123, time.UTC)
	in := model.User{
		Profile: model.Profile{
			Label:      json.RawMessage(`{"ext":[1,"two"]}`),
			Name:       `Ann "the" Coder`,
			Email:      "a@x.com",
			Age:        model.AgeOf(30),
			Profession: "Eng",
			Summary:    "line\nbreak",
		},
		GoogleID:  "g-1",
		Avatar:    "https://x/a.png",
		CreatedAt: createdAt,
	}

	args, err := encodeUser(in)
	require.NoError(t, err)

	fields := toMap(t, args)
	assert.Equal(t, `{"ext":[1,"two"]}`, fields["id"])
	assert.Equal(t, `30`, fields["age"])

	out, err := decodeUser("abc", fields)
	require.NoError(t, err)

	in.StoreID = "abc"
	assert.Equal(t, in, out)
}

func TestEncodeProfile_NoLabelNaN(t *testing.T) {
	args, err := encodeProfile(model.Profile{Name: "Bob", Age: model.NaN})
	require.NoError(t, err)

	fields := toMap(t, args)
	assert.NotContains(t, fields, "id")
	assert.Equal(t, "null", fields["age"])
	assert.Equal(t, `""`, fields["summary"])

	out, err := decodeUser("x", fields)
	require.NoError(t, err)
	assert.True(t, out.Age.IsNaN())
	assert.Nil(t, out.Label)
	assert.True(t, out.CreatedAt.IsZero())
}

func TestDecodeUser_Corrupt(t *testing.T) {
	_, err := decodeUser("x", map[string]string{"name": "not json"})
	assert.Error(t, err)

	_, err = decodeUser("x", map[string]string{"createdAt": `"yesterday"`})
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	_, err := parseID("nope")
	assert.ErrorIs(t, err, model.ErrInvalidStoreID)

	id, err := parseID("A0B1C2D3-0000-4000-8000-000000000001")
	require.NoError(t, err)
	assert.Equal(t, "a0b1c2d3-0000-4000-8000-000000000001", id)
}

func TestKeys(t *testing.T) {
	r := NewUserRepository(nil, "users")
	assert.Equal(t, "users:abc", r.recordKey("abc"))
	assert.Equal(t, "users:index", r.indexKey())
}
