package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// UserInput is a request body after field extraction and coercion.
type UserInput struct {
	Profile

	// CreatedAt is zero when the caller did not supply it.
	CreatedAt time.Time
}

// ParseUser extracts a user from a request body. The body must be a JSON
// object; string fields must be strings or null. Age never fails, it falls
// back to the NaN sentinel.
func ParseUser(body []byte) (UserInput, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return UserInput{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if fields == nil {
		return UserInput{}, fmt.Errorf("%w: body is not an object", ErrMalformedInput)
	}

	var (
		in  UserInput
		err error
	)

	if raw, ok := fields["id"]; ok {
		in.Label, err = compact(raw)
		if err != nil {
			return UserInput{}, err
		}
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"name", &in.Name},
		{"email", &in.Email},
		{"profession", &in.Profession},
		{"summary", &in.Summary},
	}
	for _, f := range strs {
		if *f.dst, err = stringField(fields, f.key); err != nil {
			return UserInput{}, err
		}
	}

	in.Age = CoerceAge(fields["age"])

	if raw, ok := fields["createdAt"]; ok && !isNull(raw) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return UserInput{}, fmt.Errorf("%w: createdAt must be a string", ErrMalformedInput)
		}
		in.CreatedAt, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return UserInput{}, fmt.Errorf("%w: createdAt: %v", ErrMalformedInput, err)
		}
	}

	return in, nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s must be a string", ErrMalformedInput, key)
	}

	return s, nil
}

func compact(raw json.RawMessage) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return buf.Bytes(), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
